package stock_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/mercafresh/backoffice-api/internal/application/stock"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// La primera referencia del día para un tipo y bodega empieza en 0001.
func TestReferenceGenerator_PrimeraDelDia(t *testing.T) {
	movRepo := newFakeMovementRepo()
	gen := appstock.NewReferenceGenerator(movRepo, testLogger())

	ref := gen.Generate(context.Background(), entity.MovementTypeINCOMING, testWarehouseA)

	date := time.Now().Format("20060102")
	expected := fmt.Sprintf("INCOMING-11111111-%s-0001", date)
	assert.Equal(t, expected, ref)
}

// La secuencia continúa desde la referencia más alta existente con el mismo prefijo.
func TestReferenceGenerator_IncrementaSecuencia(t *testing.T) {
	date := time.Now().Format("20060102")
	movRepo := newFakeMovementRepo(
		&entity.StockMovement{ID: "m1", Reference: fmt.Sprintf("OUTGOING-11111111-%s-0001", date)},
		&entity.StockMovement{ID: "m2", Reference: fmt.Sprintf("OUTGOING-11111111-%s-0007", date)},
	)
	gen := appstock.NewReferenceGenerator(movRepo, testLogger())

	ref := gen.Generate(context.Background(), entity.MovementTypeOUTGOING, testWarehouseA)
	assert.Equal(t, fmt.Sprintf("OUTGOING-11111111-%s-0008", date), ref)
}

// Tipos y bodegas distintas llevan secuencias independientes.
func TestReferenceGenerator_SecuenciasIndependientes(t *testing.T) {
	date := time.Now().Format("20060102")
	movRepo := newFakeMovementRepo(
		&entity.StockMovement{ID: "m1", Reference: fmt.Sprintf("INCOMING-11111111-%s-0005", date)},
	)
	gen := appstock.NewReferenceGenerator(movRepo, testLogger())
	ctx := context.Background()

	// Otro tipo en la misma bodega arranca de cero
	ref := gen.Generate(ctx, entity.MovementTypeOUTGOING, testWarehouseA)
	assert.Equal(t, fmt.Sprintf("OUTGOING-11111111-%s-0001", date), ref)

	// Mismo tipo en otra bodega arranca de cero
	ref = gen.Generate(ctx, entity.MovementTypeINCOMING, testWarehouseB)
	assert.Equal(t, fmt.Sprintf("INCOMING-22222222-%s-0001", date), ref)
}

// Sin bodega el prefijo omite el código de bodega.
func TestReferenceGenerator_SinBodega(t *testing.T) {
	movRepo := newFakeMovementRepo()
	gen := appstock.NewReferenceGenerator(movRepo, testLogger())

	ref := gen.Generate(context.Background(), entity.MovementTypeADJUSTMENT, "")
	date := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("ADJUSTMENT-%s-0001", date), ref)
}

// Referencias consecutivas ordenan lexicográficamente gracias al cero a la izquierda.
func TestReferenceGenerator_OrdenLexicografico(t *testing.T) {
	refs := []string{}
	movRepo := newFakeMovementRepo()
	gen := appstock.NewReferenceGenerator(movRepo, testLogger())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		ref := gen.Generate(ctx, entity.MovementTypeINCOMING, testWarehouseA)
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{
			ID:        fmt.Sprintf("m-%d", i),
			Reference: ref,
		}))
		refs = append(refs, ref)
	}

	for i := 1; i < len(refs); i++ {
		assert.Greater(t, refs[i], refs[i-1],
			"cada referencia debe ser lexicográficamente mayor que la anterior")
	}
}
