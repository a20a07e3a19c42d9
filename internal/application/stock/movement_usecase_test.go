package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	appstock "github.com/mercafresh/backoffice-api/internal/application/stock"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/stock"
	"github.com/mercafresh/backoffice-api/pkg/logger"
)

const (
	testUserID      = "00000000-0000-0000-0000-0000000000aa"
	testWarehouseA  = "11111111-1111-1111-1111-111111111111"
	testWarehouseB  = "22222222-2222-2222-2222-222222222222"
	testInventoryID = "inv-0001"
	testProductID   = "prod-0001"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func baseInventory() *entity.Inventory {
	inv := &entity.Inventory{
		ID:                testInventoryID,
		ProductID:         testProductID,
		WarehouseID:       testWarehouseA,
		Quantity:          dec("100"),
		AvailableQuantity: dec("100"),
		ReservedQuantity:  decimal.Zero,
		ReorderThreshold:  dec("5"),
		ReorderQuantity:   dec("10"),
		SafetyStockLevel:  decimal.Zero,
		UnitCost:          dec("5"),
		ValuationMethod:   entity.ValuationWAC,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	inv.RecalculateDerived()
	return inv
}

// newEngine arma un MovementEngine con dobles en memoria y devuelve los repos
// para inspección posterior.
func newEngine(invs ...*entity.Inventory) (*appstock.MovementEngine, *fakeMovementRepo, *fakeInventoryRepo, *fakeProductRepo) {
	movRepo := newFakeMovementRepo()
	invRepo := newFakeInventoryRepo(invs...)
	productRepo := newFakeProductRepo(&entity.Product{ID: testProductID, SKU: "SKU-001", Cost: dec("5")})
	tx := &fakeTxRunner{movRepo: movRepo, invRepo: invRepo, productRepo: productRepo}
	log := testLogger()
	engine := appstock.NewMovementEngine(tx, movRepo, invRepo, appstock.NewReferenceGenerator(movRepo, log), log)
	return engine, movRepo, invRepo, productRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_NaceDraftSinTocarInventario(t *testing.T) {
	engine, _, invRepo, _ := newEngine(baseInventory())

	out, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementStatusDRAFT, out.Status)
	assert.Equal(t, entity.ReasonPurchase, out.Reason)
	assert.NotEmpty(t, out.Reference)
	assert.True(t, out.TotalValue.Equal(dec("50")), "10 * costo 5 del registro")

	// Crear el movimiento no muta cantidades
	inv, _ := invRepo.GetByID(context.Background(), testInventoryID)
	assert.True(t, inv.Quantity.Equal(dec("100")))
}

func TestCreateMovement_ProgramadoAFuturoNacePlanned(t *testing.T) {
	engine, _, _, _ := newEngine(baseInventory())

	future := time.Now().Add(72 * time.Hour)
	out, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeOUTGOING,
		ScheduledAt:  &future,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusPLANNED, out.Status)
}

func TestCreateMovement_InventarioInexistente(t *testing.T) {
	engine, _, _, _ := newEngine() // sin registros

	_, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateMovement_ProductoNoCorresponde(t *testing.T) {
	engine, _, _, _ := newEngine(baseInventory())

	_, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    "otro-producto",
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateMovement_TransferDesdeOtraBodega(t *testing.T) {
	engine, _, _, _ := newEngine(baseInventory())

	_, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:            testInventoryID,
		ProductID:              testProductID,
		Quantity:               dec("10"),
		MovementType:           entity.MovementTypeTRANSFER,
		SourceWarehouseID:      testWarehouseB, // el registro vive en A
		DestinationWarehouseID: testWarehouseA,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput),
		"la bodega origen debe ser la del registro de inventario")
}

// Colisión de referencia: el primer Create devuelve ErrDuplicate y el motor
// debe regenerar la referencia y reintentar una única vez.
func TestCreateMovement_ReintentaTrasReferenciaDuplicada(t *testing.T) {
	engine, movRepo, _, _ := newEngine(baseInventory())
	movRepo.createErrs = []error{domain.ErrDuplicate}

	out, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Reference)
	assert.Len(t, movRepo.created, 1)
}

func TestCreateMovement_DosColisionesFalla(t *testing.T) {
	engine, movRepo, _, _ := newEngine(baseInventory())
	movRepo.createErrs = []error{domain.ErrDuplicate, domain.ErrDuplicate}

	_, err := engine.CreateMovement(context.Background(), testUserID, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessMovement — ciclo de vida completo
// ──────────────────────────────────────────────────────────────────────────────

// createDraft crea un movimiento DRAFT listo para procesar.
func createDraft(t *testing.T, engine *appstock.MovementEngine, req dto.SaveMovementRequest) string {
	t.Helper()
	out, err := engine.CreateMovement(context.Background(), testUserID, req)
	require.NoError(t, err)
	return out.ID
}

func TestProcessMovement_AprobarYCompletarIncoming(t *testing.T) {
	engine, _, invRepo, productRepo := newEngine(baseInventory())
	cost := dec("7")
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("100"),
		MovementType: entity.MovementTypeINCOMING,
		UnitCost:     &cost,
	})

	ctx := context.Background()
	out, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusINPROGRESS, out.Status)
	assert.Equal(t, testUserID, out.ApprovedBy)

	out, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusCOMPLETED, out.Status)
	assert.Equal(t, testUserID, out.ExecutedBy)
	require.NotNil(t, out.ExecutedAt)

	inv, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, inv.Quantity.Equal(dec("200")), "100 + 100")
	assert.True(t, inv.AvailableQuantity.Equal(dec("200")))
	// WAC: (100*5 + 100*7) / 200 = 6, propagado al costo del producto
	assert.True(t, inv.UnitCost.Equal(dec("6")), "costo promedio, obtenido %s", inv.UnitCost)
	assert.True(t, productRepo.costUpdates[testProductID].Equal(dec("6")))
	assert.NotNil(t, inv.LastReceivedDate)
}

func TestProcessMovement_CompletarOutgoingInsuficiente(t *testing.T) {
	engine, _, invRepo, _ := newEngine(baseInventory())
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("150"), // más que los 100 disponibles
		MovementType: entity.MovementTypeOUTGOING,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)

	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// La transacción falló: nada cambió
	inv, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, inv.Quantity.Equal(dec("100")))
}

func TestProcessMovement_OutgoingConBackorderQuedaNegativo(t *testing.T) {
	inv := baseInventory()
	inv.BackOrderable = true
	engine, _, invRepo, _ := newEngine(inv)

	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("150"),
		MovementType: entity.MovementTypeOUTGOING,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)

	got, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, got.AvailableQuantity.Equal(dec("-50")),
		"backorder permite disponible negativo")
	assert.False(t, got.InStock)
}

// ADJUSTMENT fija la cantidad en el valor absoluto, no suma un delta.
func TestProcessMovement_AjusteEsAbsoluto(t *testing.T) {
	engine, _, invRepo, _ := newEngine(baseInventory())
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("40"),
		MovementType: entity.MovementTypeADJUSTMENT,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	out, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)
	assert.True(t, out.IsAdjustment)

	inv, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, inv.Quantity.Equal(dec("40")), "la cantidad queda en 40, no en 140")
	assert.True(t, inv.AvailableQuantity.Equal(dec("40")), "el disponible se desplaza por la diferencia")
}

func TestProcessMovement_TransferCreaRegistroDestino(t *testing.T) {
	engine, _, invRepo, _ := newEngine(baseInventory())
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:            testInventoryID,
		ProductID:              testProductID,
		Quantity:               dec("30"),
		MovementType:           entity.MovementTypeTRANSFER,
		SourceWarehouseID:      testWarehouseA,
		DestinationWarehouseID: testWarehouseB,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)

	source, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, source.Quantity.Equal(dec("70")))

	dest, _ := invRepo.GetByProductAndWarehouse(ctx, testProductID, testWarehouseB)
	require.NotNil(t, dest, "el registro destino debe crearse en el primer traslado")
	assert.True(t, dest.Quantity.Equal(dec("30")))
	assert.True(t, dest.AvailableQuantity.Equal(dec("30")))
	// El destino hereda configuración y costo del origen
	assert.True(t, dest.UnitCost.Equal(source.UnitCost))
	assert.Equal(t, source.ValuationMethod, dest.ValuationMethod)
	assert.True(t, dest.ReorderThreshold.Equal(source.ReorderThreshold))
}

func TestProcessMovement_TransferAcumulaEnDestinoExistente(t *testing.T) {
	source := baseInventory()
	dest := baseInventory()
	dest.ID = "inv-0002"
	dest.WarehouseID = testWarehouseB
	dest.Quantity = dec("10")
	dest.AvailableQuantity = dec("10")
	dest.UnitCost = dec("8")
	dest.RecalculateDerived()
	engine, _, invRepo, _ := newEngine(source, dest)

	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:            testInventoryID,
		ProductID:              testProductID,
		Quantity:               dec("30"),
		MovementType:           entity.MovementTypeTRANSFER,
		SourceWarehouseID:      testWarehouseA,
		DestinationWarehouseID: testWarehouseB,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)

	got, _ := invRepo.GetByID(ctx, "inv-0002")
	assert.True(t, got.Quantity.Equal(dec("40")))
	// WAC destino: (10*8 + 30*5) / 40 = 5.75
	assert.True(t, got.UnitCost.Equal(dec("5.75")), "obtenido %s", got.UnitCost)
}

// Un traslado nunca deja el origen en negativo, aunque sea backorderable.
func TestProcessMovement_TransferNoAdmiteBackorder(t *testing.T) {
	source := baseInventory()
	source.BackOrderable = true
	engine, _, _, _ := newEngine(source)

	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:            testInventoryID,
		ProductID:              testProductID,
		Quantity:               dec("150"),
		MovementType:           entity.MovementTypeTRANSFER,
		SourceWarehouseID:      testWarehouseA,
		DestinationWarehouseID: testWarehouseB,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestProcessMovement_CompletadoEsInmutable(t *testing.T) {
	engine, _, _, _ := newEngine(baseInventory())
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeINCOMING,
	})

	ctx := context.Background()
	_, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionApprove)
	require.NoError(t, err)
	_, err = engine.ProcessMovement(ctx, id, testUserID, stock.ActionComplete)
	require.NoError(t, err)

	for _, action := range []string{stock.ActionApprove, stock.ActionStart, stock.ActionComplete, stock.ActionCancel} {
		_, err = engine.ProcessMovement(ctx, id, testUserID, action)
		assert.True(t, errors.Is(err, domain.ErrMovementCompleted),
			"acción %s sobre COMPLETED debe rechazarse", action)
	}
}

func TestProcessMovement_CancelarDraft(t *testing.T) {
	engine, _, invRepo, _ := newEngine(baseInventory())
	id := createDraft(t, engine, dto.SaveMovementRequest{
		InventoryID:  testInventoryID,
		ProductID:    testProductID,
		Quantity:     dec("10"),
		MovementType: entity.MovementTypeOUTGOING,
	})

	ctx := context.Background()
	out, err := engine.ProcessMovement(ctx, id, testUserID, stock.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusCANCELLED, out.Status)

	inv, _ := invRepo.GetByID(ctx, testInventoryID)
	assert.True(t, inv.Quantity.Equal(dec("100")), "cancelar no toca inventario")
}

func TestProcessMovement_MovimientoInexistente(t *testing.T) {
	engine, _, _, _ := newEngine(baseInventory())
	_, err := engine.ProcessMovement(context.Background(), "no-existe", testUserID, stock.ActionApprove)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
