package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	appstock "github.com/mercafresh/backoffice-api/internal/application/stock"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

func newInventoryUC(invRepo *fakeInventoryRepo, movRepo *fakeMovementRepo) (*appstock.InventoryUseCase, *fakeProductRepo, *fakeWarehouseRepo) {
	productRepo := newFakeProductRepo(&entity.Product{ID: testProductID, SKU: "SKU-001", Cost: dec("5")})
	warehouseRepo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: testWarehouseA, Name: "Central", IsDefault: true, Active: true},
		&entity.Warehouse{ID: testWarehouseB, Name: "Norte", Active: true},
	)
	tx := &fakeTxRunner{movRepo: movRepo, invRepo: invRepo, productRepo: productRepo}
	log := testLogger()
	uc := appstock.NewInventoryUseCase(
		tx, invRepo, productRepo, warehouseRepo,
		appstock.NewReferenceGenerator(movRepo, log),
		&fakePDFGenerator{},
		appstock.Defaults{Valuation: entity.ValuationWAC, ReorderThreshold: 5, ReorderQuantity: 10},
	)
	return uc, productRepo, warehouseRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateWithMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateWithMovement_RegistraMovimientoInicial(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	movRepo := newFakeMovementRepo()
	uc, _, _ := newInventoryUC(invRepo, movRepo)

	cost := dec("2.50")
	out, err := uc.CreateWithMovement(context.Background(), testUserID, dto.CreateInventoryRequest{
		SKU:         "SKU-001",
		WarehouseID: testWarehouseA,
		Quantity:    dec("40"),
		UnitCost:    &cost,
	})
	require.NoError(t, err)

	assert.Equal(t, testProductID, out.ProductID)
	assert.Equal(t, testWarehouseA, out.WarehouseID)
	assert.True(t, out.TotalValue.Equal(dec("100")), "40 * 2.50")
	assert.True(t, out.InStock)

	// El stock inicial queda documentado con un INCOMING completado con razón INVENTORY
	require.Len(t, movRepo.created, 1)
	mov := movRepo.created[0]
	assert.Equal(t, entity.MovementTypeINCOMING, mov.MovementType)
	assert.Equal(t, entity.ReasonInventory, mov.Reason)
	assert.Equal(t, entity.MovementStatusCOMPLETED, mov.Status)
	assert.True(t, mov.Quantity.Equal(dec("40")))
	assert.Equal(t, testUserID, mov.ExecutedBy)
	require.NotNil(t, mov.ExecutedAt)
}

// Cantidad inicial cero: se crea el registro pero no hay nada que documentar.
func TestCreateWithMovement_CantidadCeroSinMovimiento(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	movRepo := newFakeMovementRepo()
	uc, _, _ := newInventoryUC(invRepo, movRepo)

	out, err := uc.CreateWithMovement(context.Background(), testUserID, dto.CreateInventoryRequest{
		SKU:      "SKU-001",
		Quantity: decimal.Zero,
	})
	require.NoError(t, err)
	assert.False(t, out.InStock)
	assert.Empty(t, movRepo.created)
}

// Sin bodega explícita el registro cae en la bodega predeterminada.
func TestCreateWithMovement_UsaBodegaPredeterminada(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())

	out, err := uc.CreateWithMovement(context.Background(), testUserID, dto.CreateInventoryRequest{
		SKU:      "SKU-001",
		Quantity: dec("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, testWarehouseA, out.WarehouseID)
}

// Los defaults de configuración llenan lo que el cliente no envía.
func TestCreateWithMovement_AplicaDefaultsDeConfiguracion(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())

	out, err := uc.CreateWithMovement(context.Background(), testUserID, dto.CreateInventoryRequest{
		SKU:      "SKU-001",
		Quantity: dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, out.ReorderThreshold.Equal(dec("5")))
	assert.True(t, out.ReorderQuantity.Equal(dec("10")))
	assert.Equal(t, entity.ValuationWAC, out.ValuationMethod)
}

func TestCreateWithMovement_SKUInexistente(t *testing.T) {
	uc, _, _ := newInventoryUC(newFakeInventoryRepo(), newFakeMovementRepo())

	_, err := uc.CreateWithMovement(context.Background(), testUserID, dto.CreateInventoryRequest{
		SKU:      "SKU-NO-EXISTE",
		Quantity: dec("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Un par (producto, bodega) solo admite un registro: el segundo intento es duplicado.
func TestCreateWithMovement_ParDuplicado(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())
	ctx := context.Background()

	_, err := uc.CreateWithMovement(ctx, testUserID, dto.CreateInventoryRequest{
		SKU: "SKU-001", WarehouseID: testWarehouseA, Quantity: dec("5"),
	})
	require.NoError(t, err)

	_, err = uc.CreateWithMovement(ctx, testUserID, dto.CreateInventoryRequest{
		SKU: "SKU-001", WarehouseID: testWarehouseA, Quantity: dec("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// El mismo SKU en otra bodega sí es válido
	_, err = uc.CreateWithMovement(ctx, testUserID, dto.CreateInventoryRequest{
		SKU: "SKU-001", WarehouseID: testWarehouseB, Quantity: dec("5"),
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateQuantity_SubidaDocumentaIncoming(t *testing.T) {
	invRepo := newFakeInventoryRepo(baseInventory())
	movRepo := newFakeMovementRepo()
	uc, _, _ := newInventoryUC(invRepo, movRepo)

	out, err := uc.UpdateQuantity(context.Background(), testInventoryID, testUserID, dto.UpdateQuantityRequest{
		Quantity: dec("130"),
		Notes:    "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("130")))
	assert.True(t, out.AvailableQuantity.Equal(dec("130")))

	require.Len(t, movRepo.created, 1)
	mov := movRepo.created[0]
	assert.Equal(t, entity.MovementTypeINCOMING, mov.MovementType)
	assert.Equal(t, entity.MovementStatusCOMPLETED, mov.Status)
	assert.True(t, mov.Quantity.Equal(dec("30")), "el movimiento registra el delta, no el total")
	assert.True(t, mov.IsAdjustment)
	assert.Equal(t, "conteo físico", mov.Notes)
}

func TestUpdateQuantity_BajadaDocumentaOutgoing(t *testing.T) {
	invRepo := newFakeInventoryRepo(baseInventory())
	movRepo := newFakeMovementRepo()
	uc, _, _ := newInventoryUC(invRepo, movRepo)

	out, err := uc.UpdateQuantity(context.Background(), testInventoryID, testUserID, dto.UpdateQuantityRequest{
		Quantity: dec("60"),
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("60")))

	require.Len(t, movRepo.created, 1)
	assert.Equal(t, entity.MovementTypeOUTGOING, movRepo.created[0].MovementType)
	assert.True(t, movRepo.created[0].Quantity.Equal(dec("40")))
}

// Cantidad sin cambio: no se genera movimiento.
func TestUpdateQuantity_SinCambioNoGeneraMovimiento(t *testing.T) {
	invRepo := newFakeInventoryRepo(baseInventory())
	movRepo := newFakeMovementRepo()
	uc, _, _ := newInventoryUC(invRepo, movRepo)

	out, err := uc.UpdateQuantity(context.Background(), testInventoryID, testUserID, dto.UpdateQuantityRequest{
		Quantity: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("100")))
	assert.Empty(t, movRepo.created)
}

func TestUpdateQuantity_NegativaRechazada(t *testing.T) {
	uc, _, _ := newInventoryUC(newFakeInventoryRepo(baseInventory()), newFakeMovementRepo())
	_, err := uc.UpdateQuantity(context.Background(), testInventoryID, testUserID, dto.UpdateQuantityRequest{
		Quantity: dec("-1"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Bajar la cantidad por debajo de las reservas dejaría disponible negativo.
func TestUpdateQuantity_RespetaReglasDeBackorder(t *testing.T) {
	inv := baseInventory()
	inv.ReservedQuantity = dec("50")
	inv.AvailableQuantity = dec("50")
	uc, _, _ := newInventoryUC(newFakeInventoryRepo(inv), newFakeMovementRepo())

	_, err := uc.UpdateQuantity(context.Background(), testInventoryID, testUserID, dto.UpdateQuantityRequest{
		Quantity: dec("30"), // disponible pasaría a -20
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

// ──────────────────────────────────────────────────────────────────────────────
// Update (configuración) / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SoloConfiguracion(t *testing.T) {
	invRepo := newFakeInventoryRepo(baseInventory())
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())

	threshold := dec("20")
	cost := dec("9")
	method := entity.ValuationFIFO
	out, err := uc.Update(context.Background(), testInventoryID, dto.UpdateInventoryRequest{
		ReorderThreshold: &threshold,
		UnitCost:         &cost,
		ValuationMethod:  &method,
	})
	require.NoError(t, err)

	assert.True(t, out.ReorderThreshold.Equal(dec("20")))
	assert.True(t, out.UnitCost.Equal(dec("9")))
	assert.Equal(t, entity.ValuationFIFO, out.ValuationMethod)
	assert.True(t, out.Quantity.Equal(dec("100")), "las cantidades no se tocan")
	assert.True(t, out.TotalValue.Equal(dec("900")), "el valor total se recalcula con el nuevo costo")
}

// Subir el safety stock por encima del disponible saca el registro de "en stock".
func TestUpdate_SafetyStockRecalculaInStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(baseInventory())
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())

	safety := dec("150")
	out, err := uc.Update(context.Background(), testInventoryID, dto.UpdateInventoryRequest{
		SafetyStockLevel: &safety,
	})
	require.NoError(t, err)
	assert.False(t, out.InStock)
}

func TestUpdate_MetodoDeValoracionInvalido(t *testing.T) {
	uc, _, _ := newInventoryUC(newFakeInventoryRepo(baseInventory()), newFakeMovementRepo())
	method := "JIT"
	_, err := uc.Update(context.Background(), testInventoryID, dto.UpdateInventoryRequest{
		ValuationMethod: &method,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGet_NoEncontrado(t *testing.T) {
	uc, _, _ := newInventoryUC(newFakeInventoryRepo(), newFakeMovementRepo())
	_, err := uc.Get(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Replenishment
// ──────────────────────────────────────────────────────────────────────────────

func TestReplenishment_CantidadSugerida(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	invRepo.belowRows = []repository.ReplenishmentItem{
		{
			// Déficit pequeño: gana la cantidad de reorden configurada
			InventoryID:      "inv-a",
			SKU:              "SKU-001",
			WarehouseID:      testWarehouseA,
			Quantity:         dec("4"),
			ReorderThreshold: dec("5"),
			ReorderQuantity:  dec("10"),
			UnitCost:         dec("2"),
		},
		{
			// Déficit grande: la sugerencia cubre al menos el déficit
			InventoryID:      "inv-b",
			SKU:              "SKU-002",
			WarehouseID:      testWarehouseA,
			Quantity:         dec("1"),
			ReorderThreshold: dec("50"),
			ReorderQuantity:  dec("10"),
			UnitCost:         dec("3"),
		},
	}
	uc, _, _ := newInventoryUC(invRepo, newFakeMovementRepo())

	items, err := uc.Replenishment(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.True(t, items[0].SuggestedQty.Equal(dec("10")))
	assert.True(t, items[0].EstimatedCost.Equal(dec("20")))

	assert.True(t, items[1].SuggestedQty.Equal(dec("49")), "50 - 1 supera la cantidad de reorden")
	assert.True(t, items[1].EstimatedCost.Equal(dec("147")))
}
