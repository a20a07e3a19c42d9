package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
	"github.com/mercafresh/backoffice-api/internal/domain/stock"
)

// Defaults valores por defecto del subsistema, tomados de la configuración.
type Defaults struct {
	Valuation        string
	ReorderThreshold int
	ReorderQuantity  int
	AllowBackorder   bool
}

// InventoryUseCase administra registros de inventario: creación con movimiento inicial,
// ajuste de cantidad, actualización de metadatos y consultas (resumen, reposición).
type InventoryUseCase struct {
	txRunner      TxRunner
	invRepo       repository.InventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	refGen        *ReferenceGenerator
	pdfGen        SummaryPDFGenerator
	defaults      Defaults
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	refGen *ReferenceGenerator,
	pdfGen SummaryPDFGenerator,
	defaults Defaults,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:      txRunner,
		invRepo:       invRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		refGen:        refGen,
		pdfGen:        pdfGen,
		defaults:      defaults,
	}
}

// resolveWarehouse devuelve la bodega indicada o la predeterminada si el ID es vacío.
func (uc *InventoryUseCase) resolveWarehouse(warehouseID string) (*entity.Warehouse, error) {
	if warehouseID == "" {
		wh, err := uc.warehouseRepo.GetDefault()
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		return wh, nil
	}
	if err := stock.ValidateWarehouseID(warehouseID); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// applyDefaults completa los metadatos con los valores configurados cuando el cliente no los envía.
func (uc *InventoryUseCase) applyDefaults(meta *stock.InventoryMetadata) {
	if meta.ValuationMethod == "" && uc.defaults.Valuation != "" {
		meta.ValuationMethod = uc.defaults.Valuation
	}
	if meta.ReorderThreshold == nil && uc.defaults.ReorderThreshold > 0 {
		v := decimal.NewFromInt(int64(uc.defaults.ReorderThreshold))
		meta.ReorderThreshold = &v
	}
	if meta.ReorderQuantity == nil && uc.defaults.ReorderQuantity > 0 {
		v := decimal.NewFromInt(int64(uc.defaults.ReorderQuantity))
		meta.ReorderQuantity = &v
	}
}

// CreateWithMovement crea el registro de inventario para un SKU en una bodega y,
// si la cantidad inicial es mayor a cero, registra en la misma transacción un
// movimiento INCOMING COMPLETED con razón INVENTORY que documenta el stock inicial.
func (uc *InventoryUseCase) CreateWithMovement(ctx context.Context, userID string, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := stock.ValidateSKU(in.SKU); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	warehouse, err := uc.resolveWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.invRepo.GetByProductAndWarehouse(ctx, product.ID, warehouse.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	meta := stock.InventoryMetadata{
		Quantity:          in.Quantity,
		AvailableQuantity: in.AvailableQuantity,
		ReservedQuantity:  in.ReservedQuantity,
		ReorderThreshold:  in.ReorderThreshold,
		ReorderQuantity:   in.ReorderQuantity,
		SafetyStockLevel:  in.SafetyStockLevel,
		UnitCost:          in.UnitCost,
		ValuationMethod:   in.ValuationMethod,
		BackOrderable:     in.BackOrderable || uc.defaults.AllowBackorder,
	}
	uc.applyDefaults(&meta)
	norm, err := stock.ValidateInventoryMetadata(meta)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Inventory{
		ID:                uuid.New().String(),
		ProductID:         product.ID,
		WarehouseID:       warehouse.ID,
		Quantity:          norm.Quantity,
		AvailableQuantity: norm.AvailableQuantity,
		ReservedQuantity:  norm.ReservedQuantity,
		ReorderThreshold:  norm.ReorderThreshold,
		ReorderQuantity:   norm.ReorderQuantity,
		SafetyStockLevel:  norm.SafetyStockLevel,
		UnitCost:          norm.UnitCost,
		TotalValue:        norm.TotalValue,
		ValuationMethod:   norm.ValuationMethod,
		InStock:           norm.InStock,
		BackOrderable:     norm.BackOrderable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	reference := uc.refGen.Generate(ctx, entity.MovementTypeINCOMING, warehouse.ID)

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		_ repository.ProductRepository,
	) error {
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		if !inv.Quantity.GreaterThan(decimal.Zero) {
			return nil
		}
		executedAt := now
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			Reference:    reference,
			InventoryID:  inv.ID,
			ProductID:    product.ID,
			Quantity:     inv.Quantity,
			MovementType: entity.MovementTypeINCOMING,
			Reason:       entity.ReasonInventory,
			Status:       entity.MovementStatusCOMPLETED,
			UnitCost:     inv.UnitCost,
			TotalValue:   inv.Quantity.Mul(inv.UnitCost),
			CreatedBy:    userID,
			ExecutedBy:   userID,
			ExecutedAt:   &executedAt,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// UpdateQuantity fija la cantidad total de un registro y documenta el delta con un
// movimiento INCOMING u OUTGOING, todo en una transacción con la fila bloqueada.
func (uc *InventoryUseCase) UpdateQuantity(ctx context.Context, inventoryID, userID string, in dto.UpdateQuantityRequest) (*dto.InventoryResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "debe ser mayor o igual a cero")
	}

	var out *entity.Inventory
	reference := ""
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		_ repository.ProductRepository,
	) error {
		inv, err := invRepo.GetByIDForUpdate(ctx, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		delta := in.Quantity.Sub(inv.Quantity)
		if delta.IsZero() {
			out = inv
			return nil
		}

		movementType := entity.MovementTypeINCOMING
		if delta.IsNegative() {
			movementType = entity.MovementTypeOUTGOING
		}

		newAvailable := inv.AvailableQuantity.Add(delta)
		if !inv.BackOrderable && newAvailable.IsNegative() {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		inv.Quantity = in.Quantity
		inv.AvailableQuantity = newAvailable
		inv.RecalculateDerived()
		inv.LastStockCheck = &now
		inv.UpdatedAt = now
		if err := invRepo.Update(ctx, inv); err != nil {
			return err
		}

		if reference == "" {
			reference = uc.refGen.Generate(ctx, movementType, inv.WarehouseID)
		}
		executedAt := now
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			Reference:    reference,
			InventoryID:  inv.ID,
			ProductID:    inv.ProductID,
			Quantity:     delta.Abs(),
			MovementType: movementType,
			Reason:       entity.ReasonAdjustment,
			Status:       entity.MovementStatusCOMPLETED,
			UnitCost:     inv.UnitCost,
			TotalValue:   delta.Abs().Mul(inv.UnitCost),
			IsAdjustment: true,
			Notes:        in.Notes,
			CreatedBy:    userID,
			ExecutedBy:   userID,
			ExecutedAt:   &executedAt,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(out), nil
}

// Update actualiza solo los campos de configuración del registro; las cantidades
// (quantity/availableQuantity/reservedQuantity) quedan explícitamente excluidas.
// Recalcula inStock como availableQuantity > safetyStockLevel.
func (uc *InventoryUseCase) Update(ctx context.Context, inventoryID string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.ReorderThreshold != nil {
		if in.ReorderThreshold.IsNegative() {
			return nil, domain.NewValidationError("reorderThreshold", "debe ser mayor o igual a cero")
		}
		inv.ReorderThreshold = *in.ReorderThreshold
	}
	if in.ReorderQuantity != nil {
		if in.ReorderQuantity.IsNegative() {
			return nil, domain.NewValidationError("reorderQuantity", "debe ser mayor o igual a cero")
		}
		inv.ReorderQuantity = *in.ReorderQuantity
	}
	if in.SafetyStockLevel != nil {
		if in.SafetyStockLevel.IsNegative() {
			return nil, domain.NewValidationError("safetyStockLevel", "debe ser mayor o igual a cero")
		}
		inv.SafetyStockLevel = *in.SafetyStockLevel
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unitCost", "debe ser mayor o igual a cero")
		}
		inv.UnitCost = *in.UnitCost
	}
	if in.ValuationMethod != nil {
		switch *in.ValuationMethod {
		case entity.ValuationFIFO, entity.ValuationLIFO, entity.ValuationWAC, entity.ValuationFEFO:
			inv.ValuationMethod = *in.ValuationMethod
		default:
			return nil, domain.NewValidationError("valuationMethod", "debe ser FIFO, LIFO, WAC o FEFO")
		}
	}
	if in.BackOrderable != nil {
		inv.BackOrderable = *in.BackOrderable
	}

	inv.TotalValue = inv.Quantity.Mul(inv.UnitCost)
	inv.InStock = inv.AvailableQuantity.GreaterThan(inv.SafetyStockLevel)
	inv.UpdatedAt = time.Now()

	if err := uc.invRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Get obtiene un registro de inventario por ID.
func (uc *InventoryUseCase) Get(ctx context.Context, inventoryID string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(inv), nil
}

// Summary devuelve el resumen de inventario agregado por bodega.
func (uc *InventoryUseCase) Summary(ctx context.Context) ([]dto.InventorySummaryRow, error) {
	rows, err := uc.invRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventorySummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventorySummaryRow{
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Records:       r.Records,
			TotalUnits:    r.TotalUnits,
			TotalValue:    r.TotalValue,
			LowStock:      r.LowStock,
		})
	}
	return out, nil
}

// SummaryPDF genera el reporte PDF del resumen de inventario por bodega.
func (uc *InventoryUseCase) SummaryPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSummaryPDF(ctx, rows, time.Now())
}

// Replenishment devuelve los registros bajo punto de reorden con la cantidad sugerida.
// warehouseID vacío considera todas las bodegas.
func (uc *InventoryUseCase) Replenishment(ctx context.Context, warehouseID string) ([]dto.ReplenishmentItemDTO, error) {
	items, err := uc.invRepo.BelowReorder(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentItemDTO, 0, len(items))
	for _, it := range items {
		suggested := it.ReorderQuantity
		// Reponer al menos hasta el punto de reorden
		if deficit := it.ReorderThreshold.Sub(it.Quantity); deficit.GreaterThan(suggested) {
			suggested = deficit
		}
		out = append(out, dto.ReplenishmentItemDTO{
			InventoryID:      it.InventoryID,
			ProductID:        it.ProductID,
			SKU:              it.SKU,
			ProductName:      it.ProductName,
			WarehouseID:      it.WarehouseID,
			Quantity:         it.Quantity,
			ReorderThreshold: it.ReorderThreshold,
			SuggestedQty:     suggested,
			EstimatedCost:    suggested.Mul(it.UnitCost),
		})
	}
	return out, nil
}
