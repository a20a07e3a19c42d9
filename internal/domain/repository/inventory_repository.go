package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// InventorySummaryRow agrega las métricas de inventario de una bodega.
type InventorySummaryRow struct {
	WarehouseID   string
	WarehouseName string
	Records       int
	TotalUnits    decimal.Decimal
	TotalValue    decimal.Decimal
	LowStock      int // registros por debajo de su punto de reorden
}

// ReplenishmentItem es un registro bajo su punto de reorden, candidato a reposición.
type ReplenishmentItem struct {
	InventoryID      string
	ProductID        string
	SKU              string
	ProductName      string
	WarehouseID      string
	Quantity         decimal.Decimal
	ReorderThreshold decimal.Decimal
	ReorderQuantity  decimal.Decimal
	UnitCost         decimal.Decimal
}

// InventoryRepository define el puerto de persistencia para registros de inventario.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	// GetByIDForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	// GetByProductAndWarehouseForUpdate bloquea la fila destino en traslados.
	GetByProductAndWarehouseForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Inventory, error)
	Summary(ctx context.Context) ([]InventorySummaryRow, error)
	// BelowReorder devuelve registros con quantity < reorderThreshold.
	// warehouseID vacío considera todas las bodegas.
	BelowReorder(ctx context.Context, warehouseID string) ([]ReplenishmentItem, error)
}
