package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /inventory/save.
// La validación de campos la hace el validador de dominio (stock.ValidateInventoryMetadata),
// que reporta el campo ofensor.
type CreateInventoryRequest struct {
	SKU               string           `json:"sku"`
	WarehouseID       string           `json:"warehouse_id,omitempty"` // vacío = bodega predeterminada
	Quantity          decimal.Decimal  `json:"quantity"`
	AvailableQuantity *decimal.Decimal `json:"available_quantity,omitempty"`
	ReservedQuantity  *decimal.Decimal `json:"reserved_quantity,omitempty"`
	ReorderThreshold  *decimal.Decimal `json:"reorder_threshold,omitempty"`
	ReorderQuantity   *decimal.Decimal `json:"reorder_quantity,omitempty"`
	SafetyStockLevel  *decimal.Decimal `json:"safety_stock_level,omitempty"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	ValuationMethod   string           `json:"valuation_method,omitempty"`
	BackOrderable     bool             `json:"back_orderable"`
}

// UpdateInventoryRequest body para PUT /inventory/update/:modelId.
// Solo campos de configuración: las cantidades se modifican vía movimientos
// o PATCH /inventory/update-quantity.
type UpdateInventoryRequest struct {
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold,omitempty"`
	ReorderQuantity  *decimal.Decimal `json:"reorder_quantity,omitempty"`
	SafetyStockLevel *decimal.Decimal `json:"safety_stock_level,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	ValuationMethod  *string          `json:"valuation_method,omitempty"`
	BackOrderable    *bool            `json:"back_orderable,omitempty"`
}

// UpdateQuantityRequest body para PATCH /inventory/update-quantity/:modelId.
type UpdateQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"` // nueva cantidad total
	Notes    string          `json:"notes,omitempty"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	ReorderThreshold  decimal.Decimal `json:"reorder_threshold"`
	ReorderQuantity   decimal.Decimal `json:"reorder_quantity"`
	SafetyStockLevel  decimal.Decimal `json:"safety_stock_level"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	ValuationMethod   string          `json:"valuation_method"`
	InStock           bool            `json:"in_stock"`
	BackOrderable     bool            `json:"back_orderable"`
	LastStockCheck    *time.Time      `json:"last_stock_check,omitempty"`
	LastReceivedDate  *time.Time      `json:"last_received_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InventorySummaryRow resumen por bodega.
type InventorySummaryRow struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Records       int             `json:"records"`
	TotalUnits    decimal.Decimal `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStock      int             `json:"low_stock"`
}

// ReplenishmentItemDTO registro bajo punto de reorden con cantidad sugerida de pedido.
type ReplenishmentItemDTO struct {
	InventoryID      string          `json:"inventory_id"`
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	WarehouseID      string          `json:"warehouse_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	SuggestedQty     decimal.Decimal `json:"suggested_qty"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
}
