package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveMovementRequest body para POST /movements/save.
type SaveMovementRequest struct {
	ProductID              string           `json:"product_id"`
	InventoryID            string           `json:"inventory_id"`
	Quantity               decimal.Decimal  `json:"quantity"`
	MovementType           string           `json:"movement_type"`
	Reason                 string           `json:"reason,omitempty"`
	ReferenceType          string           `json:"reference_type,omitempty"` // "order", "recipe", "production"...
	SourceWarehouseID      string           `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string           `json:"destination_warehouse_id,omitempty"`
	UnitCost               *decimal.Decimal `json:"unit_cost,omitempty"`
	ScheduledAt            *time.Time       `json:"scheduled_at,omitempty"`
	Notes                  string           `json:"notes,omitempty"`
}

// ProcessMovementRequest body para PATCH /movements/:modelId/process.
type ProcessMovementRequest struct {
	Action string `json:"action"` // approve | start | complete | cancel
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID                     string          `json:"id"`
	Reference              string          `json:"reference"`
	InventoryID            string          `json:"inventory_id"`
	ProductID              string          `json:"product_id"`
	Quantity               decimal.Decimal `json:"quantity"`
	MovementType           string          `json:"movement_type"`
	Reason                 string          `json:"reason"`
	Status                 string          `json:"status"`
	UnitCost               decimal.Decimal `json:"unit_cost"`
	TotalValue             decimal.Decimal `json:"total_value"`
	SourceWarehouseID      string          `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string          `json:"destination_warehouse_id,omitempty"`
	IsAdjustment           bool            `json:"is_adjustment"`
	Notes                  string          `json:"notes,omitempty"`
	CreatedBy              string          `json:"created_by"`
	ApprovedBy             string          `json:"approved_by,omitempty"`
	ExecutedBy             string          `json:"executed_by,omitempty"`
	ScheduledAt            *time.Time      `json:"scheduled_at,omitempty"`
	ExecutedAt             *time.Time      `json:"executed_at,omitempty"`
	ParentMovementID       string          `json:"parent_movement_id,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
