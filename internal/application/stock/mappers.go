package stock

import (
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

func toInventoryResponse(i *entity.Inventory) *dto.InventoryResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:                i.ID,
		ProductID:         i.ProductID,
		WarehouseID:       i.WarehouseID,
		Quantity:          i.Quantity,
		AvailableQuantity: i.AvailableQuantity,
		ReservedQuantity:  i.ReservedQuantity,
		ReorderThreshold:  i.ReorderThreshold,
		ReorderQuantity:   i.ReorderQuantity,
		SafetyStockLevel:  i.SafetyStockLevel,
		UnitCost:          i.UnitCost,
		TotalValue:        i.TotalValue,
		ValuationMethod:   i.ValuationMethod,
		InStock:           i.InStock,
		BackOrderable:     i.BackOrderable,
		LastStockCheck:    i.LastStockCheck,
		LastReceivedDate:  i.LastReceivedDate,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:                     m.ID,
		Reference:              m.Reference,
		InventoryID:            m.InventoryID,
		ProductID:              m.ProductID,
		Quantity:               m.Quantity,
		MovementType:           m.MovementType,
		Reason:                 m.Reason,
		Status:                 m.Status,
		UnitCost:               m.UnitCost,
		TotalValue:             m.TotalValue,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		IsAdjustment:           m.IsAdjustment,
		Notes:                  m.Notes,
		CreatedBy:              m.CreatedBy,
		ApprovedBy:             m.ApprovedBy,
		ExecutedBy:             m.ExecutedBy,
		ScheduledAt:            m.ScheduledAt,
		ExecutedAt:             m.ExecutedAt,
		ParentMovementID:       m.ParentMovementID,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}
