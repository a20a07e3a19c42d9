package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de valoración de inventario.
const (
	ValuationFIFO = "FIFO"
	ValuationLIFO = "LIFO"
	ValuationWAC  = "WAC" // costo promedio ponderado
	ValuationFEFO = "FEFO"
)

// Inventory representa el registro de inventario de un producto en una bodega.
// Existe una sola fila por par (producto, bodega); se crea una vez y los movimientos
// la mutan en el lugar, nunca se recrea.
//
// Invariantes: 0 <= AvailableQuantity <= Quantity; 0 <= ReservedQuantity <= Quantity;
// si BackOrderable es false, AvailableQuantity >= 0.
type Inventory struct {
	ID                string
	ProductID         string
	WarehouseID       string
	Quantity          decimal.Decimal // total en bodega
	AvailableQuantity decimal.Decimal // Quantity menos reservas
	ReservedQuantity  decimal.Decimal
	ReorderThreshold  decimal.Decimal // punto de reorden
	ReorderQuantity   decimal.Decimal // cantidad sugerida de pedido
	SafetyStockLevel  decimal.Decimal
	UnitCost          decimal.Decimal
	TotalValue        decimal.Decimal // Quantity * UnitCost
	ValuationMethod   string          // FIFO, LIFO, WAC, FEFO
	InStock           bool
	BackOrderable     bool
	LastStockCheck    *time.Time
	LastReceivedDate  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecalculateDerived recalcula TotalValue e InStock a partir del estado actual.
// InStock significa "hay disponible por encima del nivel de seguridad".
func (i *Inventory) RecalculateDerived() {
	i.TotalValue = i.Quantity.Mul(i.UnitCost)
	i.InStock = i.AvailableQuantity.GreaterThan(i.SafetyStockLevel)
}
