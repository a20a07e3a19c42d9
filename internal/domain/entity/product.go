package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo del mercado.
// Cost es el costo promedio ponderado actual; el stock por bodega vive en Inventory.
type Product struct {
	ID          string
	SKU         string // código único, 3-100 caracteres
	Name        string
	Description string
	CategoryID  string
	SupplierID  string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado
	UnitMeasure string          // kg, un, lt, paquete...
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
