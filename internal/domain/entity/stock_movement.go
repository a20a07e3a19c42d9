package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeINCOMING   = "INCOMING"   // entrada
	MovementTypeOUTGOING   = "OUTGOING"   // salida
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (cantidad absoluta)
	MovementTypeRETURN     = "RETURN"     // devolución
)

// Razones de negocio de un movimiento.
const (
	ReasonPurchase    = "PURCHASE"
	ReasonSale        = "SALE"
	ReasonConsumption = "CONSUMPTION" // consumo por producción de recetas
	ReasonTransfer    = "TRANSFER"
	ReasonAdjustment  = "ADJUSTMENT"
	ReasonReturn      = "RETURN"
	ReasonInventory   = "INVENTORY" // stock inicial al crear el registro
	ReasonDamaged     = "DAMAGED"
	ReasonExpired     = "EXPIRED"
)

// Estados del ciclo de vida de un movimiento.
const (
	MovementStatusDRAFT      = "DRAFT"
	MovementStatusPLANNED    = "PLANNED"
	MovementStatusINPROGRESS = "IN_PROGRESS"
	MovementStatusCOMPLETED  = "COMPLETED"
	MovementStatusCANCELLED  = "CANCELLED"
)

// StockMovement representa un evento que afecta inventario. Quantity es siempre
// magnitud positiva; el tipo determina el signo del efecto. Un movimiento COMPLETED
// es inmutable: su efecto ya fue aplicado y no debe reaplicarse.
type StockMovement struct {
	ID                     string
	Reference              string // código único generado: TYPE-BODEGA-YYYYMMDD-SSSS
	InventoryID            string
	ProductID              string
	Quantity               decimal.Decimal
	MovementType           string
	Reason                 string
	Status                 string
	UnitCost               decimal.Decimal
	TotalValue             decimal.Decimal
	SourceWarehouseID      string // solo TRANSFER
	DestinationWarehouseID string // solo TRANSFER
	IsAdjustment           bool
	Notes                  string
	CreatedBy              string
	ApprovedBy             string
	ExecutedBy             string
	ScheduledAt            *time.Time
	ExecutedAt             *time.Time
	ParentMovementID       string // enlaza piernas de operaciones compuestas
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsTerminal indica si el movimiento ya no admite transiciones.
func (m *StockMovement) IsTerminal() bool {
	return m.Status == MovementStatusCOMPLETED || m.Status == MovementStatusCANCELLED
}
