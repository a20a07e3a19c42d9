// Package stock contiene los servicios de dominio puros del subsistema de inventario:
// validación/normalización de metadatos y movimientos, la tabla de transiciones del
// ciclo de vida de un movimiento y el cálculo de costo promedio. Sin I/O.
package stock

import (
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// Defaults aplicados al normalizar metadatos de inventario.
var (
	DefaultReorderThreshold = decimal.NewFromInt(5)
	DefaultReorderQuantity  = decimal.NewFromInt(10)
	DefaultValuationMethod  = entity.ValuationWAC
)

// InventoryMetadata agrupa los campos configurables de un registro de inventario.
// Los punteros distinguen "no enviado" de "cero explícito".
type InventoryMetadata struct {
	Quantity          decimal.Decimal
	AvailableQuantity *decimal.Decimal
	ReservedQuantity  *decimal.Decimal
	ReorderThreshold  *decimal.Decimal
	ReorderQuantity   *decimal.Decimal
	SafetyStockLevel  *decimal.Decimal
	UnitCost          *decimal.Decimal
	ValuationMethod   string
	BackOrderable     bool
}

// NormalizedInventory es el resultado de validar y completar metadatos.
type NormalizedInventory struct {
	Quantity          decimal.Decimal
	AvailableQuantity decimal.Decimal
	ReservedQuantity  decimal.Decimal
	ReorderThreshold  decimal.Decimal
	ReorderQuantity   decimal.Decimal
	SafetyStockLevel  decimal.Decimal
	UnitCost          decimal.Decimal
	TotalValue        decimal.Decimal
	ValuationMethod   string
	InStock           bool
	BackOrderable     bool
}

var validValuations = map[string]bool{
	entity.ValuationFIFO: true,
	entity.ValuationLIFO: true,
	entity.ValuationWAC:  true,
	entity.ValuationFEFO: true,
}

// ValidateInventoryMetadata valida los metadatos y rellena los valores por defecto.
// Falla con ValidationError identificando el campo ofensor; no muta nada.
func ValidateInventoryMetadata(meta InventoryMetadata) (*NormalizedInventory, error) {
	if meta.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "debe ser mayor o igual a cero")
	}

	out := &NormalizedInventory{
		Quantity:      meta.Quantity,
		BackOrderable: meta.BackOrderable,
	}

	// availableQuantity: por defecto igual a quantity (sin reservas)
	out.AvailableQuantity = meta.Quantity
	if meta.AvailableQuantity != nil {
		av := *meta.AvailableQuantity
		if av.IsNegative() && !meta.BackOrderable {
			return nil, domain.NewValidationError("availableQuantity", "debe ser mayor o igual a cero si el producto no admite backorder")
		}
		if av.GreaterThan(meta.Quantity) {
			return nil, domain.NewValidationError("availableQuantity", "no puede superar quantity")
		}
		out.AvailableQuantity = av
	}

	out.ReservedQuantity = decimal.Zero
	if meta.ReservedQuantity != nil {
		rv := *meta.ReservedQuantity
		if rv.IsNegative() {
			return nil, domain.NewValidationError("reservedQuantity", "debe ser mayor o igual a cero")
		}
		if rv.GreaterThan(meta.Quantity) {
			return nil, domain.NewValidationError("reservedQuantity", "no puede superar quantity")
		}
		out.ReservedQuantity = rv
	}

	out.ReorderThreshold = DefaultReorderThreshold
	if meta.ReorderThreshold != nil {
		if meta.ReorderThreshold.IsNegative() {
			return nil, domain.NewValidationError("reorderThreshold", "debe ser mayor o igual a cero")
		}
		out.ReorderThreshold = *meta.ReorderThreshold
	}

	out.ReorderQuantity = DefaultReorderQuantity
	if meta.ReorderQuantity != nil {
		if meta.ReorderQuantity.IsNegative() {
			return nil, domain.NewValidationError("reorderQuantity", "debe ser mayor o igual a cero")
		}
		out.ReorderQuantity = *meta.ReorderQuantity
	}

	out.SafetyStockLevel = decimal.Zero
	if meta.SafetyStockLevel != nil {
		if meta.SafetyStockLevel.IsNegative() {
			return nil, domain.NewValidationError("safetyStockLevel", "debe ser mayor o igual a cero")
		}
		out.SafetyStockLevel = *meta.SafetyStockLevel
	}

	out.UnitCost = decimal.Zero
	if meta.UnitCost != nil {
		if meta.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unitCost", "debe ser mayor o igual a cero")
		}
		out.UnitCost = *meta.UnitCost
	}
	out.TotalValue = out.Quantity.Mul(out.UnitCost)

	out.ValuationMethod = DefaultValuationMethod
	if meta.ValuationMethod != "" {
		if !validValuations[meta.ValuationMethod] {
			return nil, domain.NewValidationError("valuationMethod", "debe ser FIFO, LIFO, WAC o FEFO")
		}
		out.ValuationMethod = meta.ValuationMethod
	}

	// inStock derivado: hay stock disponible por encima del nivel de seguridad
	out.InStock = out.AvailableQuantity.GreaterThan(out.SafetyStockLevel)

	return out, nil
}

// MovementInput son los datos crudos de un movimiento antes de persistir.
type MovementInput struct {
	InventoryID            string
	ProductID              string
	CreatedBy              string
	Quantity               decimal.Decimal
	MovementType           string
	Reason                 string
	Status                 string
	ReferenceType          string // origen del movimiento OUTGOING: "order", "recipe", "production"...
	SourceWarehouseID      string
	DestinationWarehouseID string
}

var validMovementTypes = map[string]bool{
	entity.MovementTypeINCOMING:   true,
	entity.MovementTypeOUTGOING:   true,
	entity.MovementTypeTRANSFER:   true,
	entity.MovementTypeADJUSTMENT: true,
	entity.MovementTypeRETURN:     true,
}

// ValidateStockMovement valida un movimiento y deriva reason/status por defecto.
// Para TRANSFER exige bodega origen y destino distintas y no vacías.
func ValidateStockMovement(in MovementInput) (*MovementInput, error) {
	if in.InventoryID == "" {
		return nil, domain.NewValidationError("inventoryId", "es requerido")
	}
	if in.ProductID == "" {
		return nil, domain.NewValidationError("productId", "es requerido")
	}
	if in.CreatedBy == "" {
		return nil, domain.NewValidationError("createdById", "es requerido")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("quantity", "debe ser mayor a cero")
	}
	if !validMovementTypes[in.MovementType] {
		return nil, domain.NewValidationError("movementType", "debe ser INCOMING, OUTGOING, TRANSFER, ADJUSTMENT o RETURN")
	}

	if in.MovementType == entity.MovementTypeTRANSFER {
		if in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" {
			return nil, domain.NewValidationError("sourceWarehouseId", "origen y destino son requeridos para TRANSFER")
		}
		if in.SourceWarehouseID == in.DestinationWarehouseID {
			return nil, domain.NewValidationError("destinationWarehouseId", "origen y destino deben ser bodegas distintas")
		}
	} else if in.SourceWarehouseID != "" && in.DestinationWarehouseID != "" {
		return nil, domain.NewValidationError("destinationWarehouseId", "origen y destino solo aplican a TRANSFER")
	}

	out := in
	if out.Reason == "" {
		out.Reason = defaultReason(out.MovementType, out.ReferenceType)
	}
	if out.Status == "" {
		out.Status = entity.MovementStatusDRAFT
	}
	return &out, nil
}

// defaultReason deriva la razón de negocio desde el tipo de movimiento.
// Para OUTGOING distingue venta de consumo según el origen (referenceType).
func defaultReason(movementType, referenceType string) string {
	switch movementType {
	case entity.MovementTypeINCOMING:
		return entity.ReasonPurchase
	case entity.MovementTypeOUTGOING:
		if referenceType == "recipe" || referenceType == "production" {
			return entity.ReasonConsumption
		}
		return entity.ReasonSale
	case entity.MovementTypeTRANSFER:
		return entity.ReasonTransfer
	case entity.MovementTypeADJUSTMENT:
		return entity.ReasonAdjustment
	case entity.MovementTypeRETURN:
		return entity.ReasonReturn
	}
	return entity.ReasonAdjustment
}

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateWarehouseID verifica que el ID tenga forma de UUID.
func ValidateWarehouseID(id string) error {
	if !uuidRe.MatchString(id) {
		return domain.NewValidationError("warehouseId", "debe ser un UUID válido")
	}
	return nil
}

// ValidateSKU verifica la longitud del SKU (3-100 caracteres).
func ValidateSKU(sku string) error {
	if len(sku) < 3 || len(sku) > 100 {
		return domain.NewValidationError("sku", "debe tener entre 3 y 100 caracteres")
	}
	return nil
}
