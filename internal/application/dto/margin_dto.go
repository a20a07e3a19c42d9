package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// CreateMarginRequest entrada para crear una regla de margen.
// ProductID y CategoryID son mutuamente excluyentes.
type CreateMarginRequest struct {
	Name       string          `json:"name"`
	ProductID  string          `json:"product_id"`
	CategoryID string          `json:"category_id"`
	Percent    decimal.Decimal `json:"percent"`
}

// Validate valida la regla: exactamente un alcance (producto o categoría).
func (r CreateMarginRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("el nombre es requerido"), validation.Length(1, 200).Error("el nombre debe tener entre 1 y 200 caracteres")),
		validation.Field(&r.ProductID, validation.When(r.ProductID != "", is.UUID.Error("product_id debe ser UUID"))),
		validation.Field(&r.CategoryID, validation.When(r.CategoryID != "", is.UUID.Error("category_id debe ser UUID"))),
		validation.Field(&r.Percent, validation.By(decimalNonNegative)),
	)
	if err != nil {
		return err
	}
	if (r.ProductID == "") == (r.CategoryID == "") {
		return validation.Errors{"product_id": validation.NewError("margin_scope", "la regla debe aplicar a un producto o a una categoría, no ambos ni ninguno")}
	}
	return nil
}

// UpdateMarginRequest entrada para actualizar una regla de margen.
type UpdateMarginRequest struct {
	Name    *string          `json:"name"`
	Percent *decimal.Decimal `json:"percent"`
	Active  *bool            `json:"active"`
}

// MarginResponse salida de una regla de margen.
type MarginResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ProductID  string          `json:"product_id,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
	Percent    decimal.Decimal `json:"percent"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MarginListResponse lista paginada de reglas de margen.
type MarginListResponse struct {
	Items []MarginResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// EffectiveMarginResponse margen efectivo de un producto: regla de producto sobre la de categoría.
type EffectiveMarginResponse struct {
	ProductID      string           `json:"product_id"`
	Percent        decimal.Decimal  `json:"percent"`
	RuleID         string           `json:"rule_id,omitempty"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price,omitempty"` // costo * (1 + percent/100)
}
