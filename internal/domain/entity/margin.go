package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarginRule define el margen de ganancia aplicable a un producto o a una categoría.
// ProductID y CategoryID son mutuamente excluyentes; una regla de producto tiene
// prioridad sobre la regla de su categoría.
type MarginRule struct {
	ID         string
	Name       string
	ProductID  string // vacío si la regla es por categoría
	CategoryID string // vacío si la regla es por producto
	Percent    decimal.Decimal // porcentaje sobre el costo, ej. 35 = 35%
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
