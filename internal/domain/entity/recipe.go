package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa una receta publicable en la tienda, compuesta por ingredientes
// que referencian productos del catálogo.
type Recipe struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Servings    int
	Published   bool
	Ingredients []RecipeIngredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeIngredient es una línea de receta: producto, cantidad y unidad.
type RecipeIngredient struct {
	ID        string
	RecipeID  string
	ProductID string
	Quantity  decimal.Decimal
	Unit      string // g, ml, un...
	Note      string
}
