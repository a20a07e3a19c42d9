package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// RecipeIngredientInput línea de ingrediente al crear/actualizar una receta.
type RecipeIngredientInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Note      string          `json:"note"`
}

// Validate valida una línea de ingrediente.
func (r RecipeIngredientInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required.Error("product_id es requerido"), is.UUID.Error("product_id debe ser UUID")),
		validation.Field(&r.Quantity, validation.By(decimalPositive)),
		validation.Field(&r.Unit, validation.Required.Error("la unidad es requerida")),
	)
}

// CreateRecipeRequest entrada para crear una receta con sus ingredientes.
type CreateRecipeRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Servings    int                     `json:"servings"`
	Published   bool                    `json:"published"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// Validate valida la receta completa incluyendo líneas.
func (r CreateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("el nombre es requerido"), validation.Length(1, 200).Error("el nombre debe tener entre 1 y 200 caracteres")),
		validation.Field(&r.Servings, validation.Min(0).Error("las porciones deben ser mayor o igual a cero")),
		validation.Field(&r.Ingredients, validation.Required.Error("la receta necesita al menos un ingrediente")),
	)
}

// UpdateRecipeRequest entrada para actualizar una receta. Si Ingredients no es nil,
// reemplaza el conjunto completo de líneas.
type UpdateRecipeRequest struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Servings    *int                     `json:"servings"`
	Published   *bool                    `json:"published"`
	Ingredients *[]RecipeIngredientInput `json:"ingredients"`
}

// RecipeIngredientResponse línea de receta en respuestas.
type RecipeIngredientResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Note      string          `json:"note,omitempty"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Slug        string                     `json:"slug"`
	Description string                     `json:"description"`
	Servings    int                        `json:"servings"`
	Published   bool                       `json:"published"`
	Ingredients []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// RecipeListResponse lista paginada de recetas.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
