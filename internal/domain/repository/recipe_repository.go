package repository

import "github.com/mercafresh/backoffice-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas e ingredientes.
// Create y ReplaceIngredients son atómicos: receta y líneas se persisten juntas.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	ReplaceIngredients(recipeID string, ingredients []entity.RecipeIngredient) error
	List(limit, offset int) ([]*entity.Recipe, error)
	Delete(id string) error
}
