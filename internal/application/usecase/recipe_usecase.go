package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

// RecipeUseCase casos de uso para recetas publicables: CRUD con líneas de ingredientes
// que referencian productos del catálogo.
type RecipeUseCase struct {
	repo        repository.RecipeRepository
	productRepo repository.ProductRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(repo repository.RecipeRepository, productRepo repository.ProductRepository) *RecipeUseCase {
	return &RecipeUseCase{repo: repo, productRepo: productRepo}
}

// buildIngredients valida que cada producto referenciado exista y construye las líneas.
func (uc *RecipeUseCase) buildIngredients(recipeID string, inputs []dto.RecipeIngredientInput) ([]entity.RecipeIngredient, error) {
	ingredients := make([]entity.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewValidationError("ingredients", "el producto "+in.ProductID+" no existe")
		}
		ingredients = append(ingredients, entity.RecipeIngredient{
			ID:        uuid.New().String(),
			RecipeID:  recipeID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Unit:      in.Unit,
			Note:      in.Note,
		})
	}
	return ingredients, nil
}

// Create crea una receta con sus ingredientes de forma atómica.
func (uc *RecipeUseCase) Create(in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		Servings:    in.Servings,
		Published:   in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ingredients, err := uc.buildIngredients(recipe.ID, in.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	if err := uc.repo.Create(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// GetByID obtiene una receta con sus ingredientes.
func (uc *RecipeUseCase) GetByID(id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return toRecipeResponse(recipe), nil
}

// Update actualiza metadatos de la receta; si vienen ingredientes, reemplaza el
// conjunto completo de líneas.
func (uc *RecipeUseCase) Update(id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		recipe.Name = *in.Name
		recipe.Slug = slugify(*in.Name)
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.Servings != nil {
		if *in.Servings < 0 {
			return nil, domain.NewValidationError("servings", "debe ser mayor o igual a cero")
		}
		recipe.Servings = *in.Servings
	}
	if in.Published != nil {
		recipe.Published = *in.Published
	}
	recipe.UpdatedAt = time.Now()
	if err := uc.repo.Update(recipe); err != nil {
		return nil, err
	}
	if in.Ingredients != nil {
		if len(*in.Ingredients) == 0 {
			return nil, domain.NewValidationError("ingredients", "la receta necesita al menos un ingrediente")
		}
		ingredients, err := uc.buildIngredients(recipe.ID, *in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.ReplaceIngredients(recipe.ID, ingredients); err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}
	return toRecipeResponse(recipe), nil
}

// List lista recetas con paginación.
func (uc *RecipeUseCase) List(page dto.PageRequest) (*dto.RecipeListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecipeResponse(r))
	}
	return &dto.RecipeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina una receta y sus líneas.
func (uc *RecipeUseCase) Delete(id string) error {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	if r == nil {
		return nil
	}
	ingredients := make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, dto.RecipeIngredientResponse{
			ID:        ing.ID,
			ProductID: ing.ProductID,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			Note:      ing.Note,
		})
	}
	return &dto.RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Servings:    r.Servings,
		Published:   r.Published,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
