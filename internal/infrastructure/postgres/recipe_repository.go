package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL. Usa transacciones
// internas para mantener receta y líneas consistentes.
type RecipeRepo struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository construye el adaptador con el pool (necesita abrir transacciones propias).
func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepo {
	return &RecipeRepo{pool: pool}
}

const recipeColumns = `id, name, slug, description, servings, published, created_at, updated_at`

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(&rec.ID, &rec.Name, &rec.Slug, &rec.Description, &rec.Servings,
		&rec.Published, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserta la receta y sus líneas en una transacción.
func (r *RecipeRepo) Create(rec *entity.Recipe) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO recipes (id, name, slug, description, servings, published, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.Exec(ctx, query, rec.ID, rec.Name, rec.Slug, rec.Description,
		rec.Servings, rec.Published, rec.CreatedAt, rec.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	if err := insertIngredients(ctx, tx, rec.ID, rec.Ingredients); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipeID string, ingredients []entity.RecipeIngredient) error {
	query := `
		INSERT INTO recipe_ingredients (id, recipe_id, product_id, quantity, unit, note)
		VALUES ($1,$2,$3,$4,$5,$6)`
	for _, ing := range ingredients {
		if _, err := tx.Exec(ctx, query, ing.ID, recipeID, ing.ProductID, ing.Quantity,
			ing.Unit, ing.Note); err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	ctx := context.Background()
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	rec, err := scanRecipe(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	ingredients, err := r.loadIngredients(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ingredients
	return rec, nil
}

func (r *RecipeRepo) loadIngredients(ctx context.Context, recipeID string) ([]entity.RecipeIngredient, error) {
	query := `
		SELECT id, recipe_id, product_id, quantity, unit, note
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()
	var list []entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Quantity,
			&ing.Unit, &ing.Note); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

func (r *RecipeRepo) Update(rec *entity.Recipe) error {
	query := `
		UPDATE recipes SET name = $2, slug = $3, description = $4, servings = $5,
			published = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, rec.ID, rec.Name, rec.Slug,
		rec.Description, rec.Servings, rec.Published, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceIngredients borra y reinserta las líneas de la receta en una transacción.
func (r *RecipeRepo) ReplaceIngredients(recipeID string, ingredients []entity.RecipeIngredient) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("delete recipe ingredients: %w", err)
	}
	if err := insertIngredients(ctx, tx, recipeID, ingredients); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	ctx := context.Background()
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		ingredients, err := r.loadIngredients(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Ingredients = ingredients
	}
	return list, nil
}

// Delete elimina la receta; las líneas caen por ON DELETE CASCADE.
func (r *RecipeRepo) Delete(id string) error {
	query := `DELETE FROM recipes WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
