package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

var _ repository.MarginRepository = (*MarginRepo)(nil)

// MarginRepo implementación de MarginRepository sobre PostgreSQL.
type MarginRepo struct {
	q Querier
}

// NewMarginRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarginRepository(q Querier) *MarginRepo {
	return &MarginRepo{q: q}
}

const marginColumns = `
	id, name, COALESCE(product_id::text, ''), COALESCE(category_id::text, ''),
	percent, active, created_at, updated_at`

func scanMargin(row pgx.Row) (*entity.MarginRule, error) {
	var m entity.MarginRule
	err := row.Scan(&m.ID, &m.Name, &m.ProductID, &m.CategoryID, &m.Percent, &m.Active,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MarginRepo) Create(m *entity.MarginRule) error {
	query := `
		INSERT INTO margin_rules (id, name, product_id, category_id, percent, active, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,'')::uuid,NULLIF($4,'')::uuid,$5,$6,$7,$8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.ProductID, m.CategoryID, m.Percent, m.Active, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create margin rule: %w", err)
	}
	return nil
}

func (r *MarginRepo) GetByID(id string) (*entity.MarginRule, error) {
	query := `SELECT` + marginColumns + ` FROM margin_rules WHERE id = $1`
	m, err := scanMargin(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get margin rule: %w", err)
	}
	return m, nil
}

func (r *MarginRepo) Update(m *entity.MarginRule) error {
	query := `
		UPDATE margin_rules SET name = $2, percent = $3, active = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, m.ID, m.Name, m.Percent, m.Active, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update margin rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MarginRepo) List(limit, offset int) ([]*entity.MarginRule, error) {
	query := `SELECT` + marginColumns + ` FROM margin_rules ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list margin rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.MarginRule
	for rows.Next() {
		m, err := scanMargin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan margin rule: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MarginRepo) Delete(id string) error {
	query := `DELETE FROM margin_rules WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete margin rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindForProduct devuelve las reglas activas aplicables a un producto:
// las de producto exacto primero, luego las de su categoría.
func (r *MarginRepo) FindForProduct(productID, categoryID string) ([]*entity.MarginRule, error) {
	query := `SELECT` + marginColumns + `
		FROM margin_rules
		WHERE active AND (product_id::text = $1 OR ($2 <> '' AND category_id::text = $2))
		ORDER BY product_id NULLS LAST, updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, productID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find margin rules for product: %w", err)
	}
	defer rows.Close()
	var list []*entity.MarginRule
	for rows.Next() {
		m, err := scanMargin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan margin rule: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
