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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL
// (usable con pool o tx). La columna reference tiene constraint único.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, reference, inventory_id, product_id, quantity, movement_type, reason, status,
	unit_cost, total_value, source_warehouse_id, destination_warehouse_id, is_adjustment,
	notes, created_by, approved_by, executed_by, scheduled_at, executed_at,
	parent_movement_id, created_at, updated_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.Reference, &m.InventoryID, &m.ProductID, &m.Quantity, &m.MovementType,
		&m.Reason, &m.Status, &m.UnitCost, &m.TotalValue, &m.SourceWarehouseID,
		&m.DestinationWarehouseID, &m.IsAdjustment, &m.Notes, &m.CreatedBy, &m.ApprovedBy,
		&m.ExecutedBy, &m.ScheduledAt, &m.ExecutedAt, &m.ParentMovementID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Create inserta un movimiento. La violación del constraint único de reference
// se mapea a domain.ErrDuplicate para que el caller pueda regenerarla.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, reference, inventory_id, product_id, quantity, movement_type, reason,
			status, unit_cost, total_value, source_warehouse_id, destination_warehouse_id,
			is_adjustment, notes, created_by, approved_by, executed_by, scheduled_at,
			executed_at, parent_movement_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.InventoryID, m.ProductID, m.Quantity, m.MovementType,
		m.Reason, m.Status, m.UnitCost, m.TotalValue, m.SourceWarehouseID,
		m.DestinationWarehouseID, m.IsAdjustment, m.Notes, m.CreatedBy, m.ApprovedBy,
		m.ExecutedBy, m.ScheduledAt, m.ExecutedAt, m.ParentMovementID,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	query := `
		UPDATE stock_movements SET
			status = $2, approved_by = $3, executed_by = $4, scheduled_at = $5,
			executed_at = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Status, m.ApprovedBy, m.ExecutedBy, m.ScheduledAt,
		m.ExecutedAt, m.Notes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + `
		FROM stock_movements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + `
		FROM stock_movements WHERE inventory_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LatestReferenceByPrefix devuelve la referencia más alta que empiece por prefix.
// Las secuencias van con cero a la izquierda, así el orden lexicográfico coincide
// con el numérico dentro del mismo prefijo.
func (r *StockMovementRepo) LatestReferenceByPrefix(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT reference FROM stock_movements
		WHERE reference LIKE $1 || '%'
		ORDER BY reference DESC LIMIT 1`
	var reference string
	err := r.q.QueryRow(ctx, query, prefix).Scan(&reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest reference by prefix: %w", err)
	}
	return reference, nil
}
