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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
// Una fila por par (product_id, warehouse_id), protegida por constraint único.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `
	id, product_id, warehouse_id, quantity, available_quantity, reserved_quantity,
	reorder_threshold, reorder_quantity, safety_stock_level, unit_cost, total_value,
	valuation_method, in_stock, back_orderable, last_stock_check, last_received_date,
	created_at, updated_at`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.AvailableQuantity,
		&inv.ReservedQuantity, &inv.ReorderThreshold, &inv.ReorderQuantity,
		&inv.SafetyStockLevel, &inv.UnitCost, &inv.TotalValue, &inv.ValuationMethod,
		&inv.InStock, &inv.BackOrderable, &inv.LastStockCheck, &inv.LastReceivedDate,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// Create inserta un registro de inventario. La violación del constraint único
// (product_id, warehouse_id) se mapea a domain.ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (
			id, product_id, warehouse_id, quantity, available_quantity, reserved_quantity,
			reorder_threshold, reorder_quantity, safety_stock_level, unit_cost, total_value,
			valuation_method, in_stock, back_orderable, last_stock_check, last_received_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.AvailableQuantity,
		inv.ReservedQuantity, inv.ReorderThreshold, inv.ReorderQuantity,
		inv.SafetyStockLevel, inv.UnitCost, inv.TotalValue, inv.ValuationMethod,
		inv.InStock, inv.BackOrderable, inv.LastStockCheck, inv.LastReceivedDate,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE id = $1`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene sentido dentro
// de una transacción: el lock se libera al hacer Commit o Rollback.
func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE id = $1 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return inv, nil
}

func (r *InventoryRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("get inventory by product and warehouse: %w", err)
	}
	return inv, nil
}

// GetByProductAndWarehouseForUpdate bloquea la fila destino en traslados.
func (r *InventoryRepo) GetByProductAndWarehouseForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("get inventory by product and warehouse for update: %w", err)
	}
	return inv, nil
}

func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET
			quantity = $2, available_quantity = $3, reserved_quantity = $4,
			reorder_threshold = $5, reorder_quantity = $6, safety_stock_level = $7,
			unit_cost = $8, total_value = $9, valuation_method = $10, in_stock = $11,
			back_orderable = $12, last_stock_check = $13, last_received_date = $14,
			updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Quantity, inv.AvailableQuantity, inv.ReservedQuantity,
		inv.ReorderThreshold, inv.ReorderQuantity, inv.SafetyStockLevel,
		inv.UnitCost, inv.TotalValue, inv.ValuationMethod, inv.InStock,
		inv.BackOrderable, inv.LastStockCheck, inv.LastReceivedDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT` + inventoryColumns + `
		FROM inventory WHERE warehouse_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Summary agrega las métricas de inventario por bodega.
func (r *InventoryRepo) Summary(ctx context.Context) ([]repository.InventorySummaryRow, error) {
	query := `
		SELECT w.id, w.name, COUNT(i.id),
			COALESCE(SUM(i.quantity), 0),
			COALESCE(SUM(i.total_value), 0),
			COUNT(i.id) FILTER (WHERE i.quantity < i.reorder_threshold)
		FROM warehouses w
		LEFT JOIN inventory i ON i.warehouse_id = w.id
		WHERE w.active
		GROUP BY w.id, w.name
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	defer rows.Close()
	var list []repository.InventorySummaryRow
	for rows.Next() {
		var row repository.InventorySummaryRow
		if err := rows.Scan(&row.WarehouseID, &row.WarehouseName, &row.Records,
			&row.TotalUnits, &row.TotalValue, &row.LowStock); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// BelowReorder devuelve registros con quantity < reorder_threshold.
// warehouseID vacío considera todas las bodegas.
func (r *InventoryRepo) BelowReorder(ctx context.Context, warehouseID string) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT i.id, i.product_id, p.sku, p.name, i.warehouse_id,
			i.quantity, i.reorder_threshold, i.reorder_quantity, i.unit_cost
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity < i.reorder_threshold
			AND ($1 = '' OR i.warehouse_id::text = $1)
			AND p.active
		ORDER BY i.quantity ASC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	defer rows.Close()
	var list []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.InventoryID, &it.ProductID, &it.SKU, &it.ProductName,
			&it.WarehouseID, &it.Quantity, &it.ReorderThreshold, &it.ReorderQuantity,
			&it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
