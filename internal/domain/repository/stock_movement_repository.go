package repository

import (
	"context"

	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.StockMovement, error)
	// LatestReferenceByPrefix devuelve la referencia más alta que empiece por prefix
	// (orden lexicográfico descendente; las secuencias van con cero a la izquierda).
	// Retorna cadena vacía si no hay ninguna.
	LatestReferenceByPrefix(ctx context.Context, prefix string) (string, error)
}
