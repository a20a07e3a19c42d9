package stock

import (
	"context"
	"time"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

// SummaryPDFGenerator genera la representación PDF del resumen de inventario por bodega.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, rows []dto.InventorySummaryRow, generatedAt time.Time) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: aplicar un movimiento muta el movimiento
// y su(s) registro(s) de inventario juntos, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
