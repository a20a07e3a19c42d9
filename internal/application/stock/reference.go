package stock

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mercafresh/backoffice-api/internal/domain/repository"
	"github.com/mercafresh/backoffice-api/pkg/logger"
)

// ReferenceGenerator produce referencias legibles y únicas para movimientos:
// TYPE-BODEGA-YYYYMMDD-SSSS (secuencia de 4 dígitos con cero a la izquierda).
//
// La secuencia se obtiene consultando la referencia más alta con el mismo prefijo
// e incrementando. No es seguro frente a incrementos concurrentes: dos creaciones
// simultáneas pueden leer la misma secuencia. El repositorio mapea la violación de
// unicidad a domain.ErrDuplicate y el caller reintenta una vez; la unicidad sigue
// siendo best-effort bajo carga concurrente.
type ReferenceGenerator struct {
	movRepo repository.StockMovementRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewReferenceGenerator construye el generador.
func NewReferenceGenerator(movRepo repository.StockMovementRepository, log *logger.Logger) *ReferenceGenerator {
	return &ReferenceGenerator{movRepo: movRepo, log: log, now: time.Now}
}

// Generate construye la siguiente referencia para el tipo y la bodega dados.
// warehouseID puede ser vacío (movimientos sin bodega explícita).
// Si la consulta falla, devuelve una referencia de respaldo con sufijo de timestamp
// en lugar de fallar al caller (disponibilidad sobre unicidad estricta).
func (g *ReferenceGenerator) Generate(ctx context.Context, movementType, warehouseID string) string {
	prefix := g.prefix(movementType, warehouseID)

	latest, err := g.movRepo.LatestReferenceByPrefix(ctx, prefix)
	if err != nil {
		if g.log != nil {
			g.log.Warn().Err(err).Str("prefix", prefix).Msg("consulta de referencia falló, usando respaldo por timestamp")
		}
		return fmt.Sprintf("%s-%d", prefix, g.now().UnixNano())
	}

	seq := 1
	if latest != "" {
		if n, ok := trailingSequence(latest); ok {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// prefix construye TYPE-BODEGA-YYYYMMDD. La bodega se abrevia al primer segmento
// del UUID en mayúsculas para mantener la referencia legible.
func (g *ReferenceGenerator) prefix(movementType, warehouseID string) string {
	date := g.now().Format("20060102")
	if warehouseID == "" {
		return fmt.Sprintf("%s-%s", movementType, date)
	}
	return fmt.Sprintf("%s-%s-%s", movementType, warehouseCode(warehouseID), date)
}

// warehouseCode abrevia el UUID de la bodega a su primer segmento en mayúsculas.
func warehouseCode(warehouseID string) string {
	code := warehouseID
	if i := strings.IndexByte(code, '-'); i > 0 {
		code = code[:i]
	}
	return strings.ToUpper(code)
}

// trailingSequence extrae el sufijo numérico tras el último guion.
func trailingSequence(reference string) (int, bool) {
	i := strings.LastIndexByte(reference, '-')
	if i < 0 || i == len(reference)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(reference[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
