package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
	"github.com/mercafresh/backoffice-api/internal/domain/stock"
	"github.com/mercafresh/backoffice-api/pkg/logger"
)

// MovementEngine orquesta el ciclo de vida de los movimientos de stock:
// creación con referencia única, transiciones de estado y aplicación del efecto
// sobre inventario dentro de una transacción con las filas bloqueadas.
type MovementEngine struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	invRepo  repository.InventoryRepository
	refGen   *ReferenceGenerator
	log      *logger.Logger
}

// NewMovementEngine construye el motor de movimientos.
func NewMovementEngine(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	refGen *ReferenceGenerator,
	log *logger.Logger,
) *MovementEngine {
	return &MovementEngine{
		txRunner: txRunner,
		movRepo:  movRepo,
		invRepo:  invRepo,
		refGen:   refGen,
		log:      log,
	}
}

// CreateMovement valida y persiste un movimiento nuevo en DRAFT (o PLANNED si viene
// programado a futuro). No toca inventario: el efecto se aplica al completar.
// Si la referencia generada colisiona (ErrDuplicate), regenera y reintenta una vez.
func (e *MovementEngine) CreateMovement(ctx context.Context, userID string, in dto.SaveMovementRequest) (*dto.MovementResponse, error) {
	validated, err := stock.ValidateStockMovement(stock.MovementInput{
		InventoryID:            in.InventoryID,
		ProductID:              in.ProductID,
		CreatedBy:              userID,
		Quantity:               in.Quantity,
		MovementType:           in.MovementType,
		Reason:                 in.Reason,
		ReferenceType:          in.ReferenceType,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
	})
	if err != nil {
		return nil, err
	}

	inv, err := e.invRepo.GetByID(ctx, validated.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.ProductID != validated.ProductID {
		return nil, domain.NewValidationError("productId", "no corresponde al registro de inventario")
	}

	referenceWarehouse := inv.WarehouseID
	if validated.MovementType == entity.MovementTypeTRANSFER {
		if err := stock.ValidateWarehouseID(validated.SourceWarehouseID); err != nil {
			return nil, err
		}
		if err := stock.ValidateWarehouseID(validated.DestinationWarehouseID); err != nil {
			return nil, err
		}
		if validated.SourceWarehouseID != inv.WarehouseID {
			return nil, domain.NewValidationError("sourceWarehouseId", "debe ser la bodega del registro de inventario")
		}
		referenceWarehouse = validated.SourceWarehouseID
	}

	unitCost := inv.UnitCost
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unitCost", "debe ser mayor o igual a cero")
		}
		unitCost = *in.UnitCost
	}

	now := time.Now()
	status := validated.Status
	if in.ScheduledAt != nil && in.ScheduledAt.After(now) {
		status = entity.MovementStatusPLANNED
	}

	mov := &entity.StockMovement{
		ID:                     uuid.New().String(),
		Reference:              e.refGen.Generate(ctx, validated.MovementType, referenceWarehouse),
		InventoryID:            inv.ID,
		ProductID:              inv.ProductID,
		Quantity:               validated.Quantity,
		MovementType:           validated.MovementType,
		Reason:                 validated.Reason,
		Status:                 status,
		UnitCost:               unitCost,
		TotalValue:             validated.Quantity.Mul(unitCost),
		SourceWarehouseID:      validated.SourceWarehouseID,
		DestinationWarehouseID: validated.DestinationWarehouseID,
		IsAdjustment:           validated.MovementType == entity.MovementTypeADJUSTMENT,
		Notes:                  in.Notes,
		CreatedBy:              userID,
		ScheduledAt:            in.ScheduledAt,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := e.movRepo.Create(ctx, mov); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Colisión de referencia por creación concurrente: regenerar y reintentar una vez
		mov.Reference = e.refGen.Generate(ctx, validated.MovementType, referenceWarehouse)
		if err := e.movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}

	e.log.Info().
		Str("movement_id", mov.ID).
		Str("reference", mov.Reference).
		Str("type", mov.MovementType).
		Str("status", mov.Status).
		Msg("movimiento de stock creado")
	return toMovementResponse(mov), nil
}

// GetMovement obtiene un movimiento por ID.
func (e *MovementEngine) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := e.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// RecentMovements lista los movimientos más recientes.
func (e *MovementEngine) RecentMovements(ctx context.Context, limit int) (*dto.MovementListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	movs, err := e.movRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

// ProcessMovement aplica una acción del ciclo de vida (approve, start, complete, cancel).
// complete ejecuta el efecto sobre inventario en una transacción; las demás acciones
// solo mudan el estado. Un movimiento COMPLETED no admite ninguna acción.
func (e *MovementEngine) ProcessMovement(ctx context.Context, movementID, userID, action string) (*dto.MovementResponse, error) {
	mov, err := e.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.Status == entity.MovementStatusCOMPLETED {
		return nil, domain.ErrMovementCompleted
	}

	now := time.Now()
	next, err := stock.NextStatus(mov.Status, action, mov.ScheduledAt, now)
	if err != nil {
		return nil, err
	}

	if next == entity.MovementStatusCOMPLETED {
		return e.complete(ctx, movementID, userID)
	}

	if action == stock.ActionApprove {
		mov.ApprovedBy = userID
	}
	mov.Status = next
	mov.UpdatedAt = now
	if err := e.movRepo.Update(ctx, mov); err != nil {
		return nil, err
	}
	e.log.Info().
		Str("movement_id", mov.ID).
		Str("action", action).
		Str("status", mov.Status).
		Msg("movimiento procesado")
	return toMovementResponse(mov), nil
}

// complete aplica el efecto del movimiento sobre inventario y lo marca COMPLETED,
// todo dentro de una transacción. El movimiento se relee con la tx abierta y se
// vuelve a verificar su estado: si otra transacción lo completó primero, la
// operación falla con ErrMovementCompleted y no se reaplica nada.
func (e *MovementEngine) complete(ctx context.Context, movementID, userID string) (*dto.MovementResponse, error) {
	var out *entity.StockMovement
	err := e.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Status == entity.MovementStatusCOMPLETED {
			return domain.ErrMovementCompleted
		}
		if mov.Status != entity.MovementStatusINPROGRESS {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		switch mov.MovementType {
		case entity.MovementTypeINCOMING, entity.MovementTypeRETURN:
			err = applyIncoming(ctx, mov, invRepo, productRepo, now)
		case entity.MovementTypeOUTGOING:
			err = applyOutgoing(ctx, mov, invRepo, now)
		case entity.MovementTypeADJUSTMENT:
			err = applyAdjustment(ctx, mov, invRepo, now)
		case entity.MovementTypeTRANSFER:
			err = applyTransfer(ctx, mov, invRepo, now)
		default:
			err = domain.NewValidationError("movementType", "tipo de movimiento no soportado")
		}
		if err != nil {
			return err
		}

		mov.Status = entity.MovementStatusCOMPLETED
		mov.ExecutedBy = userID
		mov.ExecutedAt = &now
		mov.UpdatedAt = now
		if err := movRepo.Update(ctx, mov); err != nil {
			return err
		}
		out = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("movement_id", out.ID).
		Str("reference", out.Reference).
		Str("type", out.MovementType).
		Msg("movimiento completado, inventario actualizado")
	return toMovementResponse(out), nil
}

// applyIncoming suma stock. Con valoración WAC y costo de entrada positivo recalcula
// el costo promedio del registro y lo propaga al costo del producto.
func applyIncoming(ctx context.Context, mov *entity.StockMovement, invRepo repository.InventoryRepository, productRepo repository.ProductRepository, now time.Time) error {
	inv, err := invRepo.GetByIDForUpdate(ctx, mov.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	if inv.ValuationMethod == entity.ValuationWAC && mov.UnitCost.GreaterThan(decimal.Zero) {
		newCost := stock.WeightedAverageCost(inv.Quantity, inv.UnitCost, mov.Quantity, mov.UnitCost)
		inv.UnitCost = newCost
		if err := productRepo.UpdateCost(inv.ProductID, newCost); err != nil {
			return err
		}
	}

	inv.Quantity = inv.Quantity.Add(mov.Quantity)
	inv.AvailableQuantity = inv.AvailableQuantity.Add(mov.Quantity)
	inv.LastReceivedDate = &now
	inv.LastStockCheck = &now
	inv.RecalculateDerived()
	inv.UpdatedAt = now
	return invRepo.Update(ctx, inv)
}

// applyOutgoing resta stock respetando la regla de backorder: si el registro no
// admite backorder, el disponible no puede quedar negativo.
func applyOutgoing(ctx context.Context, mov *entity.StockMovement, invRepo repository.InventoryRepository, now time.Time) error {
	inv, err := invRepo.GetByIDForUpdate(ctx, mov.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	newAvailable := inv.AvailableQuantity.Sub(mov.Quantity)
	if !inv.BackOrderable && newAvailable.IsNegative() {
		return domain.ErrInsufficientStock
	}

	inv.Quantity = inv.Quantity.Sub(mov.Quantity)
	inv.AvailableQuantity = newAvailable
	inv.LastStockCheck = &now
	inv.RecalculateDerived()
	inv.UpdatedAt = now
	return invRepo.Update(ctx, inv)
}

// applyAdjustment fija la cantidad total en el valor objetivo (mov.Quantity es
// cantidad absoluta, no delta). El disponible se desplaza por la diferencia.
func applyAdjustment(ctx context.Context, mov *entity.StockMovement, invRepo repository.InventoryRepository, now time.Time) error {
	inv, err := invRepo.GetByIDForUpdate(ctx, mov.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	diff := mov.Quantity.Sub(inv.Quantity)
	newAvailable := inv.AvailableQuantity.Add(diff)
	if !inv.BackOrderable && newAvailable.IsNegative() {
		return domain.ErrInsufficientStock
	}

	inv.Quantity = mov.Quantity
	inv.AvailableQuantity = newAvailable
	inv.LastStockCheck = &now
	inv.RecalculateDerived()
	inv.UpdatedAt = now
	return invRepo.Update(ctx, inv)
}

// applyTransfer mueve stock entre bodegas como operación compuesta: descuenta del
// registro origen y acredita al registro destino del mismo producto, creándolo si
// no existe (hereda configuración y costo del origen). Un traslado nunca deja el
// origen en negativo, sea o no backorderable: la mercancía debe existir para moverse.
func applyTransfer(ctx context.Context, mov *entity.StockMovement, invRepo repository.InventoryRepository, now time.Time) error {
	source, err := invRepo.GetByIDForUpdate(ctx, mov.InventoryID)
	if err != nil {
		return err
	}
	if source == nil {
		return domain.ErrNotFound
	}
	if source.WarehouseID != mov.SourceWarehouseID {
		return domain.NewValidationError("sourceWarehouseId", "no corresponde al registro de inventario")
	}
	if source.AvailableQuantity.LessThan(mov.Quantity) {
		return domain.ErrInsufficientStock
	}

	source.Quantity = source.Quantity.Sub(mov.Quantity)
	source.AvailableQuantity = source.AvailableQuantity.Sub(mov.Quantity)
	source.LastStockCheck = &now
	source.RecalculateDerived()
	source.UpdatedAt = now
	if err := invRepo.Update(ctx, source); err != nil {
		return err
	}

	dest, err := invRepo.GetByProductAndWarehouseForUpdate(ctx, mov.ProductID, mov.DestinationWarehouseID)
	if err != nil {
		return err
	}
	if dest == nil {
		// Primer traslado de este producto a la bodega destino: crear el registro
		// heredando la configuración del origen
		dest = &entity.Inventory{
			ID:                uuid.New().String(),
			ProductID:         mov.ProductID,
			WarehouseID:       mov.DestinationWarehouseID,
			Quantity:          mov.Quantity,
			AvailableQuantity: mov.Quantity,
			ReservedQuantity:  decimal.Zero,
			ReorderThreshold:  source.ReorderThreshold,
			ReorderQuantity:   source.ReorderQuantity,
			SafetyStockLevel:  source.SafetyStockLevel,
			UnitCost:          source.UnitCost,
			ValuationMethod:   source.ValuationMethod,
			BackOrderable:     source.BackOrderable,
			LastReceivedDate:  &now,
			LastStockCheck:    &now,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		dest.RecalculateDerived()
		return invRepo.Create(ctx, dest)
	}

	if dest.ValuationMethod == entity.ValuationWAC && source.UnitCost.GreaterThan(decimal.Zero) {
		dest.UnitCost = stock.WeightedAverageCost(dest.Quantity, dest.UnitCost, mov.Quantity, source.UnitCost)
	}
	dest.Quantity = dest.Quantity.Add(mov.Quantity)
	dest.AvailableQuantity = dest.AvailableQuantity.Add(mov.Quantity)
	dest.LastReceivedDate = &now
	dest.LastStockCheck = &now
	dest.RecalculateDerived()
	dest.UpdatedAt = now
	return invRepo.Update(ctx, dest)
}
