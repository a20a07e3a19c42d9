package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/application/stock"
)

// MovementHandler expone las operaciones sobre movimientos de stock.
type MovementHandler struct {
	engine *stock.MovementEngine
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *stock.MovementEngine) *MovementHandler {
	return &MovementHandler{engine: engine}
}

// Save godoc
// @Summary      Crear un movimiento de stock
// @Description  El movimiento nace DRAFT (o PLANNED si viene programado a futuro);
// @Description  las cantidades solo cambian cuando el movimiento se completa.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/movements/save [post]
func (h *MovementHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.engine.CreateMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, "movimiento creado", out)
}

// Recent godoc
// @Summary      Últimos movimientos de stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de resultados (por defecto 20, tope 100)"
// @Success      200  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	out, err := h.engine.RecentMovements(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "movimientos recientes", out)
}

// Get godoc
// @Summary      Obtener un movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        modelId  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/movements/{modelId} [get]
func (h *MovementHandler) Get(c *fiber.Ctx) error {
	out, err := h.engine.GetMovement(c.UserContext(), c.Params("modelId"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "movimiento", out)
}

// Process godoc
// @Summary      Avanzar el ciclo de vida de un movimiento
// @Description  Acciones: approve, start, complete, cancel. Completar aplica el
// @Description  movimiento sobre el inventario dentro de una transacción.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        modelId  path  string  true  "ID del movimiento"
// @Param        body     body  dto.ProcessMovementRequest  true  "action"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/movements/{modelId}/process [patch]
func (h *MovementHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.engine.ProcessMovement(c.UserContext(), c.Params("modelId"), GetUserID(c), in.Action)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "movimiento procesado", out)
}
