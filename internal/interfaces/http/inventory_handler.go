package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/application/stock"
)

// InventoryHandler maneja las peticiones del subsistema de inventario
// (/api/v1/warehouse-system/inventory, protegido y restringido por rol).
type InventoryHandler struct {
	uc *stock.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *stock.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Save godoc
// @Summary      Crear registro de inventario para un SKU en una bodega
// @Description  Si la cantidad inicial es mayor a cero, registra además un movimiento
// @Description  INCOMING COMPLETED con razón INVENTORY en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "sku, warehouse_id (opcional), cantidades y configuración"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/save [post]
func (h *InventoryHandler) Save(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.uc.CreateWithMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, "registro de inventario creado", out)
}

// Update godoc
// @Summary      Actualizar configuración de un registro de inventario
// @Description  Solo campos de configuración; las cantidades se modifican vía
// @Description  movimientos o update-quantity.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        modelId  path  string  true  "ID del registro"
// @Param        body     body  dto.UpdateInventoryRequest  true  "Configuración"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/update/{modelId} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("modelId"), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "registro de inventario actualizado", out)
}

// Get godoc
// @Summary      Obtener un registro de inventario por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        modelId  path  string  true  "ID del registro"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/get/{modelId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("modelId"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "registro de inventario", out)
}

// UpdateQuantity godoc
// @Summary      Fijar la cantidad total de un registro
// @Description  Documenta el delta con un movimiento INCOMING u OUTGOING completado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        modelId  path  string  true  "ID del registro"
// @Param        body     body  dto.UpdateQuantityRequest  true  "quantity, notes"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/update-quantity/{modelId} [patch]
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), c.Params("modelId"), GetUserID(c), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "cantidad actualizada", out)
}

// Summary godoc
// @Summary      Resumen de inventario agregado por bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "resumen de inventario", out)
}

// SummaryPDF godoc
// @Summary      Resumen de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/v1/warehouse-system/inventory/summary/pdf [get]
func (h *InventoryHandler) SummaryPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.SummaryPDF(c.UserContext())
	if err != nil {
		return failErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-inventario.pdf"`)
	return c.Send(pdf)
}

// Replenishment godoc
// @Summary      Registros bajo punto de reorden con cantidad sugerida
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.Envelope
// @Router       /api/v1/warehouse-system/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.Replenishment(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "sugerencias de reposición", out)
}
