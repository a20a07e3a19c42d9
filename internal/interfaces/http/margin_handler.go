package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/application/usecase"
)

// MarginHandler maneja las peticiones HTTP para reglas de margen (protegido).
type MarginHandler struct {
	uc *usecase.MarginUseCase
}

// NewMarginHandler construye el handler.
func NewMarginHandler(uc *usecase.MarginUseCase) *MarginHandler {
	return &MarginHandler{uc: uc}
}

// Create crea una regla de margen.
func (h *MarginHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, "regla de margen creada", out)
}

// GetByID obtiene una regla por ID.
func (h *MarginHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "regla de margen", out)
}

// Update actualiza una regla.
func (h *MarginHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "regla de margen actualizada", out)
}

// List lista reglas con paginación.
func (h *MarginHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(page)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "reglas de margen", out)
}

// Delete elimina una regla.
func (h *MarginHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "regla de margen eliminada", nil)
}

// EffectiveForProduct godoc
// @Summary      Margen efectivo de un producto (regla de producto sobre la de categoría)
// @Tags         margins
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/margins/effective/{productId} [get]
func (h *MarginHandler) EffectiveForProduct(c *fiber.Ctx) error {
	out, err := h.uc.EffectiveMarginForProduct(c.Params("productId"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, "margen efectivo", out)
}
