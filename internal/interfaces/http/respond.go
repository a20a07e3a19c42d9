package http

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
)

// ok responde con el sobre de éxito {success, message, content}.
func ok(c *fiber.Ctx, status int, message string, content any) error {
	return c.Status(status).JSON(dto.OK(message, content))
}

// fail responde con el sobre de error {success, message, error}.
func fail(c *fiber.Ctx, status int, message string, detail any) error {
	return c.Status(status).JSON(dto.Fail(message, detail))
}

// failErr mapea un error de dominio a su status HTTP y responde con el sobre de error.
// Centraliza la taxonomía: validación 400, auth 401/403, no encontrado 404,
// conflictos de estado y duplicados 409, resto 500.
func failErr(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return fail(c, fiber.StatusBadRequest, "entrada inválida",
			fiber.Map{"field": vErr.Field, "message": vErr.Message})
	}
	var ozzoErrs validation.Errors
	if errors.As(err, &ozzoErrs) {
		return fail(c, fiber.StatusBadRequest, "entrada inválida", ozzoErrs)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "entrada inválida", err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, "credenciales inválidas", nil)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "acceso denegado", nil)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "recurso no encontrado", nil)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "el email ya está registrado", nil)
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "recurso duplicado", nil)
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusConflict, "stock insuficiente", err.Error())
	case errors.Is(err, domain.ErrMovementCompleted):
		return fail(c, fiber.StatusConflict, "el movimiento ya fue completado", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return fail(c, fiber.StatusConflict, "transición de estado inválida", err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrSameWarehouse):
		return fail(c, fiber.StatusConflict, "conflicto con el estado actual", err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "error interno", err.Error())
}
