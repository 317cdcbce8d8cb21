package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
)

// ok responde con el sobre uniforme de éxito: {"success": true, ...payload}.
func ok(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// failure mapea los errores de dominio a la taxonomía HTTP del API y responde
// con el sobre de error {"error": "..."}. Cualquier error no clasificado es
// un 500 genérico: el detalle interno queda en los logs, nunca en el cliente.
func failure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "operación no permitida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno"})
	}
}

// badRequest responde 400 con un mensaje de validación.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
