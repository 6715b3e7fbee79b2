package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
)

// writeError traduce la taxonomía de dominio al borde HTTP: entrada inválida
// y duplicados -> 400; cualquier anomalía del CRM (red, rechazo, forma
// inesperada, políticas sobre datos del CRM) -> 502; lo demás -> 500.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CRM_UNAVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrUpstreamRejected):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CRM_REJECTED", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedUpstreamData):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CRM_BAD_DATA", Message: err.Error()})
	case errors.Is(err, domain.ErrNoPaymentTypes):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "NO_PAYMENT_TYPES", Message: err.Error()})
	case errors.Is(err, domain.ErrPaymentVanished):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PAYMENT_VANISHED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
