package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/dto"
	"github.com/jhoicas/invoice-sender/internal/domain"
)

// errorResponse mapea la taxonomía de errores de dominio a (status, body).
// Los mensajes son de cara al integrador, en inglés.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		// El mensaje envuelto dice qué parámetro faltó; se expone tal cual.
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"}
	case errors.Is(err, domain.ErrLegalInfoIncomplete):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "LEGAL_INFO_INCOMPLETE", Message: domain.ErrLegalInfoIncomplete.Error()}
	case errors.As(err, &upstream):
		return upstream.HTTPStatus(), dto.ErrorResponse{Code: "UPSTREAM", Message: "payment provider request failed"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"}
	}
}

// jsonError escribe la respuesta de error mapeada.
func jsonError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}
