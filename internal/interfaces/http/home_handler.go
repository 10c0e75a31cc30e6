package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
)

// HomeHandler sirve la página de diagnóstico y el health check.
type HomeHandler struct {
	uc *billing.StatusUseCase
}

// NewHomeHandler construye el handler.
func NewHomeHandler(uc *billing.StatusUseCase) *HomeHandler {
	return &HomeHandler{uc: uc}
}

// Status renderiza el diagnóstico de configuración. 200 si el servicio está
// operativo, 503 si falta configuración (útil para probes externos).
// GET /
func (h *HomeHandler) Status(c *fiber.Ctx) error {
	st := h.uc.Check(c.Context())

	status := fiber.StatusOK
	if !st.Configured() {
		status = fiber.StatusServiceUnavailable
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(renderStatusPage(&st))
}

// Health liveness probe, sin dependencias externas.
// GET /health
func (h *HomeHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
