package http

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// BillingHandler sirve la página HTML de billing y el flujo de links al portal.
type BillingHandler struct {
	uc  *billing.BillingPageUseCase
	log *logger.Logger
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingPageUseCase, log *logger.Logger) *BillingHandler {
	return &BillingHandler{uc: uc, log: log}
}

// Page renderiza la página de historial de pagos de un cliente.
// GET /billing/:customerId
//
// El parámetro acepta el id en claro (cus_...) o en base64, como viene en los
// links embebidos en los emails.
func (h *BillingHandler) Page(c *fiber.Ctx) error {
	customerID := decodeCustomerID(c.Params("customerId"))
	if customerID == "" {
		return htmlError(c, fiber.StatusBadRequest, "Invalid customer reference")
	}

	data, err := h.uc.GetBillingHistory(c.Context(), customerID)
	if err != nil {
		h.log.Error().Err(err).Str("customer_id", customerID).Msg("no se pudo armar la página de billing")
		status, body := errorResponse(err)
		return htmlError(c, status, body.Message)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(renderBillingPage(data))
}

// RequestLink crea una sesión de portal y la envía por email al cliente.
// GET /api/request-billing-link?customerId=...
func (h *BillingHandler) RequestLink(c *fiber.Ctx) error {
	customerID := decodeCustomerID(c.Query("customerId"))

	// La validación del parámetro vive en el usecase; su mensaje llega al 400.
	if err := h.uc.RequestBillingLink(c.Context(), customerID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"status": "sent", "message": "billing portal link sent by email"})
}

// decodeCustomerID acepta un customer id en claro o en base64 (estándar o
// URL-safe). Devuelve "" si no se puede resolver a un id plausible.
func decodeCustomerID(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "cus_") {
		return raw
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding} {
		if decoded, err := enc.DecodeString(raw); err == nil && strings.HasPrefix(string(decoded), "cus_") {
			return string(decoded)
		}
	}
	return raw
}
