package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/application/dto"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// WebhookHandler recibe los eventos de Stripe.
type WebhookHandler struct {
	inv *InvoiceHandler
	log *logger.Logger
}

// NewWebhookHandler construye el handler reusando el despacho en background
// del handler de facturas.
func NewWebhookHandler(inv *InvoiceHandler, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{inv: inv, log: log}
}

// Receive procesa un evento entrante. Siempre responde 200 rápido: Stripe
// reintenta los no-2xx y el procesamiento real ocurre en background.
// POST /webhook/stripe
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var event dto.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		h.log.Warn().Err(err).Msg("payload de webhook no parseable")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid event payload"})
	}

	if event.Type != billing.RequiredEvent {
		h.log.Debug().Str("type", event.Type).Msg("evento de webhook ignorado")
		return c.JSON(fiber.Map{"received": true})
	}

	customerID := event.Data.Object.Customer
	chargeID := event.Data.Object.ID
	if customerID == "" || chargeID == "" {
		h.log.Warn().
			Str("charge_id", chargeID).
			Msg("evento charge.succeeded sin cliente asociado, se ignora")
		return c.JSON(fiber.Map{"received": true})
	}

	h.log.Info().
		Str("customer_id", customerID).
		Str("charge_id", chargeID).
		Msg("evento charge.succeeded recibido")
	h.inv.dispatch(customerID, chargeID)

	return c.JSON(fiber.Map{"received": true})
}
