package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/application/dto"
	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/pkg/background"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// Presupuesto para un envío completo en background: fetches a Stripe, render
// del PDF y entrega del email.
const sendInvoiceTimeout = 2 * time.Minute

// InvoiceHandler maneja el envío de facturas por API.
type InvoiceHandler struct {
	uc  *billing.SendInvoiceUseCase
	log *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.SendInvoiceUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log}
}

// Send despacha la generación y envío en background y responde de inmediato.
// POST /api/send-invoice
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	var in dto.SendInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid JSON body"})
	}
	if in.CustomerID == "" || in.ChargeID == "" {
		return jsonError(c, fmt.Errorf("%w: customerId and chargeId are required", domain.ErrInvalidInput))
	}

	// El request no espera el resultado; el background job loguea el desenlace.
	h.dispatch(in.CustomerID, in.ChargeID)

	return c.Status(fiber.StatusAccepted).JSON(dto.AcceptedResponse{
		Status:  "accepted",
		Message: "invoice generation started",
	})
}

// SendSync genera y envía en línea, devolviendo los números asignados.
// GET /api/send-invoice?customerId=...&chargeId=...
func (h *InvoiceHandler) SendSync(c *fiber.Ctx) error {
	customerID := c.Query("customerId")
	chargeID := c.Query("chargeId")

	res, err := h.uc.SendInvoice(c.Context(), customerID, chargeID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(res)
}

// dispatch corre el usecase en background con su propio contexto: el del
// request muere al responder 202.
func (h *InvoiceHandler) dispatch(customerID, chargeID string) {
	background.Go(h.log, "send-invoice", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), sendInvoiceTimeout)
		defer cancel()

		res, err := h.uc.SendInvoice(ctx, customerID, chargeID)
		if err != nil {
			return err
		}
		h.log.Info().
			Str("customer_id", customerID).
			Str("charge_id", chargeID).
			Str("invoice_number", res.InvoiceNumber).
			Msg("factura enviada")
		return nil
	})
}
