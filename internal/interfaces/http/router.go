package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SendInvoice *billing.SendInvoiceUseCase
	BillingPage *billing.BillingPageUseCase
	Status      *billing.StatusUseCase
	Log         *logger.Logger
}

// Router registra las rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	invoiceHandler := NewInvoiceHandler(deps.SendInvoice, deps.Log)
	webhookHandler := NewWebhookHandler(invoiceHandler, deps.Log)
	billingHandler := NewBillingHandler(deps.BillingPage, deps.Log)
	homeHandler := NewHomeHandler(deps.Status)

	// Diagnóstico (público)
	app.Get("/", homeHandler.Status)
	app.Get("/health", homeHandler.Health)

	// Webhook de Stripe (público; Stripe no autentica estos callbacks aquí)
	app.Post("/webhook/stripe", webhookHandler.Receive)

	// Página de billing self-service (pública, linkeable desde los emails)
	app.Get("/billing/:customerId", billingHandler.Page)

	// API
	api := app.Group("/api")
	api.Post("/send-invoice", invoiceHandler.Send)
	api.Get("/send-invoice", invoiceHandler.SendSync)
	api.Get("/request-billing-link", billingHandler.RequestLink)
}
