package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	infraemail "github.com/jhoicas/invoice-sender/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/invoice-sender/internal/infrastructure/pdf"
	infrastripe "github.com/jhoicas/invoice-sender/internal/infrastructure/stripe"
	httpRouter "github.com/jhoicas/invoice-sender/internal/interfaces/http"
	"github.com/jhoicas/invoice-sender/pkg/config"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// Cadencia de la reconciliación del webhook contra Stripe.
const reconcileInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if missing := cfg.MissingVars(); len(missing) > 0 {
		// Se arranca igual: el homepage reporta el diagnóstico con 503.
		log.Warn().Strs("vars", missing).Msg("variables de entorno faltantes")
	}

	// Adaptadores de infraestructura
	payments := infrastripe.NewClient(cfg.Stripe.APIKey, log)
	mailer := infraemail.NewResendSender(cfg.Mail.ResendAPIKey, log)
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()

	billingCfg := billing.Config{
		PublicDomain: cfg.Public.Domain,
		MailFrom:     cfg.Mail.From,
		DevMode:      cfg.Dev.Mode,
		DevEmail:     cfg.Dev.Email,
	}

	sendInvoiceUC := billing.NewSendInvoiceUseCase(payments, mailer, pdfGenerator, billingCfg, log)
	billingPageUC := billing.NewBillingPageUseCase(payments, mailer, billingCfg, log)
	reconcileUC := billing.NewWebhookReconcileUseCase(payments, billingCfg, log)
	statusUC := billing.NewStatusUseCase(payments, reconcileUC, cfg.MissingVars)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		SendInvoice: sendInvoiceUC,
		BillingPage: billingPageUC,
		Status:      statusUC,
		Log:         log,
	})

	// Reconciliación del webhook: una pasada al arrancar y luego periódica,
	// para converger aunque alguien borre el endpoint desde el dashboard.
	reconcileCtx, stopReconcile := context.WithCancel(context.Background())
	go reconcileLoop(reconcileCtx, reconcileUC, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopReconcile()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// reconcileLoop corre la reconciliación con timeout por pasada; un fallo se
// loguea y se reintenta en el próximo tick.
func reconcileLoop(ctx context.Context, uc *billing.WebhookReconcileUseCase, log *logger.Logger) {
	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := uc.Reconcile(runCtx); err != nil {
			log.Error().Err(err).Msg("reconciliación del webhook falló")
		}
	}

	run()
	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
