package billing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// SendInvoiceUseCase ensambla y envía la factura de un cargo: reúne los datos
// de Stripe, valida los campos legales de la empresa, renderiza el PDF y lo
// despacha por email. Dos salidas divergentes: factura al cliente, o aviso de
// campos faltantes a la empresa.
type SendInvoiceUseCase struct {
	payments PaymentsProvider
	mailer   EmailSender
	pdf      ReceiptPDFGenerator
	cfg      Config
	log      *logger.Logger
}

// NewSendInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSendInvoiceUseCase(
	payments PaymentsProvider,
	mailer EmailSender,
	pdf ReceiptPDFGenerator,
	cfg Config,
	log *logger.Logger,
) *SendInvoiceUseCase {
	return &SendInvoiceUseCase{
		payments: payments,
		mailer:   mailer,
		pdf:      pdf,
		cfg:      cfg,
		log:      log,
	}
}

// SendInvoiceResult resultado de un envío exitoso.
type SendInvoiceResult struct {
	InvoiceNumber string `json:"invoiceNumber"`
	ReceiptNumber string `json:"receiptNumber"`
}

// SendInvoice ejecuta el workflow completo para (customerID, chargeID).
//
// Retorna:
//   - (*SendInvoiceResult, nil)        si la factura fue enviada.
//   - domain.ErrLegalInfoIncomplete    si faltan campos legales; si la empresa
//     tiene email, antes de retornar se le envía el aviso con los campos
//     faltantes y las dos formas de retry.
//   - *domain.UpstreamError            si algún fetch o el envío fallan.
//
// Sin retries ni acciones compensatorias: cualquier fallo corta el flujo.
func (uc *SendInvoiceUseCase) SendInvoice(ctx context.Context, customerID, chargeID string) (*SendInvoiceResult, error) {
	if customerID == "" || chargeID == "" {
		return nil, fmt.Errorf("%w: customerId and chargeId are required", domain.ErrInvalidInput)
	}

	// ── 1. Fetch paralelo: recursos independientes, join antes de seguir ──────
	var (
		customer *entity.CustomerData
		charge   *entity.ChargeData
		company  *entity.CompanyInfo
		sub      *entity.SubscriptionInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customer, err = uc.payments.GetCustomerData(gctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		charge, err = uc.payments.GetChargeData(gctx, chargeID)
		return err
	})
	g.Go(func() (err error) {
		company, err = uc.payments.GetCompanyInfo(gctx)
		return err
	})
	g.Go(func() (err error) {
		// Ausencia de suscripción no es error: sub queda nil.
		sub, err = uc.payments.GetSubscriptionInfo(gctx, customerID, chargeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("send invoice: reunir datos: %w", err)
	}

	// ── 2. Numeración determinista por (cliente, día) ─────────────────────────
	invoiceNumber := invoice.Number(customerID, time.Now())

	// ── 3. Gate legal ─────────────────────────────────────────────────────────
	if missing := company.MissingLegalFields(); len(missing) > 0 {
		if company.Email == "" {
			// No hay a quién avisar: fallo terminal sin email alguno.
			uc.log.Error().
				Str("customer_id", customerID).
				Str("charge_id", chargeID).
				Strs("missing_fields", missing).
				Msg("campos legales faltantes y sin email de empresa para avisar")
			return nil, domain.ErrLegalInfoIncomplete
		}

		// Aviso a la empresa (no al cliente) con los campos faltantes y las
		// dos formas documentadas de retry. Camino terminal: no hay documento.
		notice := buildMissingFieldsEmail(*company, customerID, chargeID, invoiceNumber, missing, uc.cfg)
		if err := uc.mailer.SendEmail(ctx, EmailMessage{
			From:    uc.cfg.MailFrom,
			To:      company.Email,
			Subject: fmt.Sprintf("Invoice Generation Issue #%s", invoiceNumber),
			HTML:    notice,
		}); err != nil {
			return nil, fmt.Errorf("send invoice: aviso de campos faltantes: %w", err)
		}
		uc.log.Warn().
			Str("customer_id", customerID).
			Str("invoice_number", invoiceNumber).
			Strs("missing_fields", missing).
			Str("notified", company.Email).
			Msg("generación detenida por campos legales faltantes; aviso enviado a la empresa")
		return nil, fmt.Errorf("%w: invoice generation halted, notification sent to company", domain.ErrLegalInfoIncomplete)
	}

	if customer.Email == "" {
		return nil, fmt.Errorf("%w: customer has no email address", domain.ErrInvalidInput)
	}

	// ── 4. Render: PDF + cuerpo HTML ──────────────────────────────────────────
	receiptNumber := invoice.NewReceiptNumber()
	pdfBytes, err := uc.pdf.GenerateReceiptPDF(ctx, ReceiptInput{
		Company:       *company,
		Customer:      *customer,
		Charge:        *charge,
		Subscription:  sub,
		InvoiceNumber: invoiceNumber,
		ReceiptNumber: receiptNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("send invoice: generar PDF: %w", err)
	}
	html := buildInvoiceEmail(*company, *customer, *charge, invoiceNumber, uc.cfg)

	// ── 5. Destinatario: cliente, salvo redirección de dev mode ───────────────
	recipient := uc.cfg.Recipient(customer.Email)

	// ── 6. Envío con el documento adjunto ─────────────────────────────────────
	if err := uc.mailer.SendEmail(ctx, EmailMessage{
		From:    uc.cfg.MailFrom,
		To:      recipient,
		Subject: fmt.Sprintf("Invoice #%s", invoiceNumber),
		HTML:    html,
		Attachments: []EmailAttachment{{
			Filename:    fmt.Sprintf("invoice_%s.pdf", invoiceNumber),
			Content:     pdfBytes,
			ContentType: "application/pdf",
		}},
	}); err != nil {
		return nil, fmt.Errorf("send invoice: enviar email: %w", err)
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Str("charge_id", chargeID).
		Str("invoice_number", invoiceNumber).
		Str("recipient", invoice.MaskEmail(recipient)).
		Msg("factura enviada")

	return &SendInvoiceResult{InvoiceNumber: invoiceNumber, ReceiptNumber: receiptNumber}, nil
}
