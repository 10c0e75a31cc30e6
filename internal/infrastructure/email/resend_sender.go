// Package email implementa billing.EmailSender sobre la API de Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// ResendSender transporte de email vía Resend.
type ResendSender struct {
	client *resend.Client
	log    *logger.Logger
}

// NewResendSender construye el sender con su propio cliente HTTP.
func NewResendSender(apiKey string, log *logger.Logger) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), log: log}
}

// SendEmail envía un correo HTML con sus adjuntos. Un rechazo del proveedor
// sube como error sin reintentos; el caller decide.
func (s *ResendSender) SendEmail(ctx context.Context, msg billing.EmailMessage) error {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, att := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    att.Filename,
			Content:     att.Content,
			ContentType: att.ContentType,
		})
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}

	s.log.Info().
		Str("email_id", sent.Id).
		Str("subject", msg.Subject).
		Int("attachments", len(msg.Attachments)).
		Msg("email enviado")
	return nil
}
