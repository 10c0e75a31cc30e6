package billing

import (
	"context"

	"github.com/jhoicas/invoice-sender/internal/domain/entity"
)

// PaymentsProvider puerto hacia la plataforma de pagos (Stripe). Cada
// operación devuelve entidades de dominio ya mapeadas o un
// *domain.UpstreamError con el status del proveedor.
type PaymentsProvider interface {
	GetCustomerData(ctx context.Context, customerID string) (*entity.CustomerData, error)
	GetChargeData(ctx context.Context, chargeID string) (*entity.ChargeData, error)
	// GetCustomerCharges lista hasta 100 cargos del cliente, sin paginación.
	GetCustomerCharges(ctx context.Context, customerID string) ([]entity.ChargeData, error)
	// GetCompanyInfo lee el recurso account y resuelve vatId y logo. Puede
	// crear un file_link en el proveedor como efecto lateral (intencional).
	GetCompanyInfo(ctx context.Context) (*entity.CompanyInfo, error)
	// GetSubscriptionInfo resuelve la cadena charge→invoice→subscription si
	// chargeID no es vacío, con fallback a la primera suscripción activa del
	// cliente. (nil, nil) significa ausencia, no error.
	GetSubscriptionInfo(ctx context.Context, customerID, chargeID string) (*entity.SubscriptionInfo, error)

	ListWebhookEndpoints(ctx context.Context) ([]entity.WebhookEndpoint, error)
	CreateWebhookEndpoint(ctx context.Context, url string, events []string) (*entity.WebhookEndpoint, error)
	DeleteWebhookEndpoint(ctx context.Context, endpointID string) error

	CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// EmailAttachment adjunto de un email saliente.
type EmailAttachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// EmailMessage email HTML saliente con adjuntos opcionales.
type EmailMessage struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []EmailAttachment
}

// EmailSender puerto hacia el transporte de email. El caller no reintenta.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// ReceiptInput datos ya resueltos para el render del documento.
type ReceiptInput struct {
	Company       entity.CompanyInfo
	Customer      entity.CustomerData
	Charge        entity.ChargeData
	Subscription  *entity.SubscriptionInfo // nil si el cargo no viene de una suscripción
	InvoiceNumber string
	ReceiptNumber string
}

// ReceiptPDFGenerator puerto hacia el renderizador del documento.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, in ReceiptInput) ([]byte, error)
}

// Config parámetros del dominio de facturación que atraviesan los usecases.
type Config struct {
	PublicDomain string // dominio público, para URLs de webhook/billing/retry
	MailFrom     string // remitente de todos los correos
	DevMode      bool   // redirige la entrega a DevEmail
	DevEmail     string
}

// WebhookURL URL del callback de webhook que este servicio expone.
func (c Config) WebhookURL() string {
	return "https://" + c.PublicDomain + "/webhook/stripe"
}

// BillingURL URL pública de la página de billing de un cliente.
func (c Config) BillingURL(customerID string) string {
	return "https://" + c.PublicDomain + "/billing/" + customerID
}

// Recipient aplica la redirección de dev mode sobre el destinatario calculado.
func (c Config) Recipient(email string) string {
	if c.DevMode {
		return c.DevEmail
	}
	return email
}
