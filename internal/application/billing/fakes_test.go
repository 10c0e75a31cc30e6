package billing_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos: implementaciones en memoria con registro de llamadas.
// ──────────────────────────────────────────────────────────────────────────────

type fakePayments struct {
	mu sync.Mutex

	customer     *entity.CustomerData
	charge       *entity.ChargeData
	charges      []entity.ChargeData
	company      *entity.CompanyInfo
	subscription *entity.SubscriptionInfo
	endpoints    []entity.WebhookEndpoint
	portalURL    string

	// errores inyectables por operación
	customerErr, chargeErr, companyErr, listErr, createErr, deleteErr, portalErr error

	createdEndpoints []entity.WebhookEndpoint
	deletedEndpoints []string
}

func (f *fakePayments) GetCustomerData(_ context.Context, id string) (*entity.CustomerData, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	if f.customer == nil {
		return nil, domain.ErrNotFound
	}
	c := *f.customer
	c.ID = id
	return &c, nil
}

func (f *fakePayments) GetChargeData(_ context.Context, id string) (*entity.ChargeData, error) {
	if f.chargeErr != nil {
		return nil, f.chargeErr
	}
	if f.charge == nil {
		return nil, domain.ErrNotFound
	}
	ch := *f.charge
	ch.ID = id
	return &ch, nil
}

func (f *fakePayments) GetCustomerCharges(context.Context, string) ([]entity.ChargeData, error) {
	return f.charges, nil
}

func (f *fakePayments) GetCompanyInfo(context.Context) (*entity.CompanyInfo, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	c := *f.company
	return &c, nil
}

func (f *fakePayments) GetSubscriptionInfo(context.Context, string, string) (*entity.SubscriptionInfo, error) {
	return f.subscription, nil // nil = ausencia, no error
}

func (f *fakePayments) ListWebhookEndpoints(context.Context) ([]entity.WebhookEndpoint, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.endpoints, nil
}

func (f *fakePayments) CreateWebhookEndpoint(_ context.Context, url string, events []string) (*entity.WebhookEndpoint, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ep := entity.WebhookEndpoint{
		ID:            fmt.Sprintf("we_%d", len(f.createdEndpoints)+1),
		URL:           url,
		EnabledEvents: events,
	}
	f.createdEndpoints = append(f.createdEndpoints, ep)
	return &ep, nil
}

func (f *fakePayments) DeleteWebhookEndpoint(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedEndpoints = append(f.deletedEndpoints, id)
	return nil
}

func (f *fakePayments) CreateBillingPortalSession(context.Context, string, string) (string, error) {
	if f.portalErr != nil {
		return "", f.portalErr
	}
	return f.portalURL, nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []billing.EmailMessage
	sendErr error
}

func (f *fakeMailer) SendEmail(_ context.Context, msg billing.EmailMessage) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) lastSent() billing.EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakePDF struct {
	mu     sync.Mutex
	inputs []billing.ReceiptInput
	genErr error
}

func (f *fakePDF) GenerateReceiptPDF(_ context.Context, in billing.ReceiptInput) ([]byte, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	return []byte("%PDF-1.7 fake"), nil
}

// ── datos base ────────────────────────────────────────────────────────────────

func completeCompany() *entity.CompanyInfo {
	return &entity.CompanyInfo{
		Name:           "Acme Corp",
		Address:        "1 Main St, Springfield, 12345, United States",
		Email:          "support@acme.test",
		VATID:          "DE123456789",
		BrandColor:     entity.DefaultBrandColor,
		SecondaryColor: entity.DefaultSecondaryColor,
	}
}

func paidCharge() *entity.ChargeData {
	return &entity.ChargeData{
		ID:       "ch_1",
		Amount:   1050,
		Currency: "usd",
		Created:  time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC),
		Status:   "succeeded",
		Paid:     true,
		PaymentMethod: entity.PaymentMethodDetails{
			Type:      "card",
			CardBrand: "visa",
			CardLast4: "4242",
		},
	}
}

func testConfig() billing.Config {
	return billing.Config{
		PublicDomain: "invoices.example.com",
		MailFrom:     "billing@acme.test",
	}
}
