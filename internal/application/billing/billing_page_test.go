package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

func newPageUC(p *fakePayments, m *fakeMailer) *billing.BillingPageUseCase {
	return billing.NewBillingPageUseCase(p, m, testConfig(), logger.Nop())
}

func TestGetBillingHistory_ReuneTodo(t *testing.T) {
	payments := &fakePayments{
		customer: &entity.CustomerData{Name: "Jane Roe", Email: "jane@customer.test"},
		company:  completeCompany(),
		charges:  []entity.ChargeData{*paidCharge(), *paidCharge()},
		subscription: &entity.SubscriptionInfo{
			ID: "sub_1", PlanName: "Pro Plan", Interval: "month", Amount: 1050, Currency: "usd",
		},
	}
	uc := newPageUC(payments, &fakeMailer{})

	data, err := uc.GetBillingHistory(context.Background(), "cus_1")

	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", data.Customer.Name)
	assert.Equal(t, "Acme Corp", data.Company.Name)
	assert.Len(t, data.Charges, 2)
	require.NotNil(t, data.Subscription)
	assert.Equal(t, "Pro Plan", data.Subscription.PlanName)
}

func TestGetBillingHistory_ClienteInexistente(t *testing.T) {
	payments := &fakePayments{company: completeCompany()}
	uc := newPageUC(payments, &fakeMailer{})

	_, err := uc.GetBillingHistory(context.Background(), "cus_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBillingHistory_CustomerIDObligatorio(t *testing.T) {
	uc := newPageUC(&fakePayments{company: completeCompany()}, &fakeMailer{})

	_, err := uc.GetBillingHistory(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El link del portal se crea con return URL a la página de billing y se envía
// por email al cliente.
func TestRequestBillingLink_EnviaLink(t *testing.T) {
	payments := &fakePayments{
		customer:  &entity.CustomerData{Name: "Jane Roe", Email: "jane@customer.test"},
		company:   completeCompany(),
		portalURL: "https://billing.stripe.com/session/xyz",
	}
	mailer := &fakeMailer{}
	uc := newPageUC(payments, mailer)

	err := uc.RequestBillingLink(context.Background(), "cus_1")

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	msg := mailer.lastSent()
	assert.Equal(t, "jane@customer.test", msg.To)
	assert.Contains(t, msg.HTML, "https://billing.stripe.com/session/xyz")
}

func TestRequestBillingLink_SinEmailDelCliente(t *testing.T) {
	payments := &fakePayments{
		customer: &entity.CustomerData{Name: "Jane Roe"}, // sin email
		company:  completeCompany(),
	}
	mailer := &fakeMailer{}
	uc := newPageUC(payments, mailer)

	err := uc.RequestBillingLink(context.Background(), "cus_1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, mailer.sent)
}

func TestRequestBillingLink_FalloDePortal(t *testing.T) {
	payments := &fakePayments{
		customer:  &entity.CustomerData{Email: "jane@customer.test"},
		company:   completeCompany(),
		portalErr: &domain.UpstreamError{Status: 500, Op: "stripe: billing portal"},
	}
	mailer := &fakeMailer{}
	uc := newPageUC(payments, mailer)

	err := uc.RequestBillingLink(context.Background(), "cus_1")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Empty(t, mailer.sent)
}
