package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

func newStatusUC(p *fakePayments, missing []string) *billing.StatusUseCase {
	reconciler := billing.NewWebhookReconcileUseCase(p, testConfig(), logger.Nop())
	return billing.NewStatusUseCase(p, reconciler, func() []string { return missing })
}

func TestStatus_TodoConfigurado(t *testing.T) {
	payments := &fakePayments{
		company: completeCompany(),
		endpoints: []entity.WebhookEndpoint{{
			ID: "we_ok", URL: testWebhookURL, EnabledEvents: []string{billing.RequiredEvent},
		}},
	}
	uc := newStatusUC(payments, nil)

	st := uc.Check(context.Background())

	assert.True(t, st.Configured())
	assert.Equal(t, billing.WebhookConfigured, st.WebhookStatus)
	assert.Empty(t, st.MissingVars)
	assert.Empty(t, st.MissingLegal)
}

func TestStatus_WebhookSinConfigurar(t *testing.T) {
	payments := &fakePayments{company: completeCompany()}
	uc := newStatusUC(payments, []string{"RESEND_API_KEY"})

	st := uc.Check(context.Background())

	assert.False(t, st.Configured())
	assert.Equal(t, billing.WebhookNotConfigured, st.WebhookStatus)
	assert.Equal(t, []string{"RESEND_API_KEY"}, st.MissingVars)
}

// Los fallos upstream no cortan el diagnóstico: se reportan como estado.
func TestStatus_FalloUpstreamNoCorta(t *testing.T) {
	payments := &fakePayments{
		company: completeCompany(),
		listErr: &domain.UpstreamError{Status: 500, Op: "stripe: list webhooks"},
	}
	uc := newStatusUC(payments, nil)

	st := uc.Check(context.Background())

	assert.Equal(t, billing.WebhookStatusError, st.WebhookStatus)
	assert.False(t, st.Configured())
}

func TestStatus_CamposLegalesFaltantes(t *testing.T) {
	company := completeCompany()
	company.VATID = ""
	payments := &fakePayments{
		company: company,
		endpoints: []entity.WebhookEndpoint{{
			ID: "we_ok", URL: testWebhookURL, EnabledEvents: []string{billing.RequiredEvent},
		}},
	}
	uc := newStatusUC(payments, nil)

	st := uc.Check(context.Background())

	assert.Contains(t, st.MissingLegal, entity.LegalFieldVATID)
	assert.True(t, st.Configured(), "los campos legales no bloquean el estado operativo")
}
