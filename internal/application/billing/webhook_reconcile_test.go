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

const testWebhookURL = "https://invoices.example.com/webhook/stripe"

func newReconcileUC(p *fakePayments) *billing.WebhookReconcileUseCase {
	return billing.NewWebhookReconcileUseCase(p, testConfig(), logger.Nop())
}

// Sin endpoints existentes: se crea uno con la URL exacta y el evento requerido.
func TestReconcile_SinEndpointsCrea(t *testing.T) {
	payments := &fakePayments{}
	uc := newReconcileUC(payments)

	err := uc.Reconcile(context.Background())

	require.NoError(t, err)
	require.Len(t, payments.createdEndpoints, 1)
	assert.Equal(t, testWebhookURL, payments.createdEndpoints[0].URL)
	assert.Equal(t, []string{billing.RequiredEvent}, payments.createdEndpoints[0].EnabledEvents)
	assert.Empty(t, payments.deletedEndpoints)
}

// Endpoint con la URL correcta pero sin el evento: se borra y se reemplaza.
func TestReconcile_EventoIncorrectoReemplaza(t *testing.T) {
	payments := &fakePayments{
		endpoints: []entity.WebhookEndpoint{{
			ID:            "we_old",
			URL:           testWebhookURL,
			EnabledEvents: []string{"payment_intent.succeeded"},
		}},
	}
	uc := newReconcileUC(payments)

	err := uc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"we_old"}, payments.deletedEndpoints)
	require.Len(t, payments.createdEndpoints, 1)
	assert.True(t, payments.createdEndpoints[0].HasEvent(billing.RequiredEvent))
}

// Endpoint correcto: ninguna mutación de red (idempotencia).
func TestReconcile_ConfiguradoNoOp(t *testing.T) {
	payments := &fakePayments{
		endpoints: []entity.WebhookEndpoint{{
			ID:            "we_ok",
			URL:           testWebhookURL,
			EnabledEvents: []string{billing.RequiredEvent, "charge.refunded"},
		}},
	}
	uc := newReconcileUC(payments)

	err := uc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Empty(t, payments.createdEndpoints)
	assert.Empty(t, payments.deletedEndpoints)
}

// Endpoints de otras URLs no se tocan.
func TestReconcile_IgnoraOtrasURLs(t *testing.T) {
	payments := &fakePayments{
		endpoints: []entity.WebhookEndpoint{{
			ID:            "we_other",
			URL:           "https://other.example.com/hook",
			EnabledEvents: []string{billing.RequiredEvent},
		}},
	}
	uc := newReconcileUC(payments)

	err := uc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Empty(t, payments.deletedEndpoints)
	require.Len(t, payments.createdEndpoints, 1)
	assert.Equal(t, testWebhookURL, payments.createdEndpoints[0].URL)
}

// Correr dos veces seguidas converge sin duplicar trabajo.
func TestReconcile_RepetibleTrasCrear(t *testing.T) {
	payments := &fakePayments{}
	uc := newReconcileUC(payments)

	require.NoError(t, uc.Reconcile(context.Background()))
	// Simula el estado tras la primera pasada.
	payments.endpoints = payments.createdEndpoints

	require.NoError(t, uc.Reconcile(context.Background()))
	assert.Len(t, payments.createdEndpoints, 1, "la segunda pasada no debe crear nada")
}

func TestReconcile_FalloAlListarPropaga(t *testing.T) {
	payments := &fakePayments{listErr: &domain.UpstreamError{Status: 500, Op: "stripe: list webhooks"}}
	uc := newReconcileUC(payments)

	err := uc.Reconcile(context.Background())

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Empty(t, payments.createdEndpoints)
}

func TestIsConfigured(t *testing.T) {
	payments := &fakePayments{}
	uc := newReconcileUC(payments)

	ok, err := uc.IsConfigured(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	payments.endpoints = []entity.WebhookEndpoint{{
		ID: "we_ok", URL: testWebhookURL, EnabledEvents: []string{billing.RequiredEvent},
	}}
	ok, err = uc.IsConfigured(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
