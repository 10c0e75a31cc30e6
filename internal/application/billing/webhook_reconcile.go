package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// RequiredEvent evento de Stripe que dispara el envío automático de facturas.
const RequiredEvent = "charge.succeeded"

// WebhookReconcileUseCase garantiza que exista exactamente un webhook endpoint
// en Stripe apuntando a este servicio con el evento requerido habilitado.
//
// Es un ciclo de reconciliación convergente, no un script imperativo: correrlo
// repetida o concurrentemente es seguro. Una carrera rara entre procesos puede
// crear un endpoint duplicado (list/create/delete son atómicos individualmente,
// el ciclo no); la siguiente pasada no lo corrige y se acepta como consistencia
// eventual.
type WebhookReconcileUseCase struct {
	payments PaymentsProvider
	cfg      Config
	log      *logger.Logger
}

// NewWebhookReconcileUseCase construye el caso de uso.
func NewWebhookReconcileUseCase(payments PaymentsProvider, cfg Config, log *logger.Logger) *WebhookReconcileUseCase {
	return &WebhookReconcileUseCase{payments: payments, cfg: cfg, log: log}
}

// Reconcile converge la configuración del webhook:
//   - endpoint con URL y evento correctos → no-op.
//   - endpoint con la URL pero sin el evento → se borra (limpieza idempotente
//     de un registro viejo) y se crea uno nuevo con el evento.
//   - ningún endpoint con la URL → se crea uno.
func (uc *WebhookReconcileUseCase) Reconcile(ctx context.Context) error {
	endpoints, err := uc.payments.ListWebhookEndpoints(ctx)
	if err != nil {
		return fmt.Errorf("webhook reconcile: listar endpoints: %w", err)
	}

	webhookURL := uc.cfg.WebhookURL()

	if ep := findEndpoint(endpoints, webhookURL, RequiredEvent); ep != nil {
		uc.log.Debug().Str("endpoint_id", ep.ID).Msg("webhook ya configurado")
		return nil
	}

	// Registro viejo con la URL correcta pero sin el evento: se reemplaza.
	if stale := findEndpoint(endpoints, webhookURL, ""); stale != nil {
		uc.log.Info().Str("endpoint_id", stale.ID).Msg("borrando webhook sin el evento requerido")
		if err := uc.payments.DeleteWebhookEndpoint(ctx, stale.ID); err != nil {
			return fmt.Errorf("webhook reconcile: borrar endpoint %s: %w", stale.ID, err)
		}
	}

	created, err := uc.payments.CreateWebhookEndpoint(ctx, webhookURL, []string{RequiredEvent})
	if err != nil {
		return fmt.Errorf("webhook reconcile: crear endpoint: %w", err)
	}
	uc.log.Info().Str("endpoint_id", created.ID).Str("url", webhookURL).Msg("webhook creado")
	return nil
}

// IsConfigured indica si existe un endpoint correcto; lo usa el homepage.
func (uc *WebhookReconcileUseCase) IsConfigured(ctx context.Context) (bool, error) {
	endpoints, err := uc.payments.ListWebhookEndpoints(ctx)
	if err != nil {
		return false, err
	}
	return findEndpoint(endpoints, uc.cfg.WebhookURL(), RequiredEvent) != nil, nil
}

// findEndpoint busca el primer endpoint con la URL dada; si event no es vacío,
// exige además que el evento esté habilitado.
func findEndpoint(endpoints []entity.WebhookEndpoint, url, event string) *entity.WebhookEndpoint {
	for i := range endpoints {
		if endpoints[i].URL != url {
			continue
		}
		if event == "" || endpoints[i].HasEvent(event) {
			return &endpoints[i]
		}
	}
	return nil
}
