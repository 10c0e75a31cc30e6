package billing

import (
	"context"

	"github.com/jhoicas/invoice-sender/internal/domain/entity"
)

// Estados del webhook reportados por el homepage.
const (
	WebhookConfigured    = "Configured"
	WebhookNotConfigured = "Not Configured"
	WebhookStatusError   = "Error fetching webhook status"
)

// Status diagnóstico de configuración del servicio: variables faltantes,
// estado del webhook y campos legales de la empresa.
type Status struct {
	MissingVars   []string
	WebhookStatus string
	Company       entity.CompanyInfo
	MissingLegal  []string
}

// Configured indica si el servicio está completamente operativo; decide el
// status HTTP del homepage (200 vs 503).
func (s Status) Configured() bool {
	return len(s.MissingVars) == 0 && s.WebhookStatus == WebhookConfigured
}

// StatusUseCase arma el diagnóstico del homepage.
type StatusUseCase struct {
	payments    PaymentsProvider
	reconciler  *WebhookReconcileUseCase
	missingVars func() []string
}

// NewStatusUseCase construye el caso de uso. missingVars viene de la config
// (config.Config.MissingVars) para no acoplar este paquete a viper.
func NewStatusUseCase(payments PaymentsProvider, reconciler *WebhookReconcileUseCase, missingVars func() []string) *StatusUseCase {
	return &StatusUseCase{payments: payments, reconciler: reconciler, missingVars: missingVars}
}

// Check reúne el diagnóstico. Los fallos upstream no cortan: se reportan como
// estado de error en la sección correspondiente (el homepage siempre responde).
func (uc *StatusUseCase) Check(ctx context.Context) Status {
	st := Status{
		MissingVars:   uc.missingVars(),
		WebhookStatus: WebhookStatusError,
	}

	if ok, err := uc.reconciler.IsConfigured(ctx); err == nil {
		if ok {
			st.WebhookStatus = WebhookConfigured
		} else {
			st.WebhookStatus = WebhookNotConfigured
		}
	}

	if company, err := uc.payments.GetCompanyInfo(ctx); err == nil {
		st.Company = *company
		st.MissingLegal = company.MissingLegalFields()
	}

	return st
}
