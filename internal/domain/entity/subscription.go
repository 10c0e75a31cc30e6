package entity

import "time"

// SubscriptionInfo suscripción asociada a una factura (cero o una). Se
// resuelve por la cadena charge→invoice→subscription o, en su defecto, por la
// primera suscripción activa del cliente. Amount está en unidades menores.
type SubscriptionInfo struct {
	ID                 string
	PlanName           string
	Interval           string // "month", "year", ...
	Amount             int64
	Currency           string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
}

// WebhookEndpoint suscripción de eventos registrada en Stripe.
type WebhookEndpoint struct {
	ID            string
	URL           string
	EnabledEvents []string
}

// HasEvent indica si el endpoint tiene habilitado el evento dado.
func (w WebhookEndpoint) HasEvent(event string) bool {
	for _, e := range w.EnabledEvents {
		if e == event {
			return true
		}
	}
	return false
}
