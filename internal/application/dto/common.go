// Package dto define los contratos JSON de la API HTTP.
package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AcceptedResponse respuesta de una operación despachada en background.
type AcceptedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendInvoiceRequest body del POST /api/send-invoice.
type SendInvoiceRequest struct {
	CustomerID string `json:"customerId"`
	ChargeID   string `json:"chargeId"`
}

// WebhookEvent subconjunto del payload de un evento de Stripe que el servicio
// necesita: el tipo y el objeto con el cargo y su cliente.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Customer string `json:"customer"`
		} `json:"object"`
	} `json:"data"`
}
