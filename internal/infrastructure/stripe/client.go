// Package stripe implementa billing.PaymentsProvider sobre el SDK oficial
// stripe-go. El cliente se construye una vez en main y se inyecta; no se usa
// la API key global del SDK.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	stripesdk "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// Client adaptador del proveedor de pagos.
type Client struct {
	api *client.API
	log *logger.Logger
}

// NewClient construye el adaptador con su propio handle del SDK.
func NewClient(apiKey string, log *logger.Logger) *Client {
	return &Client{api: client.New(apiKey, nil), log: log}
}

// wrapErr traduce errores del SDK a la taxonomía de dominio: 404 → ErrNotFound,
// cualquier otro no-2xx → UpstreamError con el status original.
func wrapErr(op string, err error) error {
	var sErr *stripesdk.Error
	if errors.As(err, &sErr) {
		if sErr.HTTPStatusCode == 404 {
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return &domain.UpstreamError{Status: sErr.HTTPStatusCode, Op: op, Err: err}
	}
	return &domain.UpstreamError{Op: op, Err: err}
}

// GetCustomerData obtiene un cliente por id, con sus tax ids expandidos.
func (c *Client) GetCustomerData(ctx context.Context, customerID string) (*entity.CustomerData, error) {
	params := &stripesdk.CustomerParams{Params: stripesdk.Params{Context: ctx}}
	params.AddExpand("tax_ids")

	cust, err := c.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, wrapErr("stripe: get customer", err)
	}

	data := &entity.CustomerData{
		ID:    cust.ID,
		Name:  cust.Name,
		Email: cust.Email,
	}
	if cust.Address != nil {
		data.Address = entity.CustomerAddress{
			Line1:      cust.Address.Line1,
			Line2:      cust.Address.Line2,
			City:       cust.Address.City,
			State:      cust.Address.State,
			PostalCode: cust.Address.PostalCode,
			Country:    cust.Address.Country,
		}
	}
	if cust.TaxIDs != nil && len(cust.TaxIDs.Data) > 0 {
		data.VATID = cust.TaxIDs.Data[0].Value
	}
	return data, nil
}

// GetChargeData obtiene un cargo por id.
func (c *Client) GetChargeData(ctx context.Context, chargeID string) (*entity.ChargeData, error) {
	params := &stripesdk.ChargeParams{Params: stripesdk.Params{Context: ctx}}

	ch, err := c.api.Charges.Get(chargeID, params)
	if err != nil {
		return nil, wrapErr("stripe: get charge", err)
	}
	data := mapCharge(ch)
	return &data, nil
}

// GetCustomerCharges lista hasta 100 cargos del cliente, sin paginación.
func (c *Client) GetCustomerCharges(ctx context.Context, customerID string) ([]entity.ChargeData, error) {
	params := &stripesdk.ChargeListParams{
		ListParams: stripesdk.ListParams{Context: ctx, Limit: stripesdk.Int64(100)},
		Customer:   stripesdk.String(customerID),
	}

	var charges []entity.ChargeData
	iter := c.api.Charges.List(params)
	for iter.Next() {
		charges = append(charges, mapCharge(iter.Charge()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("stripe: list charges", err)
	}
	return charges, nil
}

func mapCharge(ch *stripesdk.Charge) entity.ChargeData {
	data := entity.ChargeData{
		ID:          ch.ID,
		Amount:      ch.Amount,
		Currency:    string(ch.Currency),
		Created:     time.Unix(ch.Created, 0).UTC(),
		Description: ch.Description,
		Status:      string(ch.Status),
		Paid:        ch.Paid,
	}
	if pmd := ch.PaymentMethodDetails; pmd != nil {
		data.PaymentMethod.Type = string(pmd.Type)
		if pmd.Card != nil {
			data.PaymentMethod.CardBrand = string(pmd.Card.Brand)
			data.PaymentMethod.CardLast4 = pmd.Card.Last4
		}
	}
	return data
}

// GetCompanyInfo lee el recurso account de la cuenta autenticada y resuelve
// el VAT ID y el logo. Los secundarios (tax_ids, file_links) son best-effort:
// un fallo ahí degrada el campo, no la operación.
func (c *Client) GetCompanyInfo(ctx context.Context) (*entity.CompanyInfo, error) {
	acct, err := c.api.Accounts.Get()
	if err != nil {
		return nil, wrapErr("stripe: get account", err)
	}

	info := &entity.CompanyInfo{
		BrandColor:     entity.DefaultBrandColor,
		SecondaryColor: entity.DefaultSecondaryColor,
	}

	if bp := acct.BusinessProfile; bp != nil {
		info.Name = bp.Name
		info.Email = bp.SupportEmail
		info.Description = bp.ProductDescription
		if addr := bp.SupportAddress; addr != nil && addr.Line1 != "" {
			info.Address = formatAddress(addr, string(acct.Country))
		}
	}

	if settings := acct.Settings; settings != nil {
		if b := settings.Branding; b != nil {
			if b.PrimaryColor != "" {
				info.BrandColor = b.PrimaryColor
			}
			if b.SecondaryColor != "" {
				info.SecondaryColor = b.SecondaryColor
			}
			if b.Logo != nil && b.Logo.ID != "" {
				info.LogoURL = c.resolveLogoURL(ctx, b.Logo.ID)
			}
		}
		if inv := settings.Invoices; inv != nil && len(inv.DefaultAccountTaxIDs) > 0 {
			info.VATID = c.resolveVATID(ctx, inv.DefaultAccountTaxIDs[0].ID)
		}
	}

	return info, nil
}

// resolveVATID convierte la referencia opaca txi_... al valor legible del tax
// id, prefijando el país si el valor no lo trae. Cualquier fallo cae al valor
// original.
func (c *Client) resolveVATID(ctx context.Context, taxID string) string {
	if !strings.HasPrefix(taxID, "txi_") {
		return taxID
	}

	params := &stripesdk.TaxIDParams{Params: stripesdk.Params{Context: ctx}}
	tid, err := c.api.TaxIDs.Get(taxID, params)
	if err != nil {
		c.log.Warn().Err(err).Str("tax_id", taxID).Msg("no se pudo resolver el tax id, se usa la referencia")
		return taxID
	}
	if tid.Value == "" {
		return taxID
	}
	if tid.Country != "" && !strings.HasPrefix(tid.Value, tid.Country) {
		return tid.Country + tid.Value
	}
	return tid.Value
}

// resolveLogoURL convierte un file id a una URL pública vía file_links:
// reusa un link existente, si no crea uno (efecto lateral intencional de una
// lectura), y como último recurso construye la URL por patrón.
func (c *Client) resolveLogoURL(ctx context.Context, fileID string) string {
	if strings.HasPrefix(fileID, "http") {
		return fileID
	}

	listParams := &stripesdk.FileLinkListParams{
		ListParams: stripesdk.ListParams{Context: ctx, Limit: stripesdk.Int64(1)},
		File:       stripesdk.String(fileID),
	}
	iter := c.api.FileLinks.List(listParams)
	if iter.Next() {
		return iter.FileLink().URL
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("file_id", fileID).Msg("no se pudieron listar file links del logo")
	}

	link, err := c.api.FileLinks.New(&stripesdk.FileLinkParams{
		Params: stripesdk.Params{Context: ctx},
		File:   stripesdk.String(fileID),
	})
	if err != nil || link.URL == "" {
		c.log.Warn().Err(err).Str("file_id", fileID).Msg("no se pudo crear el file link del logo, se usa URL por patrón")
		return "https://files.stripe.com/links/" + fileID
	}
	return link.URL
}

// GetSubscriptionInfo resuelve la suscripción de una factura: primero la
// cadena charge→invoice→subscription si hay chargeID, si no (o en un miss de
// la cadena) la primera suscripción activa del cliente. (nil, nil) = ausencia.
func (c *Client) GetSubscriptionInfo(ctx context.Context, customerID, chargeID string) (*entity.SubscriptionInfo, error) {
	if chargeID != "" {
		if sub := c.subscriptionFromCharge(ctx, chargeID); sub != nil {
			return sub, nil
		}
	}

	listParams := &stripesdk.SubscriptionListParams{
		ListParams: stripesdk.ListParams{Context: ctx, Limit: stripesdk.Int64(1)},
		Customer:   stripesdk.String(customerID),
		Status:     stripesdk.String(string(stripesdk.SubscriptionStatusActive)),
	}
	iter := c.api.Subscriptions.List(listParams)
	if iter.Next() {
		return c.subscriptionDetails(ctx, iter.Subscription())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("customer_id", customerID).Msg("no se pudieron listar suscripciones")
	}
	return nil, nil
}

// subscriptionFromCharge sigue charge→invoice→subscription; nil en cualquier miss.
func (c *Client) subscriptionFromCharge(ctx context.Context, chargeID string) *entity.SubscriptionInfo {
	ch, err := c.api.Charges.Get(chargeID, &stripesdk.ChargeParams{Params: stripesdk.Params{Context: ctx}})
	if err != nil || ch.Invoice == nil {
		return nil
	}
	inv, err := c.api.Invoices.Get(ch.Invoice.ID, &stripesdk.InvoiceParams{Params: stripesdk.Params{Context: ctx}})
	if err != nil || inv.Subscription == nil {
		return nil
	}
	sub, err := c.api.Subscriptions.Get(inv.Subscription.ID, &stripesdk.SubscriptionParams{Params: stripesdk.Params{Context: ctx}})
	if err != nil {
		return nil
	}
	info, err := c.subscriptionDetails(ctx, sub)
	if err != nil {
		return nil
	}
	return info
}

// subscriptionDetails expande price→product para obtener plan, intervalo y monto.
func (c *Client) subscriptionDetails(ctx context.Context, sub *stripesdk.Subscription) (*entity.SubscriptionInfo, error) {
	if sub == nil || sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil, nil
	}
	price := sub.Items.Data[0].Price
	if price == nil {
		return nil, nil
	}

	info := &entity.SubscriptionInfo{
		ID:                 sub.ID,
		PlanName:           "Unknown Plan",
		Interval:           "month",
		Amount:             price.UnitAmount,
		Currency:           string(price.Currency),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if price.Recurring != nil && price.Recurring.Interval != "" {
		info.Interval = string(price.Recurring.Interval)
	}
	if price.Product != nil {
		prod, err := c.api.Products.Get(price.Product.ID, &stripesdk.ProductParams{Params: stripesdk.Params{Context: ctx}})
		if err == nil && prod.Name != "" {
			info.PlanName = prod.Name
		}
	}
	return info, nil
}

// ListWebhookEndpoints lista los webhook endpoints registrados.
func (c *Client) ListWebhookEndpoints(ctx context.Context) ([]entity.WebhookEndpoint, error) {
	params := &stripesdk.WebhookEndpointListParams{
		ListParams: stripesdk.ListParams{Context: ctx},
	}

	var endpoints []entity.WebhookEndpoint
	iter := c.api.WebhookEndpoints.List(params)
	for iter.Next() {
		we := iter.WebhookEndpoint()
		endpoints = append(endpoints, entity.WebhookEndpoint{
			ID:            we.ID,
			URL:           we.URL,
			EnabledEvents: we.EnabledEvents,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("stripe: list webhook endpoints", err)
	}
	return endpoints, nil
}

// CreateWebhookEndpoint registra un endpoint con los eventos dados.
func (c *Client) CreateWebhookEndpoint(ctx context.Context, url string, events []string) (*entity.WebhookEndpoint, error) {
	we, err := c.api.WebhookEndpoints.New(&stripesdk.WebhookEndpointParams{
		Params:        stripesdk.Params{Context: ctx},
		URL:           stripesdk.String(url),
		EnabledEvents: stripesdk.StringSlice(events),
	})
	if err != nil {
		return nil, wrapErr("stripe: create webhook endpoint", err)
	}
	return &entity.WebhookEndpoint{ID: we.ID, URL: we.URL, EnabledEvents: we.EnabledEvents}, nil
}

// DeleteWebhookEndpoint borra un endpoint por id.
func (c *Client) DeleteWebhookEndpoint(ctx context.Context, endpointID string) error {
	_, err := c.api.WebhookEndpoints.Del(endpointID, &stripesdk.WebhookEndpointParams{Params: stripesdk.Params{Context: ctx}})
	if err != nil {
		return wrapErr("stripe: delete webhook endpoint", err)
	}
	return nil
}

// CreateBillingPortalSession crea una sesión del portal self-service.
func (c *Client) CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	sess, err := c.api.BillingPortalSessions.New(&stripesdk.BillingPortalSessionParams{
		Params:    stripesdk.Params{Context: ctx},
		Customer:  stripesdk.String(customerID),
		ReturnURL: stripesdk.String(returnURL),
	})
	if err != nil {
		return "", wrapErr("stripe: create billing portal session", err)
	}
	return sess.URL, nil
}

// formatAddress aplana la dirección de soporte a una línea, con el nombre
// completo del país al final.
func formatAddress(addr *stripesdk.Address, country string) string {
	parts := []string{addr.Line1, addr.City, addr.PostalCode, countryName(country)}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
