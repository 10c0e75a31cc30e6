package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
)

// Cuerpos HTML de los emails salientes. Texto de cara al cliente en inglés;
// el branding (colores, logo) sale de la cuenta de Stripe.

// buildInvoiceEmail arma el cuerpo del email que acompaña la factura. El email
// del cliente va enmascarado: es solo display, la entrega usa el valor real.
func buildInvoiceEmail(company entity.CompanyInfo, customer entity.CustomerData, charge entity.ChargeData, invoiceNumber string, cfg Config) string {
	amount := invoice.FormatCurrency(charge.Amount, charge.Currency)
	chargeDate := charge.Created.Format("January 2, 2006")
	billingURL := cfg.BillingURL(customer.ID)

	var logo string
	if company.LogoURL != "" {
		logo = fmt.Sprintf(`<img src="%s" alt="Brand Logo" style="max-width: 200px; margin-bottom: 20px;" />`, company.LogoURL)
	}

	return fmt.Sprintf(`<html>
  <body style="color: %s; background-color: %s; font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; margin: 0; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px; border-radius: 8px;">
      %s
      <h1 style="font-size: 24px; font-weight: bold; margin-bottom: 10px;">Invoice #%s for %s</h1>
      <p style="margin-bottom: 10px;">Email: %s</p>
      <p style="margin-bottom: 10px;">Charge: %s on %s</p>
      <p style="margin-bottom: 10px;">Charge ID: %s</p>
      <p style="margin-bottom: 20px;">Your invoice PDF is attached to this email.</p>
      <p style="margin-bottom: 10px;">View all your billing history <a href="%s" style="color: %s; text-decoration: underline;">here</a>.</p>
      <p>Need to update your billing information? <a href="%s/api/request-billing-link?customerId=%s" style="color: %s; text-decoration: underline;">Request a billing portal link</a>.</p>
    </div>
  </body>
</html>`,
		company.BrandColor, company.SecondaryColor,
		logo,
		invoiceNumber, customer.DisplayName(),
		invoice.MaskEmail(customer.Email),
		amount, chargeDate,
		charge.ID,
		billingURL, company.BrandColor,
		"https://"+cfg.PublicDomain, customer.ID, company.BrandColor,
	)
}

// buildMissingFieldsEmail arma el aviso a la empresa cuando faltan campos
// legales: lista los campos y documenta las dos formas de reintentar una vez
// corregidos los datos en Stripe (GET con query params o POST con body JSON).
func buildMissingFieldsEmail(company entity.CompanyInfo, customerID, chargeID, invoiceNumber string, missing []string, cfg Config) string {
	retryGet := fmt.Sprintf("https://%s/api/send-invoice?customerId=%s&chargeId=%s", cfg.PublicDomain, customerID, chargeID)
	retryPost := fmt.Sprintf("https://%s/api/send-invoice", cfg.PublicDomain)

	brandColor := company.BrandColor
	if brandColor == "" {
		brandColor = entity.DefaultBrandColor
	}

	return fmt.Sprintf(`<html>
  <body style="color: %s;">
    <h1>Invoice Generation Issue for #%s</h1>
    <p>Mandatory legal information is missing for generating a valid invoice.</p>
    <p>The following fields are missing: %s.</p>
    <p>Please update your Stripe account with the required business information.</p>
    <p>Once updated, you can resend the invoice by making a GET request to the following URL:</p>
    <pre>%s</pre>
    <p>Alternatively, you can use a POST request to the following URL with the JSON body:</p>
    <pre>URL: %s</pre>
    <pre>
{
  "customerId": "%s",
  "chargeId": "%s"
}
    </pre>
  </body>
</html>`,
		brandColor,
		invoiceNumber,
		strings.Join(missing, ", "),
		retryGet,
		retryPost,
		customerID, chargeID,
	)
}

// buildBillingLinkEmail arma el email con el link de sesión del portal de
// billing de Stripe.
func buildBillingLinkEmail(company entity.CompanyInfo, customer entity.CustomerData, portalURL string) string {
	brandColor := company.BrandColor
	if brandColor == "" {
		brandColor = entity.DefaultBrandColor
	}

	return fmt.Sprintf(`<html>
  <body style="color: %s; font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;">
    <h1>Update your billing information</h1>
    <p>Hi %s,</p>
    <p>Use the link below to manage your payment methods and billing details:</p>
    <p><a href="%s" style="color: %s; text-decoration: underline;">Open billing portal</a></p>
    <p>This link is temporary; request a new one if it expires.</p>
  </body>
</html>`,
		brandColor,
		customer.DisplayName(),
		portalURL, brandColor,
	)
}
