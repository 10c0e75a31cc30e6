package http

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
)

// Chrome compartido de todas las páginas HTML del servicio. El color de marca
// se inyecta por página; el resto es estático.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;margin:0;background:#f9fafb;color:#111827}
.container{max-width:720px;margin:40px auto;padding:0 16px}
.card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:24px;margin-bottom:16px}
h1{font-size:22px;margin:0 0 4px;color:%s}
h2{font-size:15px;margin:0 0 12px;color:#6b7280;text-transform:uppercase;letter-spacing:.05em}
table{width:100%%;border-collapse:collapse}
th{text-align:left;font-size:12px;color:#6b7280;text-transform:uppercase;padding:8px;border-bottom:1px solid #e5e7eb}
td{padding:8px;border-bottom:1px solid #f3f4f6;font-size:14px}
.right{text-align:right}
.badge{display:inline-block;padding:2px 8px;border-radius:9999px;font-size:12px;background:#d1fae5;color:#065f46}
.badge.warn{background:#fee2e2;color:#991b1b}
.muted{color:#6b7280;font-size:13px}
a.button{display:inline-block;margin-top:12px;padding:8px 16px;border-radius:6px;background:%s;color:#fff;text-decoration:none;font-size:14px}
</style>
</head>
<body><div class="container">%s</div></body>
</html>`

func renderPage(title, brandColor, body string) string {
	if brandColor == "" {
		brandColor = "#4f46e5"
	}
	return fmt.Sprintf(pageShell, template.HTMLEscapeString(title), brandColor, brandColor, body)
}

// htmlError responde una página mínima de error con link de vuelta.
func htmlError(c *fiber.Ctx, status int, message string) error {
	body := fmt.Sprintf(`<div class="card"><h1>Something went wrong</h1>
<p class="muted">%s</p>
<a class="button" href="javascript:history.back()">Go Back</a></div>`,
		template.HTMLEscapeString(message))

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(renderPage("Error", "", body))
}

// renderBillingPage arma el historial de pagos del cliente.
func renderBillingPage(data *billing.BillingPageData) string {
	esc := template.HTMLEscapeString
	var b strings.Builder

	fmt.Fprintf(&b, `<div class="card"><h1>%s</h1><p class="muted">Billing history for %s</p></div>`,
		esc(orNotSet(data.Company.Name)), esc(data.Customer.DisplayName()))

	if sub := data.Subscription; sub != nil {
		fmt.Fprintf(&b, `<div class="card"><h2>Current plan</h2>
<p><strong>%s</strong> · %s per %s</p>
<p class="muted">Current period: %s – %s</p></div>`,
			esc(sub.PlanName),
			esc(invoice.FormatCurrency(sub.Amount, sub.Currency)),
			esc(sub.Interval),
			sub.CurrentPeriodStart.Format("Jan 2, 2006"),
			sub.CurrentPeriodEnd.Format("Jan 2, 2006"))
	}

	b.WriteString(`<div class="card"><h2>Payments</h2>`)
	if len(data.Charges) == 0 {
		b.WriteString(`<p class="muted">No payments yet.</p>`)
	} else {
		b.WriteString(`<table><tr><th>Date</th><th>Description</th><th>Method</th><th class="right">Amount</th><th>Status</th><th>Action</th></tr>`)
		for _, ch := range data.Charges {
			badge := `<span class="badge">Paid</span>`
			if !ch.Paid {
				badge = `<span class="badge warn">` + esc(capitalizeStatus(ch.Status)) + `</span>`
			}
			resend := fmt.Sprintf(`<a href="/api/send-invoice?customerId=%s&chargeId=%s">Send me this Invoice</a>`,
				esc(data.Customer.ID), esc(ch.ID))
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td class="right">%s</td><td>%s</td><td>%s</td></tr>`,
				ch.Created.Format("Jan 2, 2006"),
				esc(ch.LineDescription()),
				esc(ch.PaymentMethodLabel()),
				esc(invoice.FormatCurrency(ch.Amount, ch.Currency)),
				badge, resend)
		}
		b.WriteString(`</table>`)
	}
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<div class="card"><p class="muted">Need to update your payment method or billing details?</p>
<a class="button" href="/api/request-billing-link?customerId=%s">Email me a billing portal link</a></div>`,
		esc(data.Customer.ID))

	return renderPage("Billing history", data.Company.BrandColor, b.String())
}

// renderStatusPage arma la página de diagnóstico del home.
func renderStatusPage(st *billing.Status) string {
	esc := template.HTMLEscapeString
	var b strings.Builder

	b.WriteString(`<div class="card"><h1>Invoice Sender</h1><p class="muted">Service status</p></div>`)

	b.WriteString(`<div class="card"><h2>Environment</h2>`)
	if len(st.MissingVars) == 0 {
		b.WriteString(`<p><span class="badge">All variables set</span></p>`)
	} else {
		fmt.Fprintf(&b, `<p><span class="badge warn">Missing</span> %s</p>`,
			esc(strings.Join(st.MissingVars, ", ")))
	}
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<div class="card"><h2>Stripe webhook</h2><p>%s</p></div>`, esc(st.WebhookStatus))

	b.WriteString(`<div class="card"><h2>Company legal information</h2><table>`)
	for _, f := range companyFields(st) {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td></tr>`, esc(f[0]), f[1])
	}
	b.WriteString(`</table></div>`)

	b.WriteString(`<div class="card"><h2>API usage</h2>
<p class="muted">Resend an invoice for a charge:</p>
<pre style="background:#f3f4f6;padding:12px;border-radius:6px;font-size:12px;overflow-x:auto">curl "https://&lt;your-domain&gt;/api/send-invoice?customerId=cus_...&amp;chargeId=ch_..."</pre>
<p class="muted">Or with a POST request:</p>
<pre style="background:#f3f4f6;padding:12px;border-radius:6px;font-size:12px;overflow-x:auto">curl -X POST https://&lt;your-domain&gt;/api/send-invoice \
  -H "Content-Type: application/json" \
  -d '{"customerId": "cus_...", "chargeId": "ch_..."}'</pre>
<p class="muted">Webhook events are acknowledged without signature verification.</p></div>`)

	return renderPage("Service status", st.Company.BrandColor, b.String())
}

// companyFields pares campo/valor-renderizado; los ausentes muestran "Not Set".
func companyFields(st *billing.Status) [][2]string {
	value := func(v string) string {
		if v == "" {
			return `<span class="badge warn">Not Set</span>`
		}
		return template.HTMLEscapeString(v)
	}
	return [][2]string{
		{entity.LegalFieldName, value(st.Company.Name)},
		{entity.LegalFieldAddress, value(st.Company.Address)},
		{entity.LegalFieldEmail, value(st.Company.Email)},
		{entity.LegalFieldVATID, value(st.Company.VATID)},
	}
}

func orNotSet(v string) string {
	if v == "" {
		return "Not Set"
	}
	return v
}

func capitalizeStatus(s string) string {
	if s == "" {
		return "Pending"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
