// Package pdf implementa la generación del recibo de pago en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: "Receipt · monto paid on fecha"  │  Page 1 of 1    │
//	│  Título "Receipt"                                           │
//	│  Invoice number / Receipt number / Date paid / Pago         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: nombre, dirección, email, VAT ID                  │
//	│  BILL TO: cliente, dirección, email, VAT ID                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Description | Qty | Unit price | Amount             │
//	│  TOTALES: Subtotal / Total / Amount paid                    │
//	│  Nota reverse charge (si el cliente tiene VAT)              │
//	│  PLAN: nombre + período (si hay suscripción)                │
//	│  FOOTER: timestamp de generación + copyright                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight = &props.Color{Red: 243, Green: 244, Blue: 246}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, in billing.ReceiptInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9, Color: brandColor(in.Company.BrandColor)}).
		WithTitle("Receipt "+in.ReceiptNumber, true).
		WithAuthor(in.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	amount := invoice.FormatCurrency(in.Charge.Amount, in.Charge.Currency)
	datePaid := in.Charge.Created.Format("January 2, 2006")

	// Cabecera y metadatos del documento
	m.AddRows(headerRow(amount, datePaid))
	m.AddRows(titleRow(in))
	m.AddRows(metadataRows(in, datePaid)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	// Empresa y cliente lado a lado
	m.AddRows(partiesRow(in))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	// Tabla de un renglón y totales
	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRow(in, amount))
	m.AddRows(totalsRows(amount)...)

	if in.Customer.VATID != "" {
		m.AddRows(reverseChargeRow())
	}
	if in.Subscription != nil {
		m.AddRows(planRows(in)...)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRows(in)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: resumen del pago a la izquierda, paginación a la derecha.
func headerRow(amount, datePaid string) core.Row {
	return row.New(7).Add(
		col.New(9).Add(
			text.New(fmt.Sprintf("Receipt · %s paid on %s", amount, datePaid), props.Text{
				Size: 8, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("Page 1 of 1", props.Text{Size: 8, Align: align.Right, Color: colorGray}),
		),
	)
}

func titleRow(in billing.ReceiptInput) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Receipt", props.Text{
				Style: fontstyle.Bold, Size: 18, Top: 2, Color: brandColor(in.Company.BrandColor),
			}),
		),
	)
}

// metadataRows: pares etiqueta/valor del documento.
func metadataRows(in billing.ReceiptInput, datePaid string) []core.Row {
	pairs := [][2]string{
		{"Invoice number", in.InvoiceNumber},
		{"Receipt number", in.ReceiptNumber},
		{"Date paid", datePaid},
		{"Payment method", in.Charge.PaymentMethodLabel()},
	}
	rows := make([]core.Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p[0], props.Text{Size: 9, Color: colorGray})),
			col.New(9).Add(text.New(p[1], props.Text{Size: 9})),
		))
	}
	return rows
}

// partiesRow: bloque de empresa (izq) y "Bill to" del cliente (der).
func partiesRow(in billing.ReceiptInput) core.Row {
	companyLines := nonEmpty(
		in.Company.Name,
		in.Company.Address,
		in.Company.Email,
		vatLine(in.Company.VATID),
	)
	customerLines := nonEmpty(in.Customer.DisplayName())
	customerLines = append(customerLines, in.Customer.Address.Lines()...)
	customerLines = append(customerLines, nonEmpty(in.Customer.Email, vatLine(in.Customer.VATID))...)

	height := float64(8 + 5*max(len(companyLines), len(customerLines)+1))

	companyCol := col.New(6)
	companyCol.Add(blockTexts(companyLines, 0, true)...)

	customerCol := col.New(6)
	customerCol.Add(text.New("Bill to", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorGray}))
	customerCol.Add(blockTexts(customerLines, 5, false)...)

	return row.New(height).Add(companyCol, customerCol)
}

// blockTexts apila líneas de texto con offsets verticales crecientes.
func blockTexts(lines []string, topOffset float64, boldFirst bool) []core.Component {
	comps := make([]core.Component, 0, len(lines))
	for i, l := range lines {
		p := props.Text{Size: 9, Top: topOffset + float64(i)*5}
		if boldFirst && i == 0 {
			p.Style = fontstyle.Bold
		}
		comps = append(comps, text.New(l, p))
	}
	return comps
}

func tableHeaderRow() core.Row {
	header := func(s string, width int, al align.Type) core.Col {
		return col.New(width).Add(text.New(s, props.Text{
			Size: 9, Style: fontstyle.Bold, Align: al, Top: 1.5,
		}))
	}
	return row.New(8).
		WithStyle(&props.Cell{BackgroundColor: colorLight}).
		Add(
			header("Description", 6, align.Left),
			header("Qty", 2, align.Center),
			header("Unit price", 2, align.Right),
			header("Amount", 2, align.Right),
		)
}

// tableLineRow: el recibo siempre tiene exactamente un renglón, el cargo.
func tableLineRow(in billing.ReceiptInput, amount string) core.Row {
	description := in.Charge.LineDescription()
	if in.Subscription != nil {
		description = in.Subscription.PlanName
	}
	cell := func(s string, width int, al align.Type) core.Col {
		return col.New(width).Add(text.New(s, props.Text{Size: 9, Align: al, Top: 1.5}))
	}
	return row.New(8).Add(
		cell(description, 6, align.Left),
		cell("1", 2, align.Center),
		cell(amount, 2, align.Right),
		cell(amount, 2, align.Right),
	)
}

func totalsRows(amount string) []core.Row {
	totalRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(label, props.Text{Size: 9, Align: align.Right, Style: style})),
			col.New(2).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Style: style})),
		)
	}
	return []core.Row{
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}),
		totalRow("Subtotal", amount, false),
		totalRow("Total", amount, false),
		totalRow("Amount paid", amount, true),
	}
}

// reverseChargeRow: nota fiscal cuando el cliente aporta su propio VAT ID.
func reverseChargeRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Reverse charge: VAT to be accounted for by the recipient.", props.Text{
				Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 2,
			}),
		),
	)
}

// planRows: detalle del plan cuando el cargo viene de una suscripción.
func planRows(in billing.ReceiptInput) []core.Row {
	sub := in.Subscription
	period := fmt.Sprintf("%s – %s",
		sub.CurrentPeriodStart.Format("Jan 2, 2006"),
		sub.CurrentPeriodEnd.Format("Jan 2, 2006"))
	plan := fmt.Sprintf("%s (%s per %s)",
		sub.PlanName, invoice.FormatCurrency(sub.Amount, sub.Currency), sub.Interval)

	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Price plan", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorGray, Top: 2}),
		)),
		row.New(5).Add(col.New(12).Add(text.New(plan, props.Text{Size: 9}))),
		row.New(5).Add(col.New(12).Add(
			text.New("Billing period: "+period, props.Text{Size: 8, Color: colorGray}),
		)),
	}
}

func footerRows(in billing.ReceiptInput) []core.Row {
	generated := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	return []core.Row{
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
		row.New(5).Add(col.New(12).Add(
			text.New("Generated on "+generated, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("© %d %s. All rights reserved.", time.Now().Year(), in.Company.Name),
				props.Text{Size: 7, Color: colorGray}),
		)),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func vatLine(vat string) string {
	if vat == "" {
		return ""
	}
	return "VAT ID: " + vat
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// brandColor parsea un color hex #rrggbb; un valor inválido cae al gris oscuro.
func brandColor(hex string) *props.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return &props.Color{Red: 30, Green: 30, Blue: 30}
	}
	r, err1 := strconv.ParseUint(h[0:2], 16, 8)
	g, err2 := strconv.ParseUint(h[2:4], 16, 8)
	b, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{Red: 30, Green: 30, Blue: 30}
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}
