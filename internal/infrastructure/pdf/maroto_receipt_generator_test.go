package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-sender/internal/application/billing"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/internal/infrastructure/pdf"
)

func receiptInput() billing.ReceiptInput {
	return billing.ReceiptInput{
		Company: entity.CompanyInfo{
			Name:           "Acme Corp",
			Address:        "1 Main St, Springfield, 12345, United States",
			Email:          "support@acme.test",
			VATID:          "DE123456789",
			BrandColor:     entity.DefaultBrandColor,
			SecondaryColor: entity.DefaultSecondaryColor,
		},
		Customer: entity.CustomerData{
			ID:    "cus_1",
			Name:  "Jane Roe",
			Email: "jane@customer.test",
		},
		Charge: entity.ChargeData{
			ID:       "ch_1",
			Amount:   1050,
			Currency: "usd",
			Created:  time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC),
			Paid:     true,
			PaymentMethod: entity.PaymentMethodDetails{
				Type: "card", CardBrand: "visa", CardLast4: "4242",
			},
		},
		InvoiceNumber: "26082012345",
		ReceiptNumber: "1234-5678",
	}
}

func TestGenerateReceiptPDF_ProduceDocumento(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator()

	data, err := g.GenerateReceiptPDF(context.Background(), receiptInput())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "los bytes deben ser un PDF válido")
}

// El render no debe depender de campos opcionales: sin suscripción, sin VAT del
// cliente y con color de marca inválido igual produce documento.
func TestGenerateReceiptPDF_CamposOpcionalesAusentes(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator()

	in := receiptInput()
	in.Customer.VATID = ""
	in.Subscription = nil
	in.Company.BrandColor = "no-es-hex"

	data, err := g.GenerateReceiptPDF(context.Background(), in)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateReceiptPDF_ConSuscripcion(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator()

	in := receiptInput()
	in.Subscription = &entity.SubscriptionInfo{
		ID:                 "sub_1",
		PlanName:           "Pro Plan",
		Interval:           "month",
		Amount:             1050,
		Currency:           "usd",
		CurrentPeriodStart: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		CurrentPeriodEnd:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := g.GenerateReceiptPDF(context.Background(), in)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
