package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
)

func TestFormatCurrency_CodigosConocidos(t *testing.T) {
	cases := []struct {
		name     string
		amount   int64
		currency string
		want     string
	}{
		{"usd con centavos", 1050, "usd", "$10.50"},
		{"usd mayúsculas en la entrada", 1050, "USD", "$10.50"},
		{"eur", 2000, "eur", "€20.00"},
		{"gbp", 99, "gbp", "£0.99"},
		{"monto cero", 0, "usd", "$0.00"},
		{"monto grande sin pérdida", 123456789, "usd", "$1234567.89"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, invoice.FormatCurrency(tc.amount, tc.currency))
		})
	}
}

// Los códigos no mapeados caen al código en mayúsculas como sufijo.
func TestFormatCurrency_CodigoDesconocido(t *testing.T) {
	assert.Equal(t, "9.99 XYZ", invoice.FormatCurrency(999, "xyz"))
	assert.Equal(t, "9.99 XYZ", invoice.FormatCurrency(999, "XYZ"))
}

func TestFormatCurrency_SiempreDosDecimales(t *testing.T) {
	assert.Equal(t, "$10.00", invoice.FormatCurrency(1000, "usd"))
	assert.Equal(t, "$0.05", invoice.FormatCurrency(5, "usd"))
}
