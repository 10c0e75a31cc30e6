package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tabla estática código→símbolo. Los códigos no mapeados caen al código en
// mayúsculas como sufijo.
var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"jpy": "¥",
	"cny": "¥",
	"inr": "₹",
	"krw": "₩",
	"brl": "R$",
	"cad": "CA$",
	"aud": "A$",
	"nzd": "NZ$",
	"mxn": "MX$",
	"hkd": "HK$",
	"sgd": "S$",
	"chf": "CHF ",
	"sek": "kr ",
	"nok": "kr ",
	"dkk": "kr ",
	"pln": "zł ",
	"cop": "COP$",
}

// FormatCurrency convierte un monto en unidades menores (centavos) a su
// representación de dos decimales con símbolo: (1050, "usd") → "$10.50".
// Códigos desconocidos usan el código en mayúsculas: (999, "xyz") → "9.99 XYZ".
func FormatCurrency(amountMinor int64, currency string) string {
	value := decimal.NewFromInt(amountMinor).Div(decimal.NewFromInt(100)).StringFixed(2)
	code := strings.ToLower(currency)
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + value
	}
	if code == "" {
		return value
	}
	return value + " " + strings.ToUpper(code)
}
