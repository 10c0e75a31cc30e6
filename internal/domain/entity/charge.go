package entity

import (
	"strings"
	"time"
)

// PaymentMethodDetails método de pago del cargo (tipo + tarjeta si aplica).
type PaymentMethodDetails struct {
	Type      string // "card", "sepa_debit", ...
	CardBrand string // "visa", "mastercard", ...
	CardLast4 string
}

// ChargeData un cargo de Stripe, inmutable una vez creado en el upstream.
// Amount está en unidades menores (centavos).
type ChargeData struct {
	ID            string
	Amount        int64
	Currency      string
	Created       time.Time
	Description   string
	PaymentMethod PaymentMethodDetails
	Status        string
	Paid          bool
}

// PaymentMethodLabel etiqueta legible del método de pago para el documento,
// ej. "Visa **** 4242". Fallback genérico "Card".
func (c ChargeData) PaymentMethodLabel() string {
	if c.PaymentMethod.Type == "card" {
		if c.PaymentMethod.CardBrand != "" || c.PaymentMethod.CardLast4 != "" {
			return capitalize(c.PaymentMethod.CardBrand) + " **** " + c.PaymentMethod.CardLast4
		}
		return "Card"
	}
	if c.PaymentMethod.Type != "" {
		return capitalize(c.PaymentMethod.Type)
	}
	return "Card"
}

// LineDescription descripción del renglón único del documento: la descripción
// del cargo o, en su defecto, una referencia al id.
func (c ChargeData) LineDescription() string {
	if c.Description != "" {
		return c.Description
	}
	return "Charge " + c.ID
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
