package invoice_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-sender/internal/domain/invoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestNumber_VectorExacto valida el vector de referencia del hash polinomial
// base 31: para "cus_1" el hash módulo 100000 es 27635, calculado a mano:
//
//	h = ((((99·31+117)·31+115)·31+95)·31+49) mod 100000 = 27635
//
// Si alguien toca la base, el módulo o el padding, este test falla de inmediato.
// ──────────────────────────────────────────────────────────────────────────────
func TestNumber_VectorExacto(t *testing.T) {
	date := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)

	got := invoice.Number("cus_1", date)

	assert.Equal(t, "26090127635", got,
		"el número debe ser YYMMDD + hash base 31 mod 100000 con padding a 5 dígitos")
}

// TestNumber_DeterministaMismoDia: mismo cliente y mismo día producen siempre
// el mismo número.
func TestNumber_DeterministaMismoDia(t *testing.T) {
	morning := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 15, 22, 45, 0, 0, time.UTC)

	assert.Equal(t,
		invoice.Number("cus_abc123", morning),
		invoice.Number("cus_abc123", evening),
		"la hora del día no debe afectar el número")
}

// TestNumber_DiasDistintosCambianPrefijo: el sufijo hash se conserva y solo
// cambia el prefijo de fecha.
func TestNumber_DiasDistintosCambianPrefijo(t *testing.T) {
	d1 := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	n1 := invoice.Number("cus_abc123", d1)
	n2 := invoice.Number("cus_abc123", d2)

	assert.NotEqual(t, n1, n2)
	assert.Equal(t, n1[6:], n2[6:], "el sufijo hash depende solo del cliente")
	assert.Equal(t, "260101", n1[:6])
	assert.Equal(t, "260102", n2[:6])
}

func TestNumber_ClientesDistintosHashDistinto(t *testing.T) {
	date := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		invoice.Number("cus_AAAA", date),
		invoice.Number("cus_BBBB", date))
}

func TestNumber_LongitudFija(t *testing.T) {
	date := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	// 6 de fecha + 5 de hash, incluso con hash pequeño ("" → 0 → "00000").
	assert.Len(t, invoice.Number("", date), 11)
	assert.Equal(t, "26061000000", invoice.Number("", date))
}

// TestNewReceiptNumber_Formato: NNNN-NNNN, fresco por invocación.
func TestNewReceiptNumber_Formato(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-\d{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rn := invoice.NewReceiptNumber()
		require.Regexp(t, pattern, rn)
		seen[rn] = true
	}
	// 50 extracciones sobre 10^8 combinaciones: una repetición sería sospechosa.
	assert.Greater(t, len(seen), 1, "los números de recibo deben variar entre envíos")
}
