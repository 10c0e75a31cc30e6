// Package invoice contiene los algoritmos puros de facturación: derivación
// del número de factura, número de recibo, formateo de montos y
// enmascaramiento de emails. Sin I/O ni dependencias de infraestructura.
package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

const hashModulus = 100000

// Number deriva el número de factura para un cliente en una fecha dada:
// prefijo YYMMDD seguido de un hash polinomial base 31 del customer id,
// módulo 100000, con padding a 5 dígitos.
//
// Es una función pura de (customerID, día): dos invocaciones el mismo día
// para el mismo cliente producen el mismo número. No es único en sentido
// estricto: dos clientes distintos pueden colisionar módulo 100000 el mismo
// día. Ver la nota de colisiones en DESIGN.md.
func Number(customerID string, date time.Time) string {
	hash := 0
	for i := 0; i < len(customerID); i++ {
		hash = (hash*31 + int(customerID[i])) % hashModulus
	}
	return fmt.Sprintf("%s%05d", date.Format("060102"), hash)
}

// NewReceiptNumber genera un número de recibo aleatorio con formato
// NNNN-NNNN, fresco por cada envío y sin relación con el número de factura.
func NewReceiptNumber() string {
	return fmt.Sprintf("%04d-%04d", rand.Intn(10000), rand.Intn(10000))
}
