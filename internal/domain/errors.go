package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrLegalInfoIncomplete = errors.New("unable to generate invoice due to missing mandatory legal information")
)

// UpstreamError envuelve un fallo no-2xx del proveedor de pagos o del
// transporte de email, preservando el status HTTP para propagarlo al caller.
type UpstreamError struct {
	Status int    // status HTTP del upstream; 0 si no se conoce
	Op     string // operación que falló, ej. "stripe: get customer"
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus devuelve el status a exponer al caller: el del upstream si se
// conoce, 502 en caso contrario.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status > 0 {
		return e.Status
	}
	return 502
}
