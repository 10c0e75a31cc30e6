// Package background despacha tareas fire-and-forget con logging propio.
//
// El webhook de Stripe y el POST manual responden de inmediato y delegan el
// envío de la factura a una de estas tareas; un fallo posterior al ack solo
// es observable en los logs.
package background

import (
	"fmt"

	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// Go ejecuta fn en una goroutine propia con recover. Un panic o un error
// retornado se registra con el nombre de la tarea y no tumba el proceso.
func Go(log *logger.Logger, name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("task", name).
					Err(fmt.Errorf("panic: %v", r)).
					Msg("tarea en background abortada por panic")
			}
		}()
		if err := fn(); err != nil {
			log.Error().Str("task", name).Err(err).Msg("tarea en background falló")
		}
	}()
}
