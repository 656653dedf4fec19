package notify

import (
	"context"
	"errors"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// Mensajes de la taxonomía de errores HTTP.
const (
	MsgTransport    = "Sin conexion con el servidor."
	MsgUnauthorized = "No autorizado."
	MsgServer       = "Error del servidor."
)

// Messages textos propios de la operación que falló.
type Messages struct {
	// NotFound aviso (warning) para 404; vacío usa Fallback.
	NotFound string
	// Fallback error mostrado para cualquier otro fallo.
	Fallback string
}

// Reporter convierte un error en exactamente una notificación.
type Reporter struct {
	q *Queue
}

// NewReporter crea un reporter sobre la cola.
func NewReporter(q *Queue) *Reporter {
	return &Reporter{q: q}
}

// Report notifica err. No hace nada si err es nil, si la petición fue superada por otra
// más reciente o si el contexto se canceló. Devuelve true si mostró algo.
func (r *Reporter) Report(err error, m Messages) bool {
	if err == nil || errors.Is(err, domain.ErrStale) || errors.Is(err, context.Canceled) {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrTransport):
		r.q.Error(MsgTransport)
	case errors.Is(err, domain.ErrUnauthorized):
		r.q.Warning(MsgUnauthorized)
	case errors.Is(err, domain.ErrServer):
		r.q.Error(MsgServer)
	case errors.Is(err, domain.ErrNotFound) && m.NotFound != "":
		r.q.Warning(m.NotFound)
	default:
		msg := m.Fallback
		if msg == "" {
			msg = err.Error()
		}
		r.q.Error(msg)
	}
	return true
}

// Queue cola subyacente.
func (r *Reporter) Queue() *Queue { return r.q }
