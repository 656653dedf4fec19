package api

import (
	"fmt"
	"net/http"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// HTTPError fallo de una petición a cfdi-api. Status 0 indica fallo de transporte.
// errors.Is funciona contra los errores de dominio equivalentes.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
	Cause  error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: sin conexión: %v", e.Method, e.Path, e.Cause)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
}

// Unwrap expone el error de dominio según el status y la causa original.
func (e *HTTPError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := sentinelFor(e.Status); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func sentinelFor(status int) error {
	switch {
	case status == 0:
		return domain.ErrTransport
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= http.StatusInternalServerError:
		return domain.ErrServer
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}
