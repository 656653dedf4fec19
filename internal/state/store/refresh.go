package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// ListFunc lectura de un listado del backend, sin decodificar.
type ListFunc func(ctx context.Context) ([]json.RawMessage, error)

// Refresh ejecuta una lectura completa: reserva token, normaliza y confirma.
// Si la lectura falla el store no cambia. Devuelve domain.ErrStale si otra lectura
// más reciente ganó.
func (s *Store[E, F, A]) Refresh(ctx context.Context, list ListFunc) ([]E, error) {
	token := s.BeginFetch()
	raws, err := list(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("lectura de listado fallida; se conserva la lista previa")
		return nil, err
	}
	items, dropped := Normalize[E](raws)
	if dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Msg("registros sin id numérico descartados")
	}
	if !s.CommitFetch(token, items) {
		return nil, fmt.Errorf("%s: %w", s.name, domain.ErrStale)
	}
	return items, nil
}
