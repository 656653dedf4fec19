// Package latest sigue el detalle seleccionado: al cambiar de id se cancela la
// lectura anterior y sus resultados tardíos se descartan.
package latest

import (
	"context"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// FetchFunc lee el detalle de id.
type FetchFunc[T any] func(ctx context.Context, id int64) (T, error)

// Tracker conserva el último detalle cargado.
type Tracker[T any] struct {
	fetch FetchFunc[T]

	mu     sync.Mutex
	seq    uint64
	id     int64
	has    bool // hay un id seleccionado
	done   bool // el valor de id está cargado
	value  T
	cancel context.CancelFunc
}

// New crea un tracker sobre fetch.
func New[T any](fetch FetchFunc[T]) *Tracker[T] {
	return &Tracker[T]{fetch: fetch}
}

// Load selecciona id y devuelve su detalle. Si id ya está cargado no vuelve a leer.
// Una llamada superada por otra más reciente devuelve domain.ErrStale.
func (t *Tracker[T]) Load(ctx context.Context, id int64) (T, error) {
	var zero T

	t.mu.Lock()
	if t.has && t.done && t.id == id {
		v := t.value
		t.mu.Unlock()
		return v, nil
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	seq := t.seq
	cctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.id, t.has, t.done = id, true, false
	t.mu.Unlock()

	v, err := t.fetch(cctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return zero, domain.ErrStale
	}
	cancel()
	t.cancel = nil
	if err != nil {
		t.has = false
		return zero, err
	}
	t.value, t.done = v, true
	return v, nil
}

// Current detalle cargado, si hay.
func (t *Tracker[T]) Current() (id int64, v T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.has || !t.done {
		return 0, v, false
	}
	return t.id, t.value, true
}

// Clear cancela la lectura en curso y olvida la selección.
func (t *Tracker[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
	var zero T
	t.has, t.done, t.value = false, false, zero
}
