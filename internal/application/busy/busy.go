// Package busy lleva la cuenta de operaciones en curso para el indicador de carga.
package busy

import "sync"

// Indicator contador de operaciones en vuelo. Nunca baja de cero.
type Indicator struct {
	mu      sync.Mutex
	count   int
	subs    map[int]func(int)
	nextSub int
}

// New crea un indicador en cero.
func New() *Indicator {
	return &Indicator{subs: make(map[int]func(int))}
}

// Show registra el inicio de una operación.
func (b *Indicator) Show() { b.set(func(n int) int { return n + 1 }) }

// Hide registra el fin de una operación; en cero no hace nada.
func (b *Indicator) Hide() {
	b.set(func(n int) int {
		if n <= 0 {
			return 0
		}
		return n - 1
	})
}

func (b *Indicator) set(next func(int) int) {
	b.mu.Lock()
	b.count = next(b.count)
	n := b.count
	fns := make([]func(int), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}

// Count operaciones en curso.
func (b *Indicator) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Busy indica si hay al menos una operación en curso.
func (b *Indicator) Busy() bool { return b.Count() > 0 }

// Subscribe recibe el contador tras cada Show/Hide.
func (b *Indicator) Subscribe(fn func(count int)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Track envuelve fn con exactamente un Show y un Hide.
func (b *Indicator) Track(fn func() error) error {
	b.Show()
	defer b.Hide()
	return fn()
}
