// Package query deriva vistas filtradas a partir de los snapshots de un store.
package query

import (
	"sort"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/state/store"
)

// Spec describe cómo filtrar y agrupar las entidades de un tipo.
type Spec[E store.Entity, F any] struct {
	// Match indica si la entidad pasa todos los filtros activos.
	Match func(e E, f F) bool
	// Period clave YYYY-MM de la entidad; ok false si faltan campos.
	Period func(e E) (key string, ok bool)
}

// Row entidad con su dato auxiliar (nil si aún no se obtiene).
type Row[E any, A any] struct {
	Item E
	Aux  *A
}

// Result vista derivada de un snapshot.
type Result[E store.Entity, A any] struct {
	Items   []E
	Rows    []Row[E, A]
	Count   int
	Periods []string // periodos de todas las entidades, descendente
	Version uint64
}

// Compute es puro: depende solo de (entidades, filtros, aux).
func Compute[E store.Entity, F any, A any](st store.State[E, F, A], spec Spec[E, F]) Result[E, A] {
	all := st.All()
	res := Result[E, A]{
		Items:   make([]E, 0, len(all)),
		Rows:    make([]Row[E, A], 0, len(all)),
		Version: st.Version,
	}

	seen := make(map[string]struct{})
	for _, e := range all {
		if spec.Period != nil {
			if k, ok := spec.Period(e); ok {
				if _, dup := seen[k]; !dup {
					seen[k] = struct{}{}
					res.Periods = append(res.Periods, k)
				}
			}
		}
		if spec.Match != nil && !spec.Match(e, st.Filters) {
			continue
		}
		row := Row[E, A]{Item: e}
		if a, ok := st.Aux[e.EntityID()]; ok {
			a := a
			row.Aux = &a
		}
		res.Items = append(res.Items, e)
		res.Rows = append(res.Rows, row)
	}
	res.Count = len(res.Items)
	sort.Sort(sort.Reverse(sort.StringSlice(res.Periods)))
	if res.Periods == nil {
		res.Periods = []string{}
	}
	return res
}

// View mantiene la vista derivada al día con el store.
type View[E store.Entity, F any, A any] struct {
	spec Spec[E, F]

	mu      sync.RWMutex
	current Result[E, A]
	subs    map[int]func(Result[E, A])
	nextSub int

	unsubscribe func()
}

// NewView se suscribe al store y recalcula una vez por snapshot.
func NewView[E store.Entity, F any, A any](s *store.Store[E, F, A], spec Spec[E, F]) *View[E, F, A] {
	v := &View[E, F, A]{spec: spec, subs: make(map[int]func(Result[E, A]))}
	v.unsubscribe = s.Subscribe(v.recompute)
	return v
}

func (v *View[E, F, A]) recompute(st store.State[E, F, A]) {
	res := Compute(st, v.spec)

	v.mu.Lock()
	v.current = res
	fns := make([]func(Result[E, A]), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(res)
	}
}

// Current última vista calculada.
func (v *View[E, F, A]) Current() Result[E, A] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Subscribe recibe cada vista recalculada. No entrega la actual.
func (v *View[E, F, A]) Subscribe(fn func(Result[E, A])) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

// Close deja de seguir al store.
func (v *View[E, F, A]) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}
