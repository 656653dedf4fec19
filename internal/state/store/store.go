// Package store implementa el almacén normalizado por tipo de entidad.
//
// Cada mutación produce un snapshot inmutable nuevo; la mutación y la notificación
// a suscriptores se serializan para que todos observen los snapshots en el mismo
// orden en que ocurrieron.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Entity es cualquier registro identificado por un id numérico único en su store.
type Entity interface {
	EntityID() int64
}

// State snapshot del store. Los mapas y slices no deben modificarse.
type State[E Entity, F any, A any] struct {
	Entities map[int64]E
	Order    []int64 // orden de la última respuesta del backend
	Filters  F
	Aux      map[int64]A
	Version  uint64
}

// All entidades en orden de llegada.
func (s State[E, F, A]) All() []E {
	out := make([]E, 0, len(s.Order))
	for _, id := range s.Order {
		if e, ok := s.Entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len número de entidades.
func (s State[E, F, A]) Len() int { return len(s.Order) }

// Store almacén genérico: entidades + filtros + datos auxiliares por id.
type Store[E Entity, F any, A any] struct {
	name    string
	initial F
	log     *logger.Logger

	pub sync.Mutex // serializa mutación + fan-out
	mu  sync.RWMutex
	st  State[E, F, A]

	subs    map[int]func(State[E, F, A])
	nextSub int

	fetchSeq atomic.Uint64
}

// New crea un store vacío con los filtros iniciales dados.
func New[E Entity, F any, A any](name string, initial F, log *logger.Logger) *Store[E, F, A] {
	if log == nil {
		log = logger.Nop()
	}
	return &Store[E, F, A]{
		name:    name,
		initial: initial,
		log:     log.WithComponent("store." + name),
		st:      emptyState[E, F, A](initial),
		subs:    make(map[int]func(State[E, F, A])),
	}
}

func emptyState[E Entity, F any, A any](f F) State[E, F, A] {
	return State[E, F, A]{
		Entities: map[int64]E{},
		Filters:  f,
		Aux:      map[int64]A{},
	}
}

// Name nombre del store (facturas, retenciones, declaraciones).
func (s *Store[E, F, A]) Name() string { return s.name }

// State snapshot actual.
func (s *Store[E, F, A]) State() State[E, F, A] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// Subscribe registra fn y le entrega el snapshot actual de inmediato.
// fn no debe mutar el store de forma síncrona. Devuelve la función para desuscribirse.
func (s *Store[E, F, A]) Subscribe(fn func(State[E, F, A])) (unsubscribe func()) {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	snap := s.st
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update aplica mut al estado bajo el candado de publicación y notifica.
// mut recibe una copia superficial y debe reemplazar (no modificar) mapas y slices.
func (s *Store[E, F, A]) update(mut func(st *State[E, F, A]) bool) bool {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	next := s.st
	if !mut(&next) {
		s.mu.Unlock()
		return false
	}
	next.Version = s.st.Version + 1
	s.st = next
	fns := make([]func(State[E, F, A]), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return true
}

// SetEntities reemplaza por completo el conjunto de entidades. Filtros y aux no cambian.
func (s *Store[E, F, A]) SetEntities(items []E) {
	s.update(func(st *State[E, F, A]) bool {
		st.Entities, st.Order = index(items)
		return true
	})
	s.log.Debug().Int("count", len(items)).Msg("entidades reemplazadas")
}

func index[E Entity](items []E) (map[int64]E, []int64) {
	m := make(map[int64]E, len(items))
	order := make([]int64, 0, len(items))
	for _, it := range items {
		id := it.EntityID()
		if _, dup := m[id]; !dup {
			order = append(order, id)
		}
		m[id] = it
	}
	return m, order
}

// BeginFetch reserva un token para una lectura de listado. Solo el token más reciente
// puede confirmar su respuesta.
func (s *Store[E, F, A]) BeginFetch() uint64 {
	return s.fetchSeq.Add(1)
}

// CommitFetch reemplaza las entidades si token sigue siendo el más reciente.
// Devuelve false (sin cambios) cuando la respuesta quedó obsoleta.
func (s *Store[E, F, A]) CommitFetch(token uint64, items []E) bool {
	ok := s.update(func(st *State[E, F, A]) bool {
		if token != s.fetchSeq.Load() {
			return false
		}
		st.Entities, st.Order = index(items)
		return true
	})
	if !ok {
		s.log.Debug().Uint64("token", token).Msg("respuesta obsoleta descartada")
	}
	return ok
}

// UpdateFilters aplica un parche parcial a los filtros. Las entidades no cambian.
func (s *Store[E, F, A]) UpdateFilters(patch func(F) F) {
	s.update(func(st *State[E, F, A]) bool {
		st.Filters = patch(st.Filters)
		return true
	})
}

// SetAux guarda el dato auxiliar de id. Cada llamada es una fusión atómica.
func (s *Store[E, F, A]) SetAux(id int64, v A) {
	s.update(func(st *State[E, F, A]) bool {
		aux := make(map[int64]A, len(st.Aux)+1)
		for k, a := range st.Aux {
			aux[k] = a
		}
		aux[id] = v
		st.Aux = aux
		return true
	})
}

// Aux devuelve el dato auxiliar de id si existe.
func (s *Store[E, F, A]) Aux(id int64) (A, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.st.Aux[id]
	return v, ok
}

// HasAux indica si id ya tiene dato auxiliar.
func (s *Store[E, F, A]) HasAux(id int64) bool {
	_, ok := s.Aux(id)
	return ok
}

// Reset restaura el estado inicial: sin entidades, filtros iniciales y aux vacío.
func (s *Store[E, F, A]) Reset() {
	s.fetchSeq.Add(1) // invalida lecturas en curso
	s.update(func(st *State[E, F, A]) bool {
		*st = emptyState[E, F, A](s.initial)
		return true
	})
}
