package workflow

import (
	"context"
	"fmt"
)

// GuardFunc decide si una transición procede.
type GuardFunc func(ctx context.Context) bool

type transition struct {
	to    State
	guard GuardFunc
}

// Builder configura las transiciones permitidas antes de construir máquinas.
type Builder struct {
	transitions map[State]map[Trigger][]transition
}

// StateConfig transiciones de un estado de origen.
type StateConfig struct {
	b    *Builder
	from State
}

// NewBuilder crea un builder vacío.
func NewBuilder() *Builder {
	return &Builder{transitions: make(map[State]map[Trigger][]transition)}
}

// Configure devuelve la configuración del estado (se crea si no existe).
func (b *Builder) Configure(s State) *StateConfig {
	if !s.IsValid() {
		panic(fmt.Sprintf("estado inválido: %s", s))
	}
	if _, ok := b.transitions[s]; !ok {
		b.transitions[s] = make(map[Trigger][]transition)
	}
	return &StateConfig{b: b, from: s}
}

// Permit agrega una transición incondicional.
func (c *StateConfig) Permit(t Trigger, to State) *StateConfig {
	return c.PermitIf(t, to, nil)
}

// PermitIf agrega una transición condicionada; las guardas se evalúan en orden de registro.
func (c *StateConfig) PermitIf(t Trigger, to State, guard GuardFunc) *StateConfig {
	if !to.IsValid() {
		panic(fmt.Sprintf("estado destino inválido: %s", to))
	}
	c.b.transitions[c.from][t] = append(c.b.transitions[c.from][t], transition{to: to, guard: guard})
	return c
}

// Build crea una máquina en el estado inicial. La configuración se copia.
func (b *Builder) Build(initial State) *Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("estado inicial inválido: %s", initial))
	}
	cp := make(map[State]map[Trigger][]transition, len(b.transitions))
	for s, byTrigger := range b.transitions {
		m := make(map[Trigger][]transition, len(byTrigger))
		for t, ts := range byTrigger {
			m[t] = append([]transition(nil), ts...)
		}
		cp[s] = m
	}
	return &Machine{current: initial, transitions: cp}
}

// Machine máquina de estados. No es segura para uso concurrente; el dueño sincroniza.
type Machine struct {
	current     State
	transitions map[State]map[Trigger][]transition
}

// State estado actual.
func (m *Machine) State() State { return m.current }

// CanFire indica si existe alguna transición para t desde el estado actual.
func (m *Machine) CanFire(t Trigger) bool {
	return len(m.transitions[m.current][t]) > 0
}

// Fire ejecuta el trigger; la primera transición cuya guarda pase gana.
func (m *Machine) Fire(ctx context.Context, t Trigger) error {
	ts := m.transitions[m.current][t]
	if len(ts) == 0 {
		return fmt.Errorf("%w: %s desde %s", ErrInvalidTransition, t, m.current)
	}
	for _, tr := range ts {
		if tr.guard == nil || tr.guard(ctx) {
			m.current = tr.to
			return nil
		}
	}
	return fmt.Errorf("%w: %s desde %s", ErrGuardFailed, t, m.current)
}
