package notify

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// fakeClock guarda los temporizadores para dispararlos a mano.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	if !t.stopped {
		t.f()
	}
}

func newQueue(t *testing.T) (*Queue, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	return New(0, WithAfterFunc(clock.AfterFunc)), clock
}

// ─── Notify ─────────────────────────────────────────────────────────────────

func TestNotify_TitulosPorDefecto(t *testing.T) {
	q, _ := newQueue(t)
	tests := []struct {
		level Level
		title string
	}{
		{LevelInfo, "Info"},
		{LevelSuccess, "Exito"},
		{LevelWarning, "Atencion"},
		{LevelError, "Error"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			n := q.Notify(tt.level, "mensaje")
			assert.Equal(t, tt.title, n.Title)
		})
	}

	custom := q.Info("hola", "Aviso")
	assert.Equal(t, "Aviso", custom.Title)
}

func TestNotify_ApilaSinDeduplicar(t *testing.T) {
	q, clock := newQueue(t)
	q.Error("igual")
	q.Error("igual")
	q.Success("otro")

	active := q.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "igual", active[0].Message)
	assert.Equal(t, "otro", active[2].Message)
	assert.NotEqual(t, active[0].ID, active[1].ID)

	for _, tm := range clock.timers {
		assert.Equal(t, DefaultTimeout, tm.d, "auto-cierre de 4000 ms")
	}
}

func TestAutoCierre(t *testing.T) {
	q, clock := newQueue(t)
	q.Info("uno")
	q.Info("dos")

	clock.fire(0)

	active := q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "dos", active[0].Message)
}

func TestDismiss_DetieneTemporizador(t *testing.T) {
	q, clock := newQueue(t)
	n := q.Warning("cerrar")

	assert.True(t, q.Dismiss(n.ID))
	assert.True(t, clock.timers[0].stopped)
	assert.False(t, q.Dismiss(n.ID), "segunda vez ya no existe")
	assert.Empty(t, q.Active())
}

func TestSubscribe_Eventos(t *testing.T) {
	q, clock := newQueue(t)
	var events []string
	q.Subscribe(func(e Event) {
		events = append(events, fmt.Sprintf("%s:%s", e.Kind, e.Notification.Message))
	})

	q.Info("a")
	q.Error("b")
	clock.fire(0)

	assert.Equal(t, []string{"shown:a", "shown:b", "dismissed:a"}, events)
}

func TestTimerReal(t *testing.T) {
	q := New(10 * time.Millisecond)
	q.Info("efímera")
	assert.Eventually(t, func() bool { return len(q.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

// ─── Reporter ───────────────────────────────────────────────────────────────

func TestReporter_Taxonomia(t *testing.T) {
	msgs := Messages{NotFound: "No hay datos para ese periodo.", Fallback: "No se pudo cargar."}
	tests := []struct {
		name    string
		err     error
		level   Level
		message string
	}{
		{"transporte", fmt.Errorf("get: %w", domain.ErrTransport), LevelError, MsgTransport},
		{"401", domain.ErrUnauthorized, LevelWarning, MsgUnauthorized},
		{"5xx", domain.ErrServer, LevelError, MsgServer},
		{"404", domain.ErrNotFound, LevelWarning, "No hay datos para ese periodo."},
		{"otro", errors.New("boom"), LevelError, "No se pudo cargar."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := newQueue(t)
			r := NewReporter(q)

			assert.True(t, r.Report(tt.err, msgs))

			active := q.Active()
			require.Len(t, active, 1, "exactamente una notificación")
			assert.Equal(t, tt.level, active[0].Level)
			assert.Equal(t, tt.message, active[0].Message)
		})
	}
}

func TestReporter_404SinMensajePropio(t *testing.T) {
	q, _ := newQueue(t)
	NewReporter(q).Report(domain.ErrNotFound, Messages{Fallback: "No se pudo cargar."})

	active := q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, LevelError, active[0].Level)
}

func TestReporter_Silencios(t *testing.T) {
	q, _ := newQueue(t)
	r := NewReporter(q)

	assert.False(t, r.Report(nil, Messages{}))
	assert.False(t, r.Report(domain.ErrStale, Messages{}))
	assert.Empty(t, q.Active())
}
