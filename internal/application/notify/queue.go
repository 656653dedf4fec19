// Package notify administra la cola de notificaciones visibles al usuario.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Level nivel de la notificación.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultTitle título por defecto de cada nivel.
func (l Level) DefaultTitle() string {
	switch l {
	case LevelSuccess:
		return "Exito"
	case LevelWarning:
		return "Atencion"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// DefaultTimeout auto-cierre cuando no se configura otro.
const DefaultTimeout = 4000 * time.Millisecond

// Notification mensaje mostrado.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// EventKind tipo de evento de la cola.
type EventKind string

const (
	EventShown     EventKind = "shown"
	EventDismissed EventKind = "dismissed"
)

// Event cambio en la cola entregado a los suscriptores.
type Event struct {
	Kind         EventKind
	Notification Notification
}

// Timer token de cancelación del auto-cierre.
type Timer interface {
	Stop() bool
}

// AfterFunc programa f tras d; reemplazable en tests.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configura la cola.
type Option func(*Queue)

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(q *Queue) { q.log = l.WithComponent("notify") }
}

// WithAfterFunc reemplaza el reloj de auto-cierre.
func WithAfterFunc(f AfterFunc) Option {
	return func(q *Queue) { q.afterFunc = f }
}

type entry struct {
	n     Notification
	timer Timer
}

// Queue cola de notificaciones apiladas; sin deduplicación, en orden de llamada.
type Queue struct {
	timeout   time.Duration
	afterFunc AfterFunc
	log       *logger.Logger
	now       func() time.Time

	pub     sync.Mutex // serializa cambio + fan-out
	mu      sync.Mutex
	items   []*entry
	subs    map[int]func(Event)
	nextSub int
}

// New crea una cola con el auto-cierre dado (DefaultTimeout si es <= 0).
func New(timeout time.Duration, opts ...Option) *Queue {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	q := &Queue{
		timeout:   timeout,
		afterFunc: stdAfterFunc,
		log:       logger.Nop(),
		now:       time.Now,
		subs:      make(map[int]func(Event)),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Notify muestra un mensaje. title opcional; si falta se usa el del nivel.
func (q *Queue) Notify(level Level, message string, title ...string) Notification {
	t := level.DefaultTitle()
	if len(title) > 0 && title[0] != "" {
		t = title[0]
	}
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Title:     t,
		Message:   message,
		CreatedAt: q.now(),
	}

	q.pub.Lock()
	defer q.pub.Unlock()

	e := &entry{n: n}
	q.mu.Lock()
	q.items = append(q.items, e)
	e.timer = q.afterFunc(q.timeout, func() { q.dismiss(n.ID, "auto") })
	fns := q.subscribers()
	q.mu.Unlock()

	q.log.Debug().Str("level", string(level)).Str("id", n.ID).Msg(message)
	for _, fn := range fns {
		fn(Event{Kind: EventShown, Notification: n})
	}
	return n
}

// Info, Success, Warning y Error atajos por nivel.
func (q *Queue) Info(msg string, title ...string) Notification {
	return q.Notify(LevelInfo, msg, title...)
}
func (q *Queue) Success(msg string, title ...string) Notification {
	return q.Notify(LevelSuccess, msg, title...)
}
func (q *Queue) Warning(msg string, title ...string) Notification {
	return q.Notify(LevelWarning, msg, title...)
}
func (q *Queue) Error(msg string, title ...string) Notification {
	return q.Notify(LevelError, msg, title...)
}

// Dismiss cierra la notificación y detiene su temporizador. false si ya no estaba.
func (q *Queue) Dismiss(id string) bool {
	return q.dismiss(id, "manual")
}

func (q *Queue) dismiss(id, reason string) bool {
	q.pub.Lock()
	defer q.pub.Unlock()

	q.mu.Lock()
	idx := -1
	for i, e := range q.items {
		if e.n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	e := q.items[idx]
	q.items = append(q.items[:idx:idx], q.items[idx+1:]...)
	if e.timer != nil {
		e.timer.Stop()
	}
	fns := q.subscribers()
	q.mu.Unlock()

	q.log.Debug().Str("id", id).Str("reason", reason).Msg("notificación cerrada")
	for _, fn := range fns {
		fn(Event{Kind: EventDismissed, Notification: e.n})
	}
	return true
}

func (q *Queue) subscribers() []func(Event) {
	fns := make([]func(Event), 0, len(q.subs))
	for _, fn := range q.subs {
		fns = append(fns, fn)
	}
	return fns
}

// Active notificaciones visibles, en orden de llegada.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	for i, e := range q.items {
		out[i] = e.n
	}
	return out
}

// Subscribe recibe los eventos de la cola. fn no debe notificar de forma síncrona.
func (q *Queue) Subscribe(fn func(Event)) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	q.mu.Unlock()
	return func() {
		q.mu.Lock()
		delete(q.subs, id)
		q.mu.Unlock()
	}
}

// Timeout auto-cierre configurado.
func (q *Queue) Timeout() time.Duration { return q.timeout }
