// Package importacion implementa el flujo seleccionar → subir → conciliar → notificar
// para los lotes de XML (CFDI y retenciones) y de PDF (acuses de declaración).
package importacion

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/workflow"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Result resultado de un lote; Counts decide la notificación.
type Result interface {
	Counts() entity.ImportCounts
}

// Uploader sube el lote al backend.
type Uploader[R Result] func(ctx context.Context, files []entity.UploadFile) (R, error)

// Options capacidades del componente de importación.
type Options struct {
	// EmbeddedInDialog oculta el marco de tarjeta cuando el flujo vive dentro de un diálogo.
	EmbeddedInDialog bool
	// OnSuccess se ejecuta tras una subida exitosa (normalmente el Fetch del repositorio de origen).
	OnSuccess func(ctx context.Context) error
}

// Snapshot estado observable del flujo.
type Snapshot[R Result] struct {
	Kind     string         `json:"kind"`
	State    workflow.State `json:"state"`
	Files    []string       `json:"files"`
	Loading  bool           `json:"loading"`
	ShowCard bool           `json:"show_card"`
	Result   *R             `json:"result,omitempty"`
	HasStats bool           `json:"has_stats"`
}

// Workflow flujo de importación genérico sobre el tipo de resultado.
type Workflow[R Result] struct {
	kind   string
	upload Uploader[R]
	msgs   Messages
	busy   *busy.Indicator
	notes  *notify.Queue
	opts   Options
	log    *logger.Logger

	mu      sync.Mutex
	machine *workflow.Machine
	files   []entity.UploadFile
	result  *R
}

// New crea el flujo en IDLE.
func New[R Result](kind string, upload Uploader[R], msgs Messages, b *busy.Indicator, q *notify.Queue, opts Options, log *logger.Logger) *Workflow[R] {
	if log == nil {
		log = logger.Nop()
	}
	w := &Workflow[R]{
		kind:   kind,
		upload: upload,
		msgs:   msgs,
		busy:   b,
		notes:  q,
		opts:   opts,
		log:    log.WithComponent("importacion." + kind),
	}
	// la guarda se evalúa con w.mu tomado
	w.machine = workflow.NewImportMachine(func(context.Context) bool { return len(w.files) > 0 })
	return w
}

// Select reemplaza la selección. Con cero archivos el flujo vuelve a IDLE.
// Durante una subida la selección no cambia; el Submit siguiente lo informa.
func (w *Workflow[R]) Select(files []entity.UploadFile) workflow.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.machine.State() == workflow.StateUploading {
		w.log.Info().Int("files", len(files)).Msg("selección ignorada: subida en curso")
		return w.machine.State()
	}
	w.files = append([]entity.UploadFile(nil), files...)
	w.result = nil
	if err := w.machine.Fire(context.Background(), workflow.TriggerSelect); err != nil {
		w.log.Warn().Err(err).Msg("selección rechazada")
	}
	return w.machine.State()
}

// Submit sube la selección. Sin archivos notifica un error y no llama al backend;
// con otra subida en curso notifica un aviso y devuelve domain.ErrInProgress.
// En éxito limpia la selección, notifica según los conteos y ejecuta OnSuccess.
// En fallo conserva los archivos para reintentar.
func (w *Workflow[R]) Submit(ctx context.Context) (*R, error) {
	w.mu.Lock()
	if w.machine.State() == workflow.StateUploading {
		w.mu.Unlock()
		w.notes.Warning(w.msgs.InProgress)
		return nil, fmt.Errorf("importación %s: %w", w.kind, domain.ErrInProgress)
	}
	w.result = nil
	if len(w.files) == 0 {
		w.mu.Unlock()
		w.notes.Error(w.msgs.EmptySelection)
		return nil, fmt.Errorf("importación %s sin archivos: %w", w.kind, domain.ErrInvalidInput)
	}
	if err := w.machine.Fire(ctx, workflow.TriggerSubmit); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	files := append([]entity.UploadFile(nil), w.files...)
	w.mu.Unlock()

	w.log.Info().Int("files", len(files)).Msg("subiendo lote")
	res, err := w.send(ctx, files)

	w.mu.Lock()
	if err != nil {
		_ = w.machine.Fire(ctx, workflow.TriggerFail)
		w.mu.Unlock()
		w.log.Error().Err(err).Msg("importación fallida")
		w.notes.Error(w.msgs.Failure)
		return nil, err
	}
	_ = w.machine.Fire(ctx, workflow.TriggerSucceed)
	w.files = nil
	w.result = &res
	w.mu.Unlock()

	c := res.Counts()
	w.log.Info().Int("inserted", c.Inserted).Int("duplicates", c.Duplicates).Int("errors", c.Errors).Msg("importación terminada")
	w.notifyResult(c)

	if w.opts.OnSuccess != nil {
		if err := w.opts.OnSuccess(ctx); err != nil {
			w.log.Warn().Err(err).Msg("recarga posterior a la importación fallida")
		}
	}
	return &res, nil
}

// send envuelve la subida con exactamente un Show y un Hide.
func (w *Workflow[R]) send(ctx context.Context, files []entity.UploadFile) (res R, err error) {
	err = w.busy.Track(func() error {
		var e error
		res, e = w.upload(ctx, files)
		return e
	})
	return res, err
}

// notifyResult una sola notificación: errores > insertados > duplicados > sin cambios.
func (w *Workflow[R]) notifyResult(c entity.ImportCounts) {
	switch {
	case c.Errors > 0:
		w.notes.Warning(w.msgs.WithErrors)
	case c.Inserted > 0:
		w.notes.Success(w.msgs.Completed)
	case c.Duplicates > 0:
		w.notes.Info(w.msgs.Duplicates)
	default:
		w.notes.Info(w.msgs.NoChanges)
	}
}

// Cancel descarta selección y resultado y vuelve a IDLE.
func (w *Workflow[R]) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.machine.State() == workflow.StateUploading {
		return
	}
	w.files = nil
	w.result = nil
	_ = w.machine.Fire(context.Background(), workflow.TriggerClear)
}

// State estado actual.
func (w *Workflow[R]) State() workflow.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.State()
}

// ShowCard el marco de tarjeta se muestra solo fuera de un diálogo.
func (w *Workflow[R]) ShowCard() bool { return !w.opts.EmbeddedInDialog }

// Kind xml o pdf.
func (w *Workflow[R]) Kind() string { return w.kind }

// Snapshot copia del estado para presentar.
func (w *Workflow[R]) Snapshot() Snapshot[R] {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, len(w.files))
	for i, f := range w.files {
		names[i] = f.Name
	}
	s := Snapshot[R]{
		Kind:     w.kind,
		State:    w.machine.State(),
		Files:    names,
		Loading:  w.machine.State() == workflow.StateUploading,
		ShowCard: w.ShowCard(),
	}
	if w.result != nil {
		r := *w.result
		s.Result = &r
		s.HasStats = r.Counts().HasStats()
	}
	return s
}
