package importacion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/workflow"
)

type fakeImportAPI struct {
	xml   entity.ImportXMLResult
	pdf   entity.ImportPDFResult
	err   error
	calls int
	year  int
	month int
	files []entity.UploadFile
}

func (f *fakeImportAPI) ImportXML(_ context.Context, files []entity.UploadFile) (*entity.ImportXMLResult, error) {
	f.calls++
	f.files = files
	if f.err != nil {
		return nil, f.err
	}
	r := f.xml
	return &r, nil
}

func (f *fakeImportAPI) ImportPDF(_ context.Context, files []entity.UploadFile, year, month int) (*entity.ImportPDFResult, error) {
	f.calls++
	f.files = files
	f.year, f.month = year, month
	if f.err != nil {
		return nil, f.err
	}
	r := f.pdf
	return &r, nil
}

type harness struct {
	api     *fakeImportAPI
	busy    *busy.Indicator
	notes   *notify.Queue
	busyLog []int
	refetch int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{api: &fakeImportAPI{}, busy: busy.New()}
	h.notes = notify.New(0, notify.WithAfterFunc(func(_ time.Duration, _ func()) notify.Timer { return noopTimer{} }))
	h.busy.Subscribe(func(n int) { h.busyLog = append(h.busyLog, n) })
	return h
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (h *harness) xml(opts Options) *XMLWorkflow {
	if opts.OnSuccess == nil {
		opts.OnSuccess = func(context.Context) error { h.refetch++; return nil }
	}
	return NewXML(h.api, h.busy, h.notes, opts, nil)
}

func files(names ...string) []entity.UploadFile {
	out := make([]entity.UploadFile, len(names))
	for i, n := range names {
		out[i] = entity.UploadFile{Name: n, Data: []byte("<cfdi/>")}
	}
	return out
}

// ─── Selección ──────────────────────────────────────────────────────────────

func TestSelect(t *testing.T) {
	h := newHarness(t)
	w := h.xml(Options{})

	assert.Equal(t, workflow.StateFilesSelected, w.Select(files("a.xml")))
	assert.Equal(t, workflow.StateIdle, w.Select(nil), "cero archivos vuelve a IDLE")
}

func TestSubmit_SinArchivos(t *testing.T) {
	h := newHarness(t)
	w := h.xml(Options{})

	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, h.api.calls, "no se llama al backend")
	assert.Equal(t, workflow.StateIdle, w.State())
	assert.Empty(t, h.busyLog)
	active := h.notes.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.LevelError, active[0].Level)
	assert.Equal(t, "Selecciona al menos un archivo XML.", active[0].Message)
}

// ─── Prioridad de notificación ──────────────────────────────────────────────

func TestSubmit_PrioridadDeNotificacion(t *testing.T) {
	tests := []struct {
		name    string
		result  entity.ImportXMLResult
		level   notify.Level
		message string
	}{
		{"errores dominan", entity.ImportXMLResult{CFDIInsertados: 5, CFDIDuplicados: 2, Errores: 1}, notify.LevelWarning, "Importacion XML con errores. Revisa los archivos."},
		{"insertados", entity.ImportXMLResult{RetencionesInsertadas: 1, CFDIDuplicados: 3}, notify.LevelSuccess, "Importacion XML completada."},
		{"solo duplicados", entity.ImportXMLResult{CFDIDuplicados: 2, RetencionesDuplicadas: 1}, notify.LevelInfo, "Importacion XML sin nuevos registros (duplicados)."},
		{"sin cambios", entity.ImportXMLResult{}, notify.LevelInfo, "Importacion XML sin cambios."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.xml = tt.result
			w := h.xml(Options{})
			w.Select(files("a.xml", "b.xml"))

			res, err := w.Submit(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.result, *res)
			active := h.notes.Active()
			require.Len(t, active, 1, "exactamente una notificación")
			assert.Equal(t, tt.level, active[0].Level)
			assert.Equal(t, tt.message, active[0].Message)
		})
	}
}

func TestSubmit_ExitoLimpiaYRecarga(t *testing.T) {
	h := newHarness(t)
	h.api.xml = entity.ImportXMLResult{CFDIInsertados: 1}
	w := h.xml(Options{})
	w.Select(files("a.xml", "b.xml"))

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Len(t, h.api.files, 2)
	assert.Equal(t, workflow.StateSucceeded, w.State())
	assert.Equal(t, []int{1, 0}, h.busyLog, "un Show y un Hide")
	assert.Equal(t, 1, h.refetch)

	snap := w.Snapshot()
	assert.Empty(t, snap.Files)
	assert.True(t, snap.HasStats)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 1, snap.Result.CFDIInsertados)
}

func TestSubmit_FalloConservaArchivos(t *testing.T) {
	h := newHarness(t)
	h.api.err = domain.ErrServer
	w := h.xml(Options{})
	w.Select(files("a.xml"))

	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrServer)
	assert.Equal(t, workflow.StateFailed, w.State())
	assert.Equal(t, []string{"a.xml"}, w.Snapshot().Files)
	assert.Equal(t, []int{1, 0}, h.busyLog)
	assert.Zero(t, h.refetch)
	active := h.notes.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "No se pudo importar XML. Revisa el servidor.", active[0].Message)

	h.api.err = nil
	_, err = w.Submit(context.Background())
	require.NoError(t, err, "reintento con los mismos archivos")
	assert.Equal(t, 2, h.api.calls)
}

// blockingImportAPI retiene la subida hasta que se cierra release.
type blockingImportAPI struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	names   [][]string
}

func (b *blockingImportAPI) ImportXML(ctx context.Context, files []entity.UploadFile) (*entity.ImportXMLResult, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	b.mu.Lock()
	b.names = append(b.names, names)
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return &entity.ImportXMLResult{CFDIInsertados: len(files)}, nil
}

func (b *blockingImportAPI) ImportPDF(context.Context, []entity.UploadFile, int, int) (*entity.ImportPDFResult, error) {
	return &entity.ImportPDFResult{}, nil
}

func TestSubmit_SubidaEnCursoAvisa(t *testing.T) {
	h := newHarness(t)
	api := &blockingImportAPI{started: make(chan struct{}, 1), release: make(chan struct{})}
	w := NewXML(api, h.busy, h.notes, Options{}, nil)
	w.Select(files("a.xml"))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()
	<-api.started

	assert.Equal(t, workflow.StateUploading, w.Select(files("b.xml")), "la selección no cambia durante la subida")
	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrInProgress)
	active := h.notes.Active()
	require.Len(t, active, 1, "un aviso por el segundo lote")
	assert.Equal(t, notify.LevelWarning, active[0].Level)
	assert.Equal(t, XMLMessages.InProgress, active[0].Message)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, workflow.StateSucceeded, w.State())
	api.mu.Lock()
	assert.Equal(t, [][]string{{"a.xml"}}, api.names, "solo se subió el primer lote")
	api.mu.Unlock()
	assert.Len(t, h.notes.Active(), 2, "aviso más el resultado del primer lote")
}

func TestCancel(t *testing.T) {
	h := newHarness(t)
	w := h.xml(Options{})
	w.Select(files("a.xml"))

	w.Cancel()

	assert.Equal(t, workflow.StateIdle, w.State())
	assert.Empty(t, w.Snapshot().Files)
}

func TestShowCard(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.xml(Options{}).ShowCard())
	assert.False(t, h.xml(Options{EmbeddedInDialog: true}).ShowCard())
}

// ─── PDF ────────────────────────────────────────────────────────────────────

func TestPDF_PeriodoOpcional(t *testing.T) {
	h := newHarness(t)
	h.api.pdf = entity.ImportPDFResult{Duplicados: 1}
	w := NewPDF(h.api, h.busy, h.notes, Options{}, nil)
	w.SetPeriod(2024, 3)
	w.Select(files("acuse.pdf"))

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2024, h.api.year)
	assert.Equal(t, 3, h.api.month)
	active := h.notes.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.LevelInfo, active[0].Level)
	assert.Equal(t, "Importacion PDF sin nuevos registros (duplicados).", active[0].Message)
}

func TestPDF_SinArchivos(t *testing.T) {
	h := newHarness(t)
	w := NewPDF(h.api, h.busy, h.notes, Options{}, nil)

	_, err := w.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "Selecciona al menos un PDF.", h.notes.Active()[0].Message)
}
