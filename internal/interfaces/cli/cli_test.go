package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/pkg/config"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

type memStorage struct {
	mu sync.Mutex
	m  map[string]string
}

func (s *memStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

type harness struct {
	cfg     *config.Config
	storage *memStorage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/facturas", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"year_emision":2024,"month_emision":3,"tipo_comprobante":"I"},{"id":2,"year_emision":2024,"month_emision":4,"tipo_comprobante":"E"}]`)
	})
	mux.HandleFunc("/facturas/9", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no existe"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/importar", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cfdi_insertados":0,"cfdi_duplicados":1,"retenciones_insertadas":0,"retenciones_duplicadas":0,"errores":0}`)
	})
	mux.HandleFunc("/retenciones", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	return &harness{
		cfg: &config.Config{
			App: config.AppConfig{Name: "cfdi-visor-test"},
			API: config.APIConfig{BaseURL: api.URL, Timeout: 5 * time.Second},
			JWT: config.JWTConfig{Secret: "cli-secret", Expiration: 5, Issuer: "cfdi-visor"},
			UI:  config.UIConfig{NotifyTimeout: time.Hour, AuxConcurrency: 1},
		},
		storage: &memStorage{m: map[string]string{}},
	}
}

// run ejecuta un comando con una App nueva; la sesión persiste entre llamadas.
func (h *harness) run(args ...string) (stdout, stderr string, err error) {
	root := NewRootCmd(
		WithConfig(h.cfg),
		WithLogger(logger.Nop()),
		WithAppOptions(app.WithStorage(h.storage)),
	)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// ─── Sesión ─────────────────────────────────────────────────────────────────

func TestSinSesion(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("facturas")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLoginPersisteEntreEjecuciones(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("login", "--name", "Ana")
	require.NoError(t, err)
	var sess struct {
		User  map[string]string `json:"user"`
		Token string            `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sess))
	assert.Equal(t, "Ana", sess.User["name"])
	assert.NotEmpty(t, sess.Token)

	_, _, err = h.run("facturas")
	require.NoError(t, err)

	_, _, err = h.run("logout")
	require.NoError(t, err)
	_, _, err = h.run("facturas")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

// ─── Listados ───────────────────────────────────────────────────────────────

func TestFacturas_FiltroLocal(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("login")
	require.NoError(t, err)

	out, _, err := h.run("facturas", "--tipo", "I")
	require.NoError(t, err)
	var body struct {
		Items   []map[string]any `json:"items"`
		Count   int              `json:"count"`
		Periods []string         `json:"periods"`
		Filters map[string]any   `json:"filters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "I", body.Filters["tipo"])
	assert.Equal(t, []string{"2024-04", "2024-03"}, body.Periods, "periodos de todo el store, descendente")
}

func TestFacturaGet_NoEncontrada(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("login")
	require.NoError(t, err)

	_, stderr, err := h.run("facturas", "get", "9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, stderr, "[warning] "+app.MsgDetailNotFound)

	_, _, err = h.run("facturas", "get", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Importación ────────────────────────────────────────────────────────────

func TestImportarXML(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "a.xml")
	require.NoError(t, os.WriteFile(path, []byte("<cfdi:Comprobante/>"), 0o600))

	_, _, err := h.run("login", "--role", "viewer")
	require.NoError(t, err)
	_, _, err = h.run("importar", "xml", path)
	assert.True(t, errors.Is(err, errAdminOnly))

	_, _, err = h.run("login")
	require.NoError(t, err)
	out, stderr, err := h.run("importar", "xml", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"cfdi_duplicados": 1`)
	assert.Contains(t, stderr, "duplicados")
}

// ─── Exportación ────────────────────────────────────────────────────────────

func TestExportarFacturas(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("login")
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "f.xlsx")
	out, _, err := h.run("exportar", "facturas", "--out", dst, "--month", "3")
	require.NoError(t, err)
	assert.Contains(t, out, dst)

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 2, "cabecera y una factura")

	_, _, err = h.run("exportar", "clientes")
	assert.Error(t, err)
}
