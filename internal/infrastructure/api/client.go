// Package api es el cliente HTTP de cfdi-api.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ repository.FacturaAPI            = (*Client)(nil)
	_ repository.RetencionAPI          = (*Client)(nil)
	_ repository.DeclaracionAPI        = (*Client)(nil)
	_ repository.DeclaracionMensualAPI = (*Client)(nil)
	_ repository.ResumenAPI            = (*Client)(nil)
	_ repository.ImportAPI             = (*Client)(nil)
)

// maxErrorBody bytes del cuerpo incluidos en HTTPError.
const maxErrorBody = 512

// Observer recibe la duración de cada petición (métricas).
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Client adaptador REST de cfdi-api sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	log        *logger.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.httpClient = c } }

// WithObserver registra un observador de peticiones.
func WithObserver(o Observer) Option { return func(cl *Client) { cl.observer = o } }

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) { cl.log = l.WithComponent("api") }
}

// NewClient construye el cliente. baseURL sin barra final (ej. http://localhost:8000/api/v1).
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL raíz de cfdi-api.
func (c *Client) BaseURL() string { return c.baseURL }

// URL construye un enlace absoluto para path.
func (c *Client) URL(path string) string { return c.baseURL + path }

// ── Facturas ─────────────────────────────────────────────────────────────────

func (c *Client) ListFacturas(ctx context.Context, q repository.FacturaQuery) ([]json.RawMessage, error) {
	params := url.Values{}
	setInt(params, "year", q.Year)
	setInt(params, "month", q.Month)
	setStr(params, "tipo", q.Tipo)
	setStr(params, "naturaleza", q.Naturaleza)
	var out []json.RawMessage
	err := c.getJSON(ctx, "/facturas", "/facturas", params, &out)
	return out, err
}

func (c *Client) GetFactura(ctx context.Context, id int64) (*entity.FacturaDetalle, error) {
	var out entity.FacturaDetalle
	if err := c.getJSON(ctx, fmt.Sprintf("/facturas/%d", id), "/facturas/{id}", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFacturaXML(ctx context.Context, id int64) (string, error) {
	b, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/facturas/%d/xml", id), "/facturas/{id}/xml", nil, nil, "")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ── Retenciones ──────────────────────────────────────────────────────────────

func (c *Client) ListRetenciones(ctx context.Context) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := c.getJSON(ctx, "/retenciones", "/retenciones", nil, &out)
	return out, err
}

func (c *Client) GetRetencion(ctx context.Context, id int64) (*entity.RetencionDetalle, error) {
	var out entity.RetencionDetalle
	if err := c.getJSON(ctx, fmt.Sprintf("/retenciones/%d", id), "/retenciones/{id}", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Declaraciones ────────────────────────────────────────────────────────────

func (c *Client) ListDeclaraciones(ctx context.Context) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := c.getJSON(ctx, "/declaraciones", "/declaraciones", nil, &out)
	return out, err
}

func (c *Client) GetDeclaracion(ctx context.Context, id int64) (*entity.DeclaracionDetalle, error) {
	var out entity.DeclaracionDetalle
	if err := c.getJSON(ctx, fmt.Sprintf("/declaraciones/%d", id), "/declaraciones/{id}", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDeclaracionResumen(ctx context.Context, id int64) (*entity.DeclaracionResumen, error) {
	var out entity.DeclaracionResumen
	if err := c.getJSON(ctx, fmt.Sprintf("/declaraciones/%d/resumen.json", id), "/declaraciones/{id}/resumen.json", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDeclaracionMensual(ctx context.Context, year, month int, incomeSource string) (*entity.DeclaracionMensual, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(month))
	params.Set("income_source", incomeSource)
	var out entity.DeclaracionMensual
	if err := c.getJSON(ctx, "/declaracion", "/declaracion", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Resumen ──────────────────────────────────────────────────────────────────

func (c *Client) GetResumen(ctx context.Context, year, month int) (*entity.ResumenPeriodo, error) {
	var out entity.ResumenPeriodo
	if err := c.getJSON(ctx, "/summary", "/summary", periodParams(year, month), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetResumenDetalle(ctx context.Context, year, month int) (*entity.ResumenDetalle, error) {
	var out entity.ResumenDetalle
	if err := c.getJSON(ctx, "/summary/details", "/summary/details", periodParams(year, month), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Importación ──────────────────────────────────────────────────────────────

func (c *Client) ImportXML(ctx context.Context, files []entity.UploadFile) (*entity.ImportXMLResult, error) {
	var out entity.ImportXMLResult
	if err := c.postFiles(ctx, "/importar", nil, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ImportPDF(ctx context.Context, files []entity.UploadFile, year, month int) (*entity.ImportPDFResult, error) {
	var out entity.ImportPDFResult
	if err := c.postFiles(ctx, "/importar_pdf", periodParams(year, month), files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Transporte ───────────────────────────────────────────────────────────────

func (c *Client) getJSON(ctx context.Context, path, route string, params url.Values, out any) error {
	b, err := c.do(ctx, http.MethodGet, path, route, params, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("GET %s: respuesta inválida: %w", path, err)
	}
	return nil
}

func (c *Client) postFiles(ctx context.Context, path string, params url.Values, files []entity.UploadFile, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("multipart: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("multipart: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("multipart: %w", err)
	}

	b, err := c.do(ctx, http.MethodPost, path, path, params, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("POST %s: respuesta inválida: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, route string, params url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, route, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("cfdi-api inalcanzable")
		return nil, &HTTPError{Method: method, Path: path, Cause: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	c.observe(method, route, resp.StatusCode, start)
	if err != nil {
		return nil, &HTTPError{Method: method, Path: path, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(b))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("respuesta de error")
		return nil, &HTTPError{Method: method, Path: path, Status: resp.StatusCode, Body: msg}
	}
	return b, nil
}

func (c *Client) observe(method, route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, route, status, time.Since(start))
	}
}

func periodParams(year, month int) url.Values {
	params := url.Values{}
	setInt(params, "year", year)
	setInt(params, "month", month)
	return params
}

// setInt omite ceros, igual que los parámetros opcionales del backend.
func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setStr(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
