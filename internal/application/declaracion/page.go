// Package declaracion carga la vista mensual de declaración calculada por el backend.
// Los checks y totales solo se presentan; no se recalculan aquí.
package declaracion

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

const (
	MsgSelectPeriod  = "Selecciona ano y mes para cargar la declaracion."
	MsgInvalidSource = "Fuente de ingresos no valida."
	MsgNotFound      = "No hay datos para ese periodo."
	MsgLoadFailed    = "No se pudo cargar el modo declaracion."
)

// Page estado de la vista mensual.
type Page struct {
	api      repository.DeclaracionMensualAPI
	busy     *busy.Indicator
	reporter *notify.Reporter
	baseURL  string
	log      *logger.Logger

	mu      sync.Mutex
	seq     uint64
	current *entity.DeclaracionMensual
}

// New crea la vista. baseURL es la raíz de cfdi-api para los enlaces de descarga.
func New(api repository.DeclaracionMensualAPI, b *busy.Indicator, r *notify.Reporter, baseURL string, log *logger.Logger) *Page {
	if log == nil {
		log = logger.Nop()
	}
	return &Page{api: api, busy: b, reporter: r, baseURL: baseURL, log: log.WithComponent("declaracion")}
}

// Load pide la declaración del periodo. Año y mes deben ser positivos; incomeSource
// vacío equivale a auto. En error la vista queda vacía.
func (p *Page) Load(ctx context.Context, year, month int, incomeSource string) (*entity.DeclaracionMensual, error) {
	if year <= 0 || month <= 0 {
		p.reporter.Queue().Warning(MsgSelectPeriod)
		return nil, fmt.Errorf("declaración: periodo incompleto: %w", domain.ErrInvalidInput)
	}
	if incomeSource == "" {
		incomeSource = entity.IncomeSourceAuto
	}
	if !entity.ValidIncomeSource(incomeSource) {
		p.reporter.Queue().Warning(MsgInvalidSource)
		return nil, fmt.Errorf("declaración: income_source %q: %w", incomeSource, domain.ErrInvalidInput)
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	var data *entity.DeclaracionMensual
	err := p.busy.Track(func() error {
		var e error
		data, e = p.api.GetDeclaracionMensual(ctx, year, month, incomeSource)
		return e
	})

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		return nil, domain.ErrStale
	}
	if err != nil {
		p.current = nil
		p.mu.Unlock()
		p.log.Warn().Err(err).Int("year", year).Int("month", month).Msg("declaración no disponible")
		p.reporter.Report(err, notify.Messages{NotFound: MsgNotFound, Fallback: MsgLoadFailed})
		return nil, err
	}
	p.current = data
	p.mu.Unlock()
	return data, nil
}

// Current última declaración cargada (nil si no hay).
func (p *Page) Current() *entity.DeclaracionMensual {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Clear limpia la vista e invalida cargas en curso.
func (p *Page) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.current = nil
}

// CSVURL enlace al reporte SAT en CSV; ok false si el periodo está incompleto.
func (p *Page) CSVURL(year, month int, incomeSource string) (string, bool) {
	return p.reportURL("sat_report.csv", year, month, incomeSource)
}

// HojaURL enlace a la hoja de captura en texto.
func (p *Page) HojaURL(year, month int, incomeSource string) (string, bool) {
	return p.reportURL("sat_hoja.txt", year, month, incomeSource)
}

func (p *Page) reportURL(name string, year, month int, incomeSource string) (string, bool) {
	if year <= 0 || month <= 0 {
		return "", false
	}
	if incomeSource == "" {
		incomeSource = entity.IncomeSourceAuto
	}
	return fmt.Sprintf("%s/%s?year=%d&month=%d&income_source=%s",
		p.baseURL, name, year, month, url.QueryEscape(incomeSource)), true
}

// PDFURL enlace al acuse PDF del periodo.
func (p *Page) PDFURL(pdf entity.DeclaracionPDF) string {
	return fmt.Sprintf("%s/declaraciones/%d/archivo/%s", p.baseURL, pdf.ID, url.PathEscape(pdf.Filename))
}
