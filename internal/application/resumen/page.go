// Package resumen carga el resumen agregado de un periodo y su desglose.
package resumen

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

const (
	MsgSelectPeriod = "Selecciona ano y mes para cargar el resumen."
	MsgNotFound     = "No hay datos para resumir en ese periodo."
	MsgLoadFailed   = "No se pudo cargar el resumen."

	AlertZeroIncome     = "Ingresos totales en cero. Verifica importaciones."
	AlertNegativeNetVAT = "IVA neto sugerido negativo. Revisa IVA acreditable y retenido."
	AlertMissingPagos   = "Hay complementos P sin pagos detectados."
)

// Page estado de la vista de resumen.
type Page struct {
	api      repository.ResumenAPI
	busy     *busy.Indicator
	reporter *notify.Reporter
	baseURL  string
	log      *logger.Logger

	mu      sync.Mutex
	seq     uint64
	summary *entity.ResumenPeriodo
	details *entity.ResumenDetalle
}

// New crea la vista.
func New(api repository.ResumenAPI, b *busy.Indicator, r *notify.Reporter, baseURL string, log *logger.Logger) *Page {
	if log == nil {
		log = logger.Nop()
	}
	return &Page{api: api, busy: b, reporter: r, baseURL: baseURL, log: log.WithComponent("resumen")}
}

// Load pide el resumen y, si llega, su desglose. Un fallo del desglose lo deja vacío sin
// notificar; un fallo del resumen limpia ambos y notifica.
func (p *Page) Load(ctx context.Context, year, month int) (*entity.ResumenPeriodo, error) {
	if year <= 0 || month <= 0 {
		p.reporter.Queue().Warning(MsgSelectPeriod)
		return nil, fmt.Errorf("resumen: periodo incompleto: %w", domain.ErrInvalidInput)
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	var data *entity.ResumenPeriodo
	err := p.busy.Track(func() error {
		var e error
		data, e = p.api.GetResumen(ctx, year, month)
		return e
	})

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		return nil, domain.ErrStale
	}
	if err != nil {
		p.summary, p.details = nil, nil
		p.mu.Unlock()
		p.log.Warn().Err(err).Int("year", year).Int("month", month).Msg("resumen no disponible")
		p.reporter.Report(err, notify.Messages{NotFound: MsgNotFound, Fallback: MsgLoadFailed})
		return nil, err
	}
	p.summary = data
	p.mu.Unlock()

	details, derr := p.api.GetResumenDetalle(ctx, data.Year, data.Month)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return data, nil
	}
	if derr != nil {
		p.log.Debug().Err(derr).Msg("desglose no disponible")
		p.details = nil
	} else {
		p.details = details
	}
	return data, nil
}

// Summary último resumen cargado.
func (p *Page) Summary() *entity.ResumenPeriodo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary
}

// Details desglose del último resumen (nil si no hay).
func (p *Page) Details() *entity.ResumenDetalle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details
}

// Reset limpia la vista.
func (p *Page) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.summary, p.details = nil, nil
}

// Alerts avisos de presentación derivados del resumen cargado.
func (p *Page) Alerts() []string {
	return Alerts(p.Summary())
}

// Alerts avisos para s; vacío si s es nil.
func Alerts(s *entity.ResumenPeriodo) []string {
	out := []string{}
	if s == nil {
		return out
	}
	if !s.IngresosTotal.IsPositive() {
		out = append(out, AlertZeroIncome)
	}
	if s.IVANetoSugerido.IsNegative() {
		out = append(out, AlertNegativeNetVAT)
	}
	if s.PagosCount == 0 && s.PCount > 0 {
		out = append(out, AlertMissingPagos)
	}
	return out
}

// CSVURL enlace al reporte SAT del resumen cargado.
func (p *Page) CSVURL() (string, bool) {
	s := p.Summary()
	if s == nil {
		return "", false
	}
	return fmt.Sprintf("%s/sat_report.csv?year=%d&month=%d", p.baseURL, s.Year, s.Month), true
}
