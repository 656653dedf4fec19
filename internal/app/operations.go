package app

import (
	"context"
	"errors"

	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/metrics"
)

// run ejecuta una lectura de borde: un Show/Hide del indicador y, si falla,
// exactamente una notificación.
func (a *App) run(msgs notify.Messages, fn func() error) error {
	err := a.Busy.Track(fn)
	if errors.Is(err, domain.ErrStale) {
		a.Metrics.IncrementStale()
	}
	a.Reporter.Report(err, msgs)
	return err
}

// LoadFacturas lee el listado de facturas con los parámetros del backend.
func (a *App) LoadFacturas(ctx context.Context, q repository.FacturaQuery) error {
	return a.run(notify.Messages{Fallback: MsgFacturasFailed}, func() error {
		return a.Facturas.Fetch(ctx, q)
	})
}

// LoadRetenciones lee el listado de retenciones.
func (a *App) LoadRetenciones(ctx context.Context) error {
	return a.run(notify.Messages{Fallback: MsgRetencionesFailed}, func() error {
		return a.Retenciones.Fetch(ctx)
	})
}

// LoadDeclaraciones lee el listado y completa los resúmenes faltantes.
func (a *App) LoadDeclaraciones(ctx context.Context) error {
	return a.run(notify.Messages{Fallback: MsgDeclaracionesFailed}, func() error {
		return a.Declaraciones.Fetch(ctx)
	})
}

// SelectFactura carga el detalle de id; una selección posterior la reemplaza.
func (a *App) SelectFactura(ctx context.Context, id int64) (*entity.FacturaDetalle, error) {
	var out *entity.FacturaDetalle
	err := a.run(detailMessages, func() (err error) {
		out, err = a.FacturaDetail.Load(ctx, id)
		return err
	})
	return out, err
}

// SelectRetencion carga el detalle de una retención.
func (a *App) SelectRetencion(ctx context.Context, id int64) (*entity.RetencionDetalle, error) {
	var out *entity.RetencionDetalle
	err := a.run(detailMessages, func() (err error) {
		out, err = a.RetencionDetail.Load(ctx, id)
		return err
	})
	return out, err
}

// SelectDeclaracion carga el detalle de una declaración y su resumen.
func (a *App) SelectDeclaracion(ctx context.Context, id int64) (*entity.DeclaracionDetalle, *entity.DeclaracionResumen, error) {
	var (
		out *entity.DeclaracionDetalle
		sum *entity.DeclaracionResumen
	)
	err := a.run(detailMessages, func() (err error) {
		if out, err = a.DeclaracionDetail.Load(ctx, id); err != nil {
			return err
		}
		// El resumen es opcional: sin él se muestra solo el detalle.
		var serr error
		if sum, serr = a.Declaraciones.FetchSummary(ctx, id); serr != nil {
			a.Log.Debug().Err(serr).Int64("id", id).Msg("resumen no disponible")
		}
		return nil
	})
	return out, sum, err
}

// FacturaXML texto XML original y su resumen.
func (a *App) FacturaXML(ctx context.Context, id int64) (*entity.XMLResumen, error) {
	var out *entity.XMLResumen
	err := a.run(notify.Messages{NotFound: MsgDetailNotFound, Fallback: MsgXMLFailed}, func() (err error) {
		out, err = a.Facturas.FetchXMLResumen(ctx, id)
		return err
	})
	return out, err
}

// RetencionXML resumen del XML guardado con la retención.
func (a *App) RetencionXML(ctx context.Context, id int64) (*entity.XMLResumen, error) {
	var out *entity.XMLResumen
	err := a.run(notify.Messages{NotFound: MsgDetailNotFound, Fallback: MsgXMLFailed}, func() (err error) {
		out, err = a.Retenciones.FetchXMLResumen(ctx, id)
		return err
	})
	return out, err
}

var detailMessages = notify.Messages{NotFound: MsgDetailNotFound, Fallback: MsgDetailFailed}

// instrumentedImport cuenta cada lote por tipo y desenlace.
type instrumentedImport struct {
	repository.ImportAPI
	metrics *metrics.Metrics
}

func (i *instrumentedImport) ImportXML(ctx context.Context, files []entity.UploadFile) (*entity.ImportXMLResult, error) {
	res, err := i.ImportAPI.ImportXML(ctx, files)
	i.metrics.IncrementImport("xml", outcome(err))
	return res, err
}

func (i *instrumentedImport) ImportPDF(ctx context.Context, files []entity.UploadFile, year, month int) (*entity.ImportPDFResult, error) {
	res, err := i.ImportAPI.ImportPDF(ctx, files, year, month)
	i.metrics.IncrementImport("pdf", outcome(err))
	return res, err
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
