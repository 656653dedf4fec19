package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/application/resumen"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

var (
	notifyDetail = notify.Messages{NotFound: app.MsgDetailNotFound, Fallback: app.MsgDetailFailed}
	notifyXML    = notify.Messages{NotFound: app.MsgDetailNotFound, Fallback: app.MsgXMLFailed}
)

// PagesHandler vistas por periodo: declaración mensual y resumen.
type PagesHandler struct {
	app *app.App
}

// NewPagesHandler construye el handler.
func NewPagesHandler(a *app.App) *PagesHandler {
	return &PagesHandler{app: a}
}

// Declaracion vista mensual; income_source vacío equivale a auto.
// GET /api/declaracion?year=&month=&income_source=
func (h *PagesHandler) Declaracion(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return writeError(c, err)
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return writeError(c, err)
	}
	source := c.Query("income_source", entity.IncomeSourceAuto)

	page := h.app.Declaracion
	d, err := page.Load(c.UserContext(), year, month, source)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.DeclaracionMensualResponse{DeclaracionMensual: d, Periodo: d.PeriodLabel()}
	out.CSVURL, _ = page.CSVURL(year, month, source)
	out.HojaURL, _ = page.HojaURL(year, month, source)
	if d.DeclaracionPDF != nil {
		out.PDFURL = page.PDFURL(*d.DeclaracionPDF)
		out.PDFLabel = d.DeclaracionPDF.Label()
	}
	return c.JSON(out)
}

// IncomeSources opciones válidas de income_source.
// GET /api/declaracion/fuentes
func (h *PagesHandler) IncomeSources(c *fiber.Ctx) error {
	return c.JSON(entity.IncomeSources)
}

// Resumen resumen del periodo con desglose y avisos.
// GET /api/resumen?year=&month=
func (h *PagesHandler) Resumen(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return writeError(c, err)
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return writeError(c, err)
	}
	page := h.app.Resumen
	s, err := page.Load(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ResumenResponse{Summary: s, Details: page.Details(), Alerts: resumen.Alerts(s)}
	out.CSVURL, _ = page.CSVURL()
	return c.JSON(out)
}
