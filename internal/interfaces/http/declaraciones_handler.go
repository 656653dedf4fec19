package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/declaraciones"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
)

// DeclaracionesHandler acuses importados con su resumen de conciliación.
type DeclaracionesHandler struct {
	app *app.App
}

// NewDeclaracionesHandler construye el handler.
func NewDeclaracionesHandler(a *app.App) *DeclaracionesHandler {
	return &DeclaracionesHandler{app: a}
}

// GET /api/declaraciones
func (h *DeclaracionesHandler) List(c *fiber.Ctx) error {
	res := h.app.DeclaracionesView.Current()
	items := make([]dto.DeclaracionItem, 0, len(res.Rows))
	for _, r := range res.Rows {
		it := dto.DeclaracionItem{Declaracion: r.Item, Resumen: r.Aux}
		if r.Item.Filename != nil && *r.Item.Filename != "" {
			it.PDFURL = h.app.API.URL(declaraciones.ArchivoPath(r.Item.ID, *r.Item.Filename))
		}
		items = append(items, it)
	}
	return c.JSON(dto.ListResponse[dto.DeclaracionItem, declaraciones.Filters]{
		Items:   items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: h.app.Declaraciones.Store().State().Filters,
		Version: res.Version,
	})
}

// Refresh relee el listado y completa los resúmenes faltantes antes de responder.
// POST /api/declaraciones/refresh
func (h *DeclaracionesHandler) Refresh(c *fiber.Ctx) error {
	if err := h.app.LoadDeclaraciones(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.List(c)
}

// PATCH /api/declaraciones/filters
func (h *DeclaracionesHandler) SetFilters(c *fiber.Ctx) error {
	var p declaraciones.FiltersPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	period, err := periodPatch(p.Period)
	if err != nil {
		return writeError(c, err)
	}
	p.Period = period
	h.app.Declaraciones.SetFilters(p)
	return h.List(c)
}

// GET /api/declaraciones/:id
func (h *DeclaracionesHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	d, sum, err := h.app.SelectDeclaracion(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.DeclaracionDetalleResponse{
		DeclaracionDetalle: d,
		Resumen:            sum,
		ResumenURL:         h.app.API.URL(declaraciones.ResumenPath(id)),
	}
	if d.Filename != nil && *d.Filename != "" {
		out.PDFURL = h.app.API.URL(declaraciones.ArchivoPath(id, *d.Filename))
	}
	return c.JSON(out)
}

// Summary resumen de conciliación (cacheado en el store).
// GET /api/declaraciones/:id/resumen
func (h *DeclaracionesHandler) Summary(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.app.Declaraciones.FetchSummary(c.UserContext(), id)
	if err != nil {
		h.app.Reporter.Report(err, notifyDetail)
		return writeError(c, err)
	}
	return c.JSON(s)
}
