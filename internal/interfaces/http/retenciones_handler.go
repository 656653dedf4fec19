package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/application/retenciones"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// RetencionesHandler listado y detalle de retenciones.
type RetencionesHandler struct {
	app *app.App
}

// NewRetencionesHandler construye el handler.
func NewRetencionesHandler(a *app.App) *RetencionesHandler {
	return &RetencionesHandler{app: a}
}

// GET /api/retenciones
func (h *RetencionesHandler) List(c *fiber.Ctx) error {
	res := h.app.RetencionesView.Current()
	return c.JSON(dto.ListResponse[entity.Retencion, retenciones.Filters]{
		Items:   res.Items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: h.app.Retenciones.Store().State().Filters,
		Version: res.Version,
	})
}

// POST /api/retenciones/refresh
func (h *RetencionesHandler) Refresh(c *fiber.Ctx) error {
	if err := h.app.LoadRetenciones(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.List(c)
}

// PATCH /api/retenciones/filters
func (h *RetencionesHandler) SetFilters(c *fiber.Ctx) error {
	var p retenciones.FiltersPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	period, err := periodPatch(p.Period)
	if err != nil {
		return writeError(c, err)
	}
	p.Period = period
	h.app.Retenciones.SetFilters(p)
	return h.List(c)
}

// GET /api/retenciones/:id
func (h *RetencionesHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	d, err := h.app.SelectRetencion(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

// XML resumen del XML guardado con la retención.
// GET /api/retenciones/:id/xml
func (h *RetencionesHandler) XML(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.app.RetencionXML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.XMLResponse{Resumen: r})
}
