package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/application/facturas"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
)

// FacturasHandler listado, filtros y detalle de CFDI.
type FacturasHandler struct {
	app *app.App
}

// NewFacturasHandler construye el handler.
func NewFacturasHandler(a *app.App) *FacturasHandler {
	return &FacturasHandler{app: a}
}

// List vista filtrada actual.
// GET /api/facturas
func (h *FacturasHandler) List(c *fiber.Ctx) error {
	res := h.app.FacturasView.Current()
	return c.JSON(dto.ListResponse[entity.Factura, facturas.Filters]{
		Items:   res.Items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: h.app.Facturas.Store().State().Filters,
		Version: res.Version,
	})
}

// Refresh relee el listado; year, month, tipo y naturaleza se pasan al backend.
// POST /api/facturas/refresh
func (h *FacturasHandler) Refresh(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return writeError(c, err)
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return writeError(c, err)
	}
	q := repository.FacturaQuery{Year: year, Month: month, Tipo: c.Query("tipo"), Naturaleza: c.Query("naturaleza")}
	if err := h.app.LoadFacturas(c.UserContext(), q); err != nil {
		return writeError(c, err)
	}
	return h.List(c)
}

// SetFilters aplica un parche parcial; null limpia la clave.
// PATCH /api/facturas/filters
func (h *FacturasHandler) SetFilters(c *fiber.Ctx) error {
	var p facturas.FiltersPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.app.Facturas.SetFilters(p)
	return h.List(c)
}

// GetByID factura con conceptos y pagos.
// GET /api/facturas/:id
func (h *FacturasHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	d, err := h.app.SelectFactura(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

// XML resumen del XML original; ?raw=1 incluye el texto.
// GET /api/facturas/:id/xml
func (h *FacturasHandler) XML(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if c.QueryBool("raw") {
		raw, err := h.app.Facturas.FetchXML(c.UserContext(), id)
		if err != nil {
			h.app.Reporter.Report(err, notifyXML)
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
		return c.SendString(raw)
	}
	r, err := h.app.FacturaXML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.XMLResponse{Resumen: r, Naturaleza: entity.Naturaleza(r.TipoComprobante)})
}
