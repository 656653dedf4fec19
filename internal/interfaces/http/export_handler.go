package http

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler descarga la vista filtrada actual como hoja de cálculo.
type ExportHandler struct {
	app *app.App
}

// NewExportHandler construye el handler.
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{app: a}
}

// GET /api/exportar/:file (facturas.xlsx, retenciones.xlsx, declaraciones.xlsx)
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	kind := strings.TrimSuffix(c.Params("file"), ".xlsx")
	var buf bytes.Buffer
	var err error
	switch kind {
	case "facturas":
		err = export.Facturas(&buf, h.app.FacturasView.Current().Items)
	case "retenciones":
		err = export.Retenciones(&buf, h.app.RetencionesView.Current().Items)
	case "declaraciones":
		err = export.Declaraciones(&buf, h.app.DeclaracionesView.Current().Rows)
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vista desconocida"})
	}
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, kind))
	return c.Send(buf.Bytes())
}
