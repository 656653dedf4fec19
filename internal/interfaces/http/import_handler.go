package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// maxUploadFile tamaño máximo por archivo.
const maxUploadFile = 20 << 20

// ImportHandler flujos de importación XML y PDF.
type ImportHandler struct {
	app *app.App
}

// NewImportHandler construye el handler.
func NewImportHandler(a *app.App) *ImportHandler {
	return &ImportHandler{app: a}
}

// Status estado de ambos flujos.
// GET /api/importar
func (h *ImportHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.status())
}

func (h *ImportHandler) status() dto.ImportStatusResponse {
	return dto.ImportStatusResponse{XML: h.app.ImportXML.Snapshot(), PDF: h.app.ImportPDF.Snapshot()}
}

// XML selecciona y sube el lote del campo "files".
// POST /api/importar/xml
func (h *ImportHandler) XML(c *fiber.Ctx) error {
	files, err := readFiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	w := h.app.ImportXML
	w.Select(files)
	res, err := w.Submit(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// PDF sube acuses; year y month opcionales en el formulario o la query.
// POST /api/importar/pdf
func (h *ImportHandler) PDF(c *fiber.Ctx) error {
	files, err := readFiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	year, month, err := formPeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	w := h.app.ImportPDF
	w.SetPeriod(year, month)
	w.Select(files)
	res, err := w.Submit(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Cancel descarta selección y resultado del flujo :kind.
// DELETE /api/importar/:kind
func (h *ImportHandler) Cancel(c *fiber.Ctx) error {
	switch c.Params("kind") {
	case "xml":
		h.app.ImportXML.Cancel()
	case "pdf":
		h.app.ImportPDF.Cancel()
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de importación desconocido"})
	}
	return c.JSON(h.status())
}

// readFiles lee el campo multipart "files"; un formulario sin archivos no es error.
func readFiles(c *fiber.Ctx) ([]entity.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("se esperaba multipart/form-data")
	}
	headers := form.File["files"]
	out := make([]entity.UploadFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxUploadFile {
			return nil, fmt.Errorf("%s excede el tamaño máximo", fh.Filename)
		}
		data, err := readFile(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		out = append(out, entity.UploadFile{Name: fh.Filename, Data: data})
	}
	return out, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func formPeriod(c *fiber.Ctx) (year, month int, err error) {
	value := func(key string) string {
		if v := c.FormValue(key); v != "" {
			return v
		}
		return c.Query(key)
	}
	if year, err = optionalInt(value("year")); err != nil {
		return 0, 0, err
	}
	if month, err = optionalInt(value("month")); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
