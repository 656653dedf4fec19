package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
)

// StateHandler indicador de carga y cola de notificaciones.
type StateHandler struct {
	app *app.App
}

// NewStateHandler construye el handler.
func NewStateHandler(a *app.App) *StateHandler {
	return &StateHandler{app: a}
}

// GET /api/estado
func (h *StateHandler) Estado(c *fiber.Ctx) error {
	n := h.app.Busy.Count()
	return c.JSON(dto.EstadoResponse{
		Busy:          n > 0,
		Count:         n,
		Notifications: h.app.Notes.Active(),
	})
}

// Dismiss cierra una notificación antes de su auto-cierre.
// DELETE /api/notificaciones/:id
func (h *StateHandler) Dismiss(c *fiber.Ctx) error {
	if !h.app.Notes.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
