package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/application/auth"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
)

// SessionHandler sesión simulada del visor.
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Login inicia la sesión simulada y emite el token; el cuerpo es opcional.
// POST /api/session/login
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	u, err := h.uc.LoginMock(in.Name, in.Role)
	if err != nil {
		return writeError(c, err)
	}
	tok, err := h.uc.IssueToken()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionResponse{User: u, Token: tok})
}

// Logout cierra la sesión; los tokens emitidos dejan de servir.
// POST /api/session/logout
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Current usuario de la sesión restaurada o iniciada.
// GET /api/session
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	u := h.uc.Current()
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sin sesión"})
	}
	return c.JSON(dto.SessionResponse{User: u})
}
