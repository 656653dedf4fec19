package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/state/store"
)

// writeError traduce un error de dominio a su respuesta HTTP. La notificación
// correspondiente ya quedó en la cola; aquí solo se responde.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAUTHORIZED", Message: "cfdi-api rechazó la petición"})
	case errors.Is(err, domain.ErrTransport):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNREACHABLE", Message: "sin conexión con cfdi-api"})
	case errors.Is(err, domain.ErrServer):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: "error de cfdi-api"})
	case errors.Is(err, domain.ErrInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_PROGRESS", Message: "hay una importación en curso"})
	case errors.Is(err, domain.ErrStale), errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUPERSEDED", Message: "una petición más reciente reemplazó a esta"})
	case errors.Is(err, domain.ErrNoSession):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sin sesión"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// periodPatch normaliza un filtro de periodo; null o vacío pasan sin cambios y limpian el filtro.
func periodPatch(f store.Field[string]) (store.Field[string], error) {
	if !f.Set || f.Value == nil || *f.Value == "" {
		return f, nil
	}
	key, err := entity.NormalizePeriod(*f.Value)
	if err != nil {
		return f, err
	}
	return store.Set(key), nil
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// queryInt lee un entero opcional; ausente o vacío devuelve 0.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	return optionalInt(c.Query(key))
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}
