package http

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

func TestWriteError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"no encontrado", fmt.Errorf("detalle: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{"backend caído", domain.ErrTransport, fiber.StatusBadGateway},
		{"importación en curso", fmt.Errorf("importación xml: %w", domain.ErrInProgress), fiber.StatusConflict},
		{"obsoleta", domain.ErrStale, fiber.StatusConflict},
		{"cancelada", context.Canceled, fiber.StatusConflict},
		{"sin sesión", domain.ErrNoSession, fiber.StatusUnauthorized},
		{"otro", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
