package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// NewServer crea la app Fiber con todas las rutas del visor.
func NewServer(a *app.App) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:      a.Config.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: a.Config.API.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 << 20,
	})
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": a.Config.App.Name})
	})
	srv.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{})))

	Router(srv, a)
	return srv
}

// Router registra las rutas de la API.
func Router(srv *fiber.App, a *app.App) {
	api := srv.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(a.Session)
	api.Get("/session", sessionHandler.Current)
	api.Post("/session/login", sessionHandler.Login)
	api.Post("/session/logout", sessionHandler.Logout)

	// Rutas protegidas (requieren Bearer Token y sesión abierta)
	protected := api.Group("/", AuthMiddleware(a.Config.JWT.Secret), RequireSession(a.Session.Current))

	facturasHandler := NewFacturasHandler(a)
	fac := protected.Group("/facturas")
	fac.Get("/", facturasHandler.List)
	fac.Post("/refresh", facturasHandler.Refresh)
	fac.Patch("/filters", facturasHandler.SetFilters)
	fac.Get("/:id", facturasHandler.GetByID)
	fac.Get("/:id/xml", facturasHandler.XML)

	retencionesHandler := NewRetencionesHandler(a)
	ret := protected.Group("/retenciones")
	ret.Get("/", retencionesHandler.List)
	ret.Post("/refresh", retencionesHandler.Refresh)
	ret.Patch("/filters", retencionesHandler.SetFilters)
	ret.Get("/:id", retencionesHandler.GetByID)
	ret.Get("/:id/xml", retencionesHandler.XML)

	declaracionesHandler := NewDeclaracionesHandler(a)
	dec := protected.Group("/declaraciones")
	dec.Get("/", declaracionesHandler.List)
	dec.Post("/refresh", declaracionesHandler.Refresh)
	dec.Patch("/filters", declaracionesHandler.SetFilters)
	dec.Get("/:id", declaracionesHandler.GetByID)
	dec.Get("/:id/resumen", declaracionesHandler.Summary)

	pagesHandler := NewPagesHandler(a)
	protected.Get("/declaracion", pagesHandler.Declaracion)
	protected.Get("/declaracion/fuentes", pagesHandler.IncomeSources)
	protected.Get("/resumen", pagesHandler.Resumen)

	// Importación (solo admin)
	importHandler := NewImportHandler(a)
	imp := protected.Group("/importar", RequireRole(entity.RoleAdmin))
	imp.Get("/", importHandler.Status)
	imp.Post("/xml", importHandler.XML)
	imp.Post("/pdf", importHandler.PDF)
	imp.Delete("/:kind", importHandler.Cancel)

	stateHandler := NewStateHandler(a)
	protected.Get("/estado", stateHandler.Estado)
	protected.Delete("/notificaciones/:id", stateHandler.Dismiss)

	exportHandler := NewExportHandler(a)
	protected.Get("/exportar/:file", exportHandler.Export)
}
