// Package app es la raíz de composición: construye una sola vez los stores, las
// primitivas de UX y los repositorios y los conecta entre sí.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cfdi-visor/internal/application/auth"
	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/declaracion"
	"github.com/jhoicas/cfdi-visor/internal/application/declaraciones"
	"github.com/jhoicas/cfdi-visor/internal/application/facturas"
	"github.com/jhoicas/cfdi-visor/internal/application/importacion"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/application/resumen"
	"github.com/jhoicas/cfdi-visor/internal/application/retenciones"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/api"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/cfdixml"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/metrics"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/postgres"
	"github.com/jhoicas/cfdi-visor/internal/infrastructure/sqlite"
	"github.com/jhoicas/cfdi-visor/internal/state/latest"
	"github.com/jhoicas/cfdi-visor/pkg/config"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Mensajes de respaldo para fallos sin clasificar.
const (
	MsgFacturasFailed      = "No se pudieron cargar las facturas."
	MsgRetencionesFailed   = "No se pudieron cargar las retenciones."
	MsgDeclaracionesFailed = "No se pudieron cargar las declaraciones."
	MsgDetailNotFound      = "El documento ya no existe."
	MsgDetailFailed        = "No se pudo cargar el detalle."
	MsgXMLFailed           = "No se pudo leer el XML."
)

// App contenedor de dependencias del visor.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	Metrics  *metrics.Metrics
	API      *api.Client
	Busy     *busy.Indicator
	Notes    *notify.Queue
	Reporter *notify.Reporter
	Session  *auth.SessionUseCase

	Facturas      *facturas.Repository
	FacturasView  *facturas.View
	FacturaDetail *latest.Tracker[*entity.FacturaDetalle]

	Retenciones     *retenciones.Repository
	RetencionesView *retenciones.View
	RetencionDetail *latest.Tracker[*entity.RetencionDetalle]

	Declaraciones     *declaraciones.Repository
	DeclaracionesView *declaraciones.View
	DeclaracionDetail *latest.Tracker[*entity.DeclaracionDetalle]

	ImportXML *importacion.XMLWorkflow
	ImportPDF *importacion.PDFWorkflow

	Declaracion *declaracion.Page
	Resumen     *resumen.Page

	db     *sql.DB
	pool   *pgxpool.Pool
	unsubs []func()
}

// Option ajusta la construcción (tests).
type Option func(*options)

type options struct {
	storage repository.KeyValueStorage
	apiOpts []api.Option
}

// WithStorage usa storage para la sesión en lugar de abrir SQLite.
func WithStorage(s repository.KeyValueStorage) Option {
	return func(o *options) { o.storage = s }
}

// WithAPIOptions opciones extra para el cliente de cfdi-api.
func WithAPIOptions(opts ...api.Option) Option {
	return func(o *options) { o.apiOpts = append(o.apiOpts, opts...) }
}

// New construye y conecta todos los componentes.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	a := &App{Config: cfg, Log: log, Metrics: metrics.New()}

	storage := o.storage
	switch {
	case storage != nil:
	case cfg.Session.DatabaseURL != "":
		pool, err := postgres.NewPool(ctx, cfg.Session.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("app: sesión: %w", err)
		}
		a.pool = pool
		storage = postgres.NewKVStore(pool)
	default:
		db, err := sqlite.Open(ctx, cfg.Session.DBPath, log)
		if err != nil {
			return nil, fmt.Errorf("app: sesión: %w", err)
		}
		a.db = db
		storage = sqlite.NewKVStore(db)
	}

	apiOpts := append([]api.Option{api.WithObserver(a.Metrics), api.WithLogger(log)}, o.apiOpts...)
	a.API = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, apiOpts...)

	a.Busy = busy.New()
	a.Notes = notify.New(cfg.UI.NotifyTimeout, notify.WithLogger(log))
	a.Reporter = notify.NewReporter(a.Notes)
	a.unsubs = append(a.unsubs,
		a.Busy.Subscribe(a.Metrics.SetBusy),
		a.Notes.Subscribe(func(ev notify.Event) {
			if ev.Kind == notify.EventShown {
				a.Metrics.IncrementNotification(string(ev.Notification.Level))
			}
		}),
	)

	a.Session = auth.NewSessionUseCase(storage, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	parser := cfdixml.New()

	a.Facturas = facturas.NewRepository(a.API, facturas.NewStore(log), parser, log)
	a.FacturasView = facturas.NewView(a.Facturas.Store())
	a.FacturaDetail = latest.New[*entity.FacturaDetalle](a.Facturas.FetchDetail)

	a.Retenciones = retenciones.NewRepository(a.API, retenciones.NewStore(log), parser, log)
	a.RetencionesView = retenciones.NewView(a.Retenciones.Store())
	a.RetencionDetail = latest.New[*entity.RetencionDetalle](a.Retenciones.FetchDetail)

	a.Declaraciones = declaraciones.NewRepository(a.API, declaraciones.NewStore(log), cfg.UI.AuxConcurrency, log)
	a.DeclaracionesView = declaraciones.NewView(a.Declaraciones.Store())
	a.DeclaracionDetail = latest.New[*entity.DeclaracionDetalle](a.Declaraciones.FetchDetail)

	imports := &instrumentedImport{ImportAPI: a.API, metrics: a.Metrics}
	a.ImportXML = importacion.NewXML(imports, a.Busy, a.Notes, importacion.Options{
		OnSuccess: func(ctx context.Context) error {
			// Un lote XML puede traer CFDI y retenciones.
			return errors.Join(
				a.LoadFacturas(ctx, repository.FacturaQuery{}),
				a.LoadRetenciones(ctx),
			)
		},
	}, log)
	a.ImportPDF = importacion.NewPDF(imports, a.Busy, a.Notes, importacion.Options{
		OnSuccess: a.LoadDeclaraciones,
	}, log)

	a.Declaracion = declaracion.New(a.API, a.Busy, a.Reporter, a.API.BaseURL(), log)
	a.Resumen = resumen.New(a.API, a.Busy, a.Reporter, a.API.BaseURL(), log)

	log.Info().Str("api", cfg.API.BaseURL).Msg("visor listo")
	return a, nil
}

// Close libera vistas, suscripciones y la base de sesión.
func (a *App) Close() error {
	for _, u := range a.unsubs {
		u()
	}
	a.FacturasView.Close()
	a.RetencionesView.Close()
	a.DeclaracionesView.Close()
	a.FacturaDetail.Clear()
	a.RetencionDetail.Clear()
	a.DeclaracionDetail.Clear()
	if a.pool != nil {
		a.pool.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
