// Package cli expone las operaciones del visor como comandos de terminal.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/pkg/config"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

var version = "0.1.0"

// Option ajusta el comando raíz (tests).
type Option func(*runtime)

// WithConfig usa cfg en lugar de leer el entorno.
func WithConfig(cfg *config.Config) Option {
	return func(r *runtime) { r.cfg = cfg }
}

// WithLogger usa log en lugar de construirlo desde la configuración.
func WithLogger(log *logger.Logger) Option {
	return func(r *runtime) { r.log = log }
}

// WithAppOptions opciones para la raíz de composición.
func WithAppOptions(opts ...app.Option) Option {
	return func(r *runtime) { r.appOpts = append(r.appOpts, opts...) }
}

// runtime construye la App una sola vez por ejecución.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	appOpts []app.Option
	app     *app.App
	unsub   func()
}

func (r *runtime) open(cmd *cobra.Command) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		r.cfg = cfg
	}
	if r.log == nil {
		r.log = logger.New(logger.Config{Env: r.cfg.App.Env, Level: r.cfg.Log.Level, Out: cmd.ErrOrStderr()})
	}
	a, err := app.New(cmd.Context(), r.cfg, r.log, r.appOpts...)
	if err != nil {
		return nil, err
	}
	// En terminal las notificaciones se imprimen al mostrarse.
	errOut := cmd.ErrOrStderr()
	r.unsub = a.Notes.Subscribe(func(ev notify.Event) {
		if ev.Kind == notify.EventShown {
			fmt.Fprintf(errOut, "[%s] %s\n", ev.Notification.Level, ev.Notification.Message)
		}
	})
	r.app = a
	return a, nil
}

// session abre la App y exige una sesión iniciada con `visor login`.
func (r *runtime) session(cmd *cobra.Command) (*app.App, error) {
	a, err := r.open(cmd)
	if err != nil {
		return nil, err
	}
	if a.Session.Current() == nil {
		return nil, fmt.Errorf("%w: ejecuta 'visor login'", domain.ErrNoSession)
	}
	return a, nil
}

func (r *runtime) close() error {
	if r.app == nil {
		return nil
	}
	if r.unsub != nil {
		r.unsub()
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// NewRootCmd arma el árbol de comandos.
func NewRootCmd(opts ...Option) *cobra.Command {
	rt := &runtime{}
	for _, o := range opts {
		o(rt)
	}

	root := &cobra.Command{
		Use:   "visor",
		Short: "Visor de CFDI, retenciones y declaraciones mensuales",
		Long: `visor consume cfdi-api y mantiene en memoria los listados de facturas,
retenciones y declaraciones con sus filtros, importa lotes XML y PDF y
expone las mismas operaciones por HTTP (visor serve).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(rt),
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newFacturasCmd(rt),
		newRetencionesCmd(rt),
		newDeclaracionesCmd(rt),
		newDeclaracionCmd(rt),
		newResumenCmd(rt),
		newImportarCmd(rt),
		newExportarCmd(rt),
	)
	closeAfterRun(root, rt)
	return root
}

// closeAfterRun cierra la App al terminar cada comando, también cuando falla
// (PersistentPostRun no corre tras un error).
func closeAfterRun(c *cobra.Command, rt *runtime) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				err = errors.Join(err, rt.close())
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		closeAfterRun(sub, rt)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
