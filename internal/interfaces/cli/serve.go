package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	apphttp "github.com/jhoicas/cfdi-visor/internal/interfaces/http"
)

func newServeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expone el visor por HTTP hasta recibir SIGINT o SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd)
			if err != nil {
				return err
			}
			addr := a.Config.HTTP.Addr()
			if v, _ := cmd.Flags().GetString("addr"); v != "" {
				addr = v
			}

			srv := apphttp.NewServer(a)
			errc := make(chan error, 1)
			go func() {
				errc <- srv.Listen(addr)
			}()
			a.Log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")

			select {
			case err := <-errc:
				a.Log.Error().Err(err).Msg("servidor HTTP finalizado")
				return err
			case <-cmd.Context().Done():
			}

			a.Log.Info().Msg("señal de apagado recibida, cerrando servidor...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
				a.Log.Error().Err(err).Msg("apagado del servidor")
			}
			a.Log.Info().Msg("aplicación detenida")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "host:port de escucha (por defecto HTTP_HOST:HTTP_PORT)")
	return cmd
}
