package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/application/dto"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia la sesión simulada y muestra el token para la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")
			u, err := a.Session.LoginMock(name, role)
			if err != nil {
				return err
			}
			tok, err := a.Session.IssueToken()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.SessionResponse{User: u, Token: tok})
		},
	}
	cmd.Flags().String("name", "", "Nombre a mostrar (por defecto Demo)")
	cmd.Flags().String("role", "", "Rol (por defecto admin)")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión guardada",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd)
			if err != nil {
				return err
			}
			if err := a.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sesión cerrada")
			return nil
		},
	}
}
