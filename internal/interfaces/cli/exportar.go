package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/infrastructure/export"
)

func newExportarCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "exportar <facturas|retenciones|declaraciones>",
		Short:     "Carga la vista filtrada y la guarda como hoja de cálculo",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"facturas", "retenciones", "declaraciones"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = kind + ".xlsx"
			}

			switch kind {
			case "facturas":
				err = loadFacturas(cmd, a)
			case "retenciones":
				err = loadRetenciones(cmd, a)
			default:
				err = loadDeclaraciones(cmd, a)
			}
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			switch kind {
			case "facturas":
				err = export.Facturas(f, a.FacturasView.Current().Items)
			case "retenciones":
				err = export.Retenciones(f, a.RetencionesView.Current().Items)
			default:
				err = export.Declaraciones(f, a.DeclaracionesView.Current().Rows)
			}
			if err != nil {
				return fmt.Errorf("exportar %s: %w", kind, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Archivo destino (por defecto <vista>.xlsx)")
	addFacturaFlags(cmd)
	cmd.Flags().String("period", "", "Periodo YYYY-MM (retenciones y declaraciones)")
	return cmd
}
