package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

var errAdminOnly = errors.New("la importación requiere rol admin")

func newImportarCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importar",
		Short: "Sube lotes de XML (CFDI y retenciones) o PDF (acuses de declaración)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "xml <archivo>...",
		Short: "Importa XML de CFDI o retenciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if a.Session.Current().Role != entity.RoleAdmin {
				return errAdminOnly
			}
			files, err := readUploads(args)
			if err != nil {
				return err
			}
			w := a.ImportXML
			w.Select(files)
			res, err := w.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	})

	pdf := &cobra.Command{
		Use:   "pdf <archivo>...",
		Short: "Importa acuses PDF; year y month son opcionales",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if a.Session.Current().Role != entity.RoleAdmin {
				return errAdminOnly
			}
			files, err := readUploads(args)
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")

			w := a.ImportPDF
			w.SetPeriod(year, month)
			w.Select(files)
			res, err := w.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	pdf.Flags().Int("year", 0, "Año de los acuses")
	pdf.Flags().Int("month", 0, "Mes de los acuses (1-12)")
	cmd.AddCommand(pdf)
	return cmd
}

// readUploads lee cada ruta; el nombre enviado es el base del archivo.
func readUploads(paths []string) ([]entity.UploadFile, error) {
	out := make([]entity.UploadFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", p, err)
		}
		out = append(out, entity.UploadFile{Name: filepath.Base(p), Data: data})
	}
	return out, nil
}
