package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/application/resumen"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

func newDeclaracionCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declaracion",
		Short: "Declaración mensual de un periodo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			source, _ := cmd.Flags().GetString("income-source")

			page := a.Declaracion
			d, err := page.Load(cmd.Context(), year, month, source)
			if err != nil {
				return err
			}
			out := dto.DeclaracionMensualResponse{DeclaracionMensual: d, Periodo: d.PeriodLabel()}
			out.CSVURL, _ = page.CSVURL(year, month, source)
			out.HojaURL, _ = page.HojaURL(year, month, source)
			if d.DeclaracionPDF != nil {
				out.PDFURL = page.PDFURL(*d.DeclaracionPDF)
				out.PDFLabel = d.DeclaracionPDF.Label()
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int("year", 0, "Año del periodo")
	cmd.Flags().Int("month", 0, "Mes del periodo (1-12)")
	cmd.Flags().String("income-source", entity.IncomeSourceAuto, "Fuente de ingresos (auto, platform, ...)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func newResumenCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumen",
		Short: "Resumen del periodo con desglose y avisos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")

			page := a.Resumen
			s, err := page.Load(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			out := dto.ResumenResponse{Summary: s, Details: page.Details(), Alerts: resumen.Alerts(s)}
			out.CSVURL, _ = page.CSVURL()
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int("year", 0, "Año del periodo")
	cmd.Flags().Int("month", 0, "Mes del periodo (1-12)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
