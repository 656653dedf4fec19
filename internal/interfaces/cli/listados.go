package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cfdi-visor/internal/app"
	"github.com/jhoicas/cfdi-visor/internal/application/declaraciones"
	"github.com/jhoicas/cfdi-visor/internal/application/dto"
	"github.com/jhoicas/cfdi-visor/internal/application/facturas"
	"github.com/jhoicas/cfdi-visor/internal/application/retenciones"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/internal/state/store"
)

// ─── Facturas ───

func newFacturasCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facturas",
		Short: "Lista los CFDI (los filtros se envían a cfdi-api y se aplican a la vista)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if err := loadFacturas(cmd, a); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), facturasList(a))
		},
	}
	addFacturaFlags(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de una factura con conceptos y pagos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			d, err := a.SelectFactura(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	})

	xmlCmd := &cobra.Command{
		Use:   "xml <id>",
		Short: "Resumen del XML original de la factura",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if raw, _ := cmd.Flags().GetBool("raw"); raw {
				text, err := a.Facturas.FetchXML(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			r, err := a.FacturaXML(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.XMLResponse{Resumen: r, Naturaleza: entity.Naturaleza(r.TipoComprobante)})
		},
	}
	xmlCmd.Flags().Bool("raw", false, "Imprime el XML sin procesar")
	cmd.AddCommand(xmlCmd)
	return cmd
}

func addFacturaFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "Año de emisión")
	cmd.Flags().Int("month", 0, "Mes de emisión (1-12)")
	cmd.Flags().String("tipo", "", "Tipo de comprobante (I, E, P, N, T)")
	cmd.Flags().String("naturaleza", "", "ingreso o egreso")
}

// loadFacturas carga con la query de los flags y deja los mismos valores como filtros de la vista.
func loadFacturas(cmd *cobra.Command, a *app.App) error {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	tipo, _ := cmd.Flags().GetString("tipo")
	naturaleza, _ := cmd.Flags().GetString("naturaleza")

	q := repository.FacturaQuery{Year: year, Month: month, Tipo: tipo, Naturaleza: naturaleza}
	if err := a.LoadFacturas(cmd.Context(), q); err != nil {
		return err
	}
	var p facturas.FiltersPatch
	if year != 0 {
		p.Year = store.Set(year)
	}
	if month != 0 {
		p.Month = store.Set(month)
	}
	if tipo != "" {
		p.Tipo = store.Set(tipo)
	}
	if naturaleza != "" {
		p.Naturaleza = store.Set(naturaleza)
	}
	a.Facturas.SetFilters(p)
	return nil
}

func facturasList(a *app.App) dto.ListResponse[entity.Factura, facturas.Filters] {
	res := a.FacturasView.Current()
	return dto.ListResponse[entity.Factura, facturas.Filters]{
		Items:   res.Items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: a.Facturas.Store().State().Filters,
		Version: res.Version,
	}
}

// ─── Retenciones ───

func newRetencionesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retenciones",
		Short: "Lista las constancias de retención",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if err := loadRetenciones(cmd, a); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), retencionesList(a))
		},
	}
	cmd.Flags().String("period", "", "Periodo YYYY-MM")

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de una retención",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			d, err := a.SelectRetencion(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}, &cobra.Command{
		Use:   "xml <id>",
		Short: "Resumen del XML de la constancia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			r, err := a.RetencionXML(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.XMLResponse{Resumen: r})
		},
	})
	return cmd
}

func loadRetenciones(cmd *cobra.Command, a *app.App) error {
	if err := a.LoadRetenciones(cmd.Context()); err != nil {
		return err
	}
	if period, _ := cmd.Flags().GetString("period"); period != "" {
		key, err := entity.NormalizePeriod(period)
		if err != nil {
			return err
		}
		a.Retenciones.SetFilters(retenciones.FiltersPatch{Period: store.Set(key)})
	}
	return nil
}

func retencionesList(a *app.App) dto.ListResponse[entity.Retencion, retenciones.Filters] {
	res := a.RetencionesView.Current()
	return dto.ListResponse[entity.Retencion, retenciones.Filters]{
		Items:   res.Items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: a.Retenciones.Store().State().Filters,
		Version: res.Version,
	}
}

// ─── Declaraciones ───

func newDeclaracionesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declaraciones",
		Short: "Lista los acuses importados con su resumen de conciliación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			if err := loadDeclaraciones(cmd, a); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), declaracionesList(a))
		},
	}
	cmd.Flags().String("period", "", "Periodo YYYY-MM")

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de una declaración y su resumen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := rt.session(cmd)
			if err != nil {
				return err
			}
			d, sum, err := a.SelectDeclaracion(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := dto.DeclaracionDetalleResponse{
				DeclaracionDetalle: d,
				Resumen:            sum,
				ResumenURL:         a.API.URL(declaraciones.ResumenPath(id)),
			}
			if d.Filename != nil && *d.Filename != "" {
				out.PDFURL = a.API.URL(declaraciones.ArchivoPath(id, *d.Filename))
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})
	return cmd
}

func loadDeclaraciones(cmd *cobra.Command, a *app.App) error {
	if err := a.LoadDeclaraciones(cmd.Context()); err != nil {
		return err
	}
	if period, _ := cmd.Flags().GetString("period"); period != "" {
		key, err := entity.NormalizePeriod(period)
		if err != nil {
			return err
		}
		a.Declaraciones.SetFilters(declaraciones.FiltersPatch{Period: store.Set(key)})
	}
	return nil
}

func declaracionesList(a *app.App) dto.ListResponse[dto.DeclaracionItem, declaraciones.Filters] {
	res := a.DeclaracionesView.Current()
	items := make([]dto.DeclaracionItem, 0, len(res.Rows))
	for _, r := range res.Rows {
		it := dto.DeclaracionItem{Declaracion: r.Item, Resumen: r.Aux}
		if r.Item.Filename != nil && *r.Item.Filename != "" {
			it.PDFURL = a.API.URL(declaraciones.ArchivoPath(r.Item.ID, *r.Item.Filename))
		}
		items = append(items, it)
	}
	return dto.ListResponse[dto.DeclaracionItem, declaraciones.Filters]{
		Items:   items,
		Count:   res.Count,
		Periods: res.Periods,
		Filters: a.Declaraciones.Store().State().Filters,
		Version: res.Version,
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}
