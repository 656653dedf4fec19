// Package export genera hojas de cálculo a partir de las vistas del visor.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/state/query"
)

// DeclaracionRow declaración con su resumen de conciliación (nil si no se obtuvo).
type DeclaracionRow = query.Row[entity.Declaracion, entity.DeclaracionResumen]

var (
	facturaHeader = []any{
		"ID", "UUID", "Fecha emisión", "Tipo", "Naturaleza", "Emisor RFC", "Emisor",
		"Receptor RFC", "Receptor", "Uso CFDI", "Moneda", "Subtotal", "Descuento",
		"Total", "Trasladados", "Retenidos",
	}
	retencionHeader = []any{
		"ID", "UUID", "Fecha exp.", "Ejercicio", "Mes ini", "Mes fin", "Emisor RFC", "Emisor",
		"Receptor RFC", "Servicios sin IVA", "IVA trasladado", "IVA retenido", "ISR retenido",
	}
	declaracionHeader = []any{
		"ID", "Periodo", "RFC", "Folio", "Fecha presentación", "Archivo", "Páginas",
		"Ingresos del mes", "IVA a cargo 16%", "IVA retenido", "Retenciones plataformas",
	}
)

// Facturas escribe el libro de facturas en w.
func Facturas(w io.Writer, items []entity.Factura) error {
	rows := make([][]any, 0, len(items))
	for _, f := range items {
		rows = append(rows, []any{
			f.ID, str(f.UUID), str(f.FechaEmision), str(f.TipoComprobante), str(f.Naturaleza),
			str(f.EmisorRFC), str(f.EmisorNombre), str(f.ReceptorRFC), str(f.ReceptorNombre),
			str(f.UsoCFDI), str(f.Moneda), num(f.Subtotal), num(f.Descuento), num(f.Total),
			num(f.TotalTrasladados), num(f.TotalRetenidos),
		})
	}
	return write(w, "Facturas", facturaHeader, rows)
}

// Retenciones escribe el libro de retenciones en w.
func Retenciones(w io.Writer, items []entity.Retencion) error {
	rows := make([][]any, 0, len(items))
	for _, r := range items {
		rows = append(rows, []any{
			r.ID, str(r.UUID), str(r.FechaExp), intp(r.Ejercicio), intp(r.MesIni), intp(r.MesFin),
			str(r.EmisorRFC), str(r.EmisorNombre), str(r.ReceptorRFC), num(r.MonTotServSIVA),
			num(r.TotalIVATrasladado), num(r.TotalIVARetenido), num(r.TotalISRRetenido),
		})
	}
	return write(w, "Retenciones", retencionHeader, rows)
}

// Declaraciones escribe las declaraciones con las columnas del resumen cuando existe.
func Declaraciones(w io.Writer, items []DeclaracionRow) error {
	rows := make([][]any, 0, len(items))
	for _, r := range items {
		d := r.Item
		period, _ := d.PeriodKey()
		row := []any{
			d.ID, period, str(d.RFC), str(d.Folio), str(d.FechaPresentacion),
			str(d.OriginalName), intp(d.NumPages),
		}
		if s := r.Aux; s != nil {
			row = append(row, num(s.IngresosTotalesMes), num(s.IVAACargo16), num(s.IVARetenido), num(s.RetencionesPlataformas))
		}
		rows = append(rows, row)
	}
	return write(w, "Declaraciones", declaracionHeader, rows)
}

func write(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: estilo: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: encabezado: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("export: estilo: %w", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("export: paneles: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: escribir: %w", err)
	}
	return nil
}

func str(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}

func intp(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

// num celda numérica; los montos nulos quedan vacíos.
func num(d decimal.NullDecimal) any {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}
