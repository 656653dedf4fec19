package entity

import "github.com/shopspring/decimal"

// Declaracion acuse de declaración mensual importado desde PDF.
type Declaracion struct {
	ID                int64   `json:"id"`
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	RFC               *string `json:"rfc"`
	Folio             *string `json:"folio"`
	FechaPresentacion *string `json:"fecha_presentacion"`
	Filename          *string `json:"filename"`
	OriginalName      *string `json:"original_name"`
	NumPages          *int    `json:"num_pages"`
	SHA256            *string `json:"sha256"`
}

// EntityID implementa la clave del store.
func (d Declaracion) EntityID() int64 { return d.ID }

// PeriodKey periodo declarado.
func (d Declaracion) PeriodKey() (string, bool) {
	return PeriodKey(d.Year, d.Month)
}

// DeclaracionDetalle respuesta de GET /declaraciones/{id}.
type DeclaracionDetalle struct {
	Declaracion
	TextExcerpt *string `json:"text_excerpt"`
}

// DeclaracionResumen resumen de conciliación (GET /declaraciones/{id}/resumen.json).
// Se guarda como dato auxiliar por id en el store de declaraciones.
type DeclaracionResumen struct {
	Periodo                *string             `json:"periodo,omitempty"`
	RFC                    *string             `json:"rfc,omitempty"`
	Nombre                 *string             `json:"nombre,omitempty"`
	NumeroOperacion        *string             `json:"numero_operacion,omitempty"`
	IngresosTotalesMes     decimal.NullDecimal `json:"ingresos_totales_mes"`
	IVAACargo16            decimal.NullDecimal `json:"iva_a_cargo_16"`
	IVARetenido            decimal.NullDecimal `json:"iva_retenido"`
	RetencionesPlataformas decimal.NullDecimal `json:"retenciones_plataformas"`
	FechaPresentacion      *string             `json:"fecha_presentacion,omitempty"`
}
