package entity

import "github.com/shopspring/decimal"

// Fuentes de ingreso aceptadas por GET /declaracion.
const (
	IncomeSourceAuto       = "auto"
	IncomeSourcePlataforma = "plataforma"
	IncomeSourceCFDI       = "cfdi"
	IncomeSourceAmbos      = "ambos"
)

// IncomeSourceOption opción mostrada en el selector de fuente de ingresos.
type IncomeSourceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// IncomeSources opciones en el orden en que se presentan.
var IncomeSources = []IncomeSourceOption{
	{Value: IncomeSourceAuto, Label: "Auto (usar plataforma si existe)"},
	{Value: IncomeSourcePlataforma, Label: "Solo plataforma (Retenciones)"},
	{Value: IncomeSourceCFDI, Label: "Solo CFDI ingreso"},
	{Value: IncomeSourceAmbos, Label: "Sumar ambos (solo si NO son las mismas ventas)"},
}

// ValidIncomeSource indica si s es una fuente conocida.
func ValidIncomeSource(s string) bool {
	for _, o := range IncomeSources {
		if o.Value == s {
			return true
		}
	}
	return false
}

// Niveles de los checks calculados por el backend.
const (
	CheckOK    = "ok"
	CheckWarn  = "warn"
	CheckError = "error"
	CheckInfo  = "info"
)

// DeclaracionCheck validación calculada por el backend; solo se presenta.
type DeclaracionCheck struct {
	Level  string `json:"level"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// DeclaracionPDF acuse PDF asociado al periodo.
type DeclaracionPDF struct {
	ID                int64   `json:"id"`
	RFC               *string `json:"rfc"`
	Folio             *string `json:"folio"`
	FechaPresentacion *string `json:"fecha_presentacion"`
	Filename          string  `json:"filename"`
	OriginalName      *string `json:"original_name"`
	TextExcerpt       *string `json:"text_excerpt"`
}

// Label nombre a mostrar: el original si existe.
func (p DeclaracionPDF) Label() string {
	if p.OriginalName != nil && *p.OriginalName != "" {
		return *p.OriginalName
	}
	return p.Filename
}

// AcusePayload datos extraídos del acuse SAT.
type AcusePayload struct {
	Periodo                *string             `json:"periodo"`
	RFC                    *string             `json:"rfc"`
	Nombre                 *string             `json:"nombre"`
	TipoDeclaracion        *string             `json:"tipo_declaracion"`
	PeriodoMes             *string             `json:"periodo_mes"`
	Ejercicio              *int                `json:"ejercicio"`
	NumeroOperacion        *string             `json:"numero_operacion"`
	FechaPresentacion      *string             `json:"fecha_presentacion"`
	LineaCaptura           *string             `json:"linea_captura"`
	IngresosTotalesMes     decimal.NullDecimal `json:"ingresos_totales_mes"`
	ISRCausado             decimal.NullDecimal `json:"isr_causado"`
	RetencionesPlataformas decimal.NullDecimal `json:"retenciones_plataformas"`
	IVATasa                decimal.NullDecimal `json:"iva_tasa"`
	IVAACargo16            decimal.NullDecimal `json:"iva_a_cargo_16"`
	IVAAcreditable         decimal.NullDecimal `json:"iva_acreditable"`
	IVARetenido            decimal.NullDecimal `json:"iva_retenido"`
}

// AcuseCheck comparación SAT vs aplicación; sat/app pueden ser número o texto.
type AcuseCheck struct {
	Status string              `json:"status"`
	Label  string              `json:"label"`
	SAT    any                 `json:"sat"`
	App    any                 `json:"app"`
	Diff   decimal.NullDecimal `json:"diff"`
	Note   *string             `json:"note"`
}

// DeclaracionMensual vista calculada por el backend (GET /declaracion).
type DeclaracionMensual struct {
	Year                   int                `json:"year"`
	Month                  int                `json:"month"`
	IncomeSource           string             `json:"income_source"`
	EffectiveIncomeSource  string             `json:"effective_income_source"`
	MiRFC                  *string            `json:"mi_rfc"`
	IngresosTotalSinIVA    decimal.Decimal    `json:"ingresos_total_sin_iva"`
	PlatIngSIVA            decimal.Decimal    `json:"plat_ing_siva"`
	IngresosBase           decimal.Decimal    `json:"ingresos_base"`
	ISRRetenido            decimal.Decimal    `json:"isr_retenido"`
	IVARetenido            decimal.Decimal    `json:"iva_retenido"`
	IVATrasladadoTotal     decimal.Decimal    `json:"iva_trasladado_total"`
	IVATrasladadoSeleccion decimal.Decimal    `json:"iva_trasladado_seleccion"`
	Checks                 []DeclaracionCheck `json:"checks"`
	AcusePayload           *AcusePayload      `json:"acuse_payload"`
	AcuseChecks            []AcuseCheck       `json:"acuse_checks"`
	DeclaracionPDF         *DeclaracionPDF    `json:"declaracion_pdf"`
	RetencionesCount       int                `json:"retenciones_count"`
	DocsCount              int                `json:"docs_count"`
	PagosCount             int                `json:"pagos_count"`
}

// PeriodLabel clave YYYY-MM de la vista.
func (d DeclaracionMensual) PeriodLabel() string {
	k, _ := PeriodKey(d.Year, d.Month)
	return k
}
