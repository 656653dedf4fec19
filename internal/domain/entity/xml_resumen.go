package entity

import "github.com/shopspring/decimal"

// Tipos de XML reconocidos.
const (
	XMLKindCFDI        = "cfdi"
	XMLKindRetenciones = "retenciones"
	XMLKindUnknown     = "unknown"
)

// XMLResumen datos principales leídos del XML original (CFDI 4.0 o retenciones).
// Se usa para mostrar el documento sin volcar el XML completo.
type XMLResumen struct {
	Kind            string              `json:"kind"`
	Version         string              `json:"version,omitempty"`
	UUID            string              `json:"uuid,omitempty"`
	Fecha           string              `json:"fecha,omitempty"`
	TipoComprobante string              `json:"tipo_comprobante,omitempty"`
	EmisorRFC       string              `json:"emisor_rfc,omitempty"`
	EmisorNombre    string              `json:"emisor_nombre,omitempty"`
	ReceptorRFC     string              `json:"receptor_rfc,omitempty"`
	ReceptorNombre  string              `json:"receptor_nombre,omitempty"`
	UsoCFDI         string              `json:"uso_cfdi,omitempty"`
	Moneda          string              `json:"moneda,omitempty"`
	SubTotal        decimal.NullDecimal `json:"subtotal"`
	Descuento       decimal.NullDecimal `json:"descuento"`
	Total           decimal.NullDecimal `json:"total"`
	Trasladados     decimal.NullDecimal `json:"total_trasladados"`
	Retenidos       decimal.NullDecimal `json:"total_retenidos"`
	Conceptos       int                 `json:"conceptos"`
	Pagos           int                 `json:"pagos"`

	// Retenciones (plataformas tecnológicas).
	Ejercicio                int                 `json:"ejercicio,omitempty"`
	MesIni                   int                 `json:"mes_ini,omitempty"`
	MesFin                   int                 `json:"mes_fin,omitempty"`
	MontoTotOperacion        decimal.NullDecimal `json:"monto_tot_operacion"`
	MontoTotRet              decimal.NullDecimal `json:"monto_tot_ret"`
	MonTotServSIVA           decimal.NullDecimal `json:"mon_tot_serv_siva"`
	MonTotalPorUsoPlataforma decimal.NullDecimal `json:"mon_total_por_uso_plataforma"`
}

// Naturaleza nombre legible del tipo de comprobante; tipos desconocidos se devuelven tal cual.
func Naturaleza(tipo string) string {
	switch tipo {
	case "I":
		return "Ingreso"
	case "E":
		return "Egreso"
	case "P":
		return "Pago"
	case "T":
		return "Traslado"
	case "N":
		return "Nomina"
	default:
		return tipo
	}
}
