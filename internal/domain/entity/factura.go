package entity

import "github.com/shopspring/decimal"

// Factura representa un CFDI en el listado (GET /facturas).
type Factura struct {
	ID               int64               `json:"id"`
	UUID             *string             `json:"uuid"`
	FechaEmision     *string             `json:"fecha_emision"`
	TipoComprobante  *string             `json:"tipo_comprobante"` // I, E, P, N, T
	YearEmision      *int                `json:"year_emision"`
	MonthEmision     *int                `json:"month_emision"`
	EmisorRFC        *string             `json:"emisor_rfc"`
	EmisorNombre     *string             `json:"emisor_nombre"`
	ReceptorRFC      *string             `json:"receptor_rfc"`
	ReceptorNombre   *string             `json:"receptor_nombre"`
	UsoCFDI          *string             `json:"uso_cfdi"`
	Moneda           *string             `json:"moneda"`
	Subtotal         decimal.NullDecimal `json:"subtotal"`
	Descuento        decimal.NullDecimal `json:"descuento"`
	Total            decimal.NullDecimal `json:"total"`
	TotalTrasladados decimal.NullDecimal `json:"total_trasladados"`
	TotalRetenidos   decimal.NullDecimal `json:"total_retenidos"`
	Naturaleza       *string             `json:"naturaleza"`
}

// EntityID implementa la clave del store.
func (f Factura) EntityID() int64 { return f.ID }

// PeriodKey periodo de emisión.
func (f Factura) PeriodKey() (string, bool) {
	return periodKeyPtr(f.YearEmision, f.MonthEmision)
}

// Concepto línea de un CFDI.
type Concepto struct {
	ID            *int64              `json:"id"`
	FacturaID     int64               `json:"factura_id"`
	ClaveProdServ *string             `json:"clave_prod_serv"`
	Cantidad      decimal.NullDecimal `json:"cantidad"`
	ClaveUnidad   *string             `json:"clave_unidad"`
	Descripcion   *string             `json:"descripcion"`
	ValorUnitario decimal.NullDecimal `json:"valor_unitario"`
	Importe       decimal.NullDecimal `json:"importe"`
	ObjetoImp     *string             `json:"objeto_imp"`
}

// Pago registro del complemento de pagos.
type Pago struct {
	ID         *int64              `json:"id"`
	FacturaID  int64               `json:"factura_id"`
	FechaPago  *string             `json:"fecha_pago"`
	YearPago   *int                `json:"year_pago"`
	MonthPago  *int                `json:"month_pago"`
	Monto      decimal.NullDecimal `json:"monto"`
	MonedaP    *string             `json:"moneda_p"`
	FormaPagoP *string             `json:"forma_pago_p"`
}

// FacturaDetalle respuesta de GET /facturas/{id}.
type FacturaDetalle struct {
	Factura   Factura    `json:"factura"`
	Conceptos []Concepto `json:"conceptos"`
	Pagos     []Pago     `json:"pagos"`
}
