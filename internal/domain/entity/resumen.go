package entity

import "github.com/shopspring/decimal"

// ResumenPeriodo totales agregados del periodo (GET /summary).
type ResumenPeriodo struct {
	Year                   int             `json:"year"`
	Month                  int             `json:"month"`
	IngresosTotal          decimal.Decimal `json:"ingresos_total"`
	IngresosBase           decimal.Decimal `json:"ingresos_base"`
	IngresosTrasl          decimal.Decimal `json:"ingresos_trasl"`
	IngresosRet            decimal.Decimal `json:"ingresos_ret"`
	GastosTotal            decimal.Decimal `json:"gastos_total"`
	GastosTrasl            decimal.Decimal `json:"gastos_trasl"`
	GastosRet              decimal.Decimal `json:"gastos_ret"`
	PCount                 int             `json:"p_count"`
	CashIn                 decimal.Decimal `json:"cash_in"`
	CashOut                decimal.Decimal `json:"cash_out"`
	PagosCount             int             `json:"pagos_count"`
	PlatIngSIVA            decimal.Decimal `json:"plat_ing_siva"`
	PlatIVATras            decimal.Decimal `json:"plat_iva_tras"`
	PlatIVARet             decimal.Decimal `json:"plat_iva_ret"`
	PlatISRRet             decimal.Decimal `json:"plat_isr_ret"`
	PlatComision           decimal.Decimal `json:"plat_comision"`
	IVACausadoSugerido     decimal.Decimal `json:"iva_causado_sugerido"`
	IVAAcreditableSugerido decimal.Decimal `json:"iva_acreditable_sugerido"`
	IVARetenidoPlat        decimal.Decimal `json:"iva_retenido_plat"`
	IVANetoSugerido        decimal.Decimal `json:"iva_neto_sugerido"`
}

// PeriodLabel clave YYYY-MM del resumen.
func (r ResumenPeriodo) PeriodLabel() string {
	k, _ := PeriodKey(r.Year, r.Month)
	return k
}

// ResumenDoc documento que soporta el resumen.
type ResumenDoc struct {
	ID              int64               `json:"id"`
	FechaEmision    *string             `json:"fecha_emision"`
	TipoComprobante *string             `json:"tipo_comprobante"`
	Naturaleza      *string             `json:"naturaleza"`
	UUID            *string             `json:"uuid"`
	EmisorRFC       *string             `json:"emisor_rfc"`
	ReceptorRFC     *string             `json:"receptor_rfc"`
	UsoCFDI         *string             `json:"uso_cfdi"`
	Total           decimal.NullDecimal `json:"total"`
	Moneda          *string             `json:"moneda"`
}

// ResumenPago pago que soporta el resumen.
type ResumenPago struct {
	FacturaID  int64               `json:"factura_id"`
	FechaPago  *string             `json:"fecha_pago"`
	Monto      decimal.NullDecimal `json:"monto"`
	MonedaP    *string             `json:"moneda_p"`
	FormaPagoP *string             `json:"forma_pago_p"`
	Naturaleza *string             `json:"naturaleza"`
}

// ResumenDetalle desglose de GET /summary/details.
type ResumenDetalle struct {
	Docs  []ResumenDoc  `json:"docs"`
	Pagos []ResumenPago `json:"pagos"`
}
