package entity

import "github.com/shopspring/decimal"

// Retencion comprobante de retenciones (plataformas tecnológicas) en el listado.
type Retencion struct {
	ID                 int64               `json:"id"`
	UUID               *string             `json:"uuid"`
	FechaExp           *string             `json:"fecha_exp"`
	Ejercicio          *int                `json:"ejercicio"`
	MesIni             *int                `json:"mes_ini"`
	MesFin             *int                `json:"mes_fin"`
	EmisorRFC          *string             `json:"emisor_rfc"`
	EmisorNombre       *string             `json:"emisor_nombre"`
	ReceptorRFC        *string             `json:"receptor_rfc"`
	MonTotServSIVA     decimal.NullDecimal `json:"mon_tot_serv_siva"`
	TotalIVATrasladado decimal.NullDecimal `json:"total_iva_trasladado"`
	TotalIVARetenido   decimal.NullDecimal `json:"total_iva_retenido"`
	TotalISRRetenido   decimal.NullDecimal `json:"total_isr_retenido"`
}

// EntityID implementa la clave del store.
func (r Retencion) EntityID() int64 { return r.ID }

// PeriodKey periodo a partir de ejercicio y mes inicial.
func (r Retencion) PeriodKey() (string, bool) {
	return periodKeyPtr(r.Ejercicio, r.MesIni)
}

// RetencionDetalle respuesta de GET /retenciones/{id}; incluye el XML original.
type RetencionDetalle struct {
	ID                       *int64              `json:"id"`
	UUID                     *string             `json:"uuid"`
	FechaExp                 *string             `json:"fecha_exp"`
	Ejercicio                *int                `json:"ejercicio"`
	MesIni                   *int                `json:"mes_ini"`
	MesFin                   *int                `json:"mes_fin"`
	EmisorRFC                *string             `json:"emisor_rfc"`
	EmisorNombre             *string             `json:"emisor_nombre"`
	ReceptorRFC              *string             `json:"receptor_rfc"`
	ReceptorNombre           *string             `json:"receptor_nombre"`
	MonTotServSIVA           decimal.NullDecimal `json:"mon_tot_serv_siva"`
	TotalIVATrasladado       decimal.NullDecimal `json:"total_iva_trasladado"`
	TotalIVARetenido         decimal.NullDecimal `json:"total_iva_retenido"`
	TotalISRRetenido         decimal.NullDecimal `json:"total_isr_retenido"`
	MonTotalPorUsoPlataforma decimal.NullDecimal `json:"mon_total_por_uso_plataforma"`
	XMLText                  *string             `json:"xml_text"`
}
