package cfdixml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

const cfdi40 = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
  Version="4.0" Fecha="2024-03-15T10:00:00" TipoDeComprobante="I" Moneda="MXN" SubTotal="1000.00" Total="1160.00">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="EMISOR SA"/>
  <cfdi:Receptor Rfc="XAXX010101000" Nombre="PUBLICO" UsoCFDI="G03"/>
  <cfdi:Conceptos>
    <cfdi:Concepto Descripcion="Servicio" Importe="600.00">
      <cfdi:Impuestos><cfdi:Traslados><cfdi:Traslado Importe="96.00"/></cfdi:Traslados></cfdi:Impuestos>
    </cfdi:Concepto>
    <cfdi:Concepto Descripcion="Otro" Importe="400.00"/>
  </cfdi:Conceptos>
  <cfdi:Impuestos TotalImpuestosTrasladados="160.00"/>
  <cfdi:Complemento>
    <tfd:TimbreFiscalDigital UUID="0F5A7E1C-1111-2222-3333-444455556666"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`

const retenciones = `<?xml version="1.0" encoding="UTF-8"?>
<retenciones:Retenciones xmlns:retenciones="http://www.sat.gob.mx/esquemas/retencionpago/2"
  xmlns:plataformasTecnologicas="http://www.sat.gob.mx/esquemas/retencionpago/1/PlataformasTecnologicas10"
  Version="2.0" FechaExp="2024-04-02T09:00:00">
  <retenciones:Emisor RfcE="PTE010101AAA" NomDenRazSocE="PLATAFORMA SA"/>
  <retenciones:Receptor NacionalidadR="Nacional">
    <retenciones:Nacional RfcR="PEPJ800101AAA" NomDenRazSocR="JUAN PEREZ"/>
  </retenciones:Receptor>
  <retenciones:Periodo MesIni="3" MesFin="3" Ejercicio="2024"/>
  <retenciones:Totales MontoTotOperacion="5000.00" MontoTotRet="210.50"/>
  <retenciones:Complemento>
    <plataformasTecnologicas:ServiciosPlataformasTecnologicas>
      <plataformasTecnologicas:PlataformasTecnologicas MonTotServSIVA="5000.00" MonTotalporUsoPlataforma="350.00"/>
    </plataformasTecnologicas:ServiciosPlataformasTecnologicas>
  </retenciones:Complemento>
</retenciones:Retenciones>`

// ─── CFDI ───────────────────────────────────────────────────────────────────

func TestParse_CFDI40(t *testing.T) {
	r, err := New().Parse([]byte(cfdi40))
	require.NoError(t, err)

	assert.Equal(t, entity.XMLKindCFDI, r.Kind)
	assert.Equal(t, "4.0", r.Version)
	assert.Equal(t, "0F5A7E1C-1111-2222-3333-444455556666", r.UUID)
	assert.Equal(t, "AAA010101AAA", r.EmisorRFC)
	assert.Equal(t, "PUBLICO", r.ReceptorNombre)
	assert.Equal(t, "G03", r.UsoCFDI)
	assert.Equal(t, "1160", r.Total.Decimal.String())
	assert.False(t, r.Descuento.Valid, "atributo ausente queda nulo")
	assert.Equal(t, "160", r.Trasladados.Decimal.String(), "solo el nodo Impuestos del comprobante")
	assert.Equal(t, 2, r.Conceptos)
	assert.Equal(t, 0, r.Pagos)
	assert.Equal(t, "Ingreso", entity.Naturaleza(r.TipoComprobante))
}

func TestParse_Latin1(t *testing.T) {
	// "Compañía" en ISO-8859-1: ñ = 0xF1, í = 0xED
	xml := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<cfdi:Comprobante xmlns:cfdi=\"http://www.sat.gob.mx/cfd/4\" Version=\"4.0\">" +
		"<cfdi:Emisor Rfc=\"AAA010101AAA\" Nombre=\"Compa\xf1\xeda\"/></cfdi:Comprobante>")

	r, err := New().Parse(xml)
	require.NoError(t, err)
	assert.Equal(t, "Compañía", r.EmisorNombre)
}

// ─── Retenciones ────────────────────────────────────────────────────────────

func TestParse_Retenciones(t *testing.T) {
	r, err := New().Parse([]byte(retenciones))
	require.NoError(t, err)

	assert.Equal(t, entity.XMLKindRetenciones, r.Kind)
	assert.Equal(t, "PTE010101AAA", r.EmisorRFC)
	assert.Equal(t, "PLATAFORMA SA", r.EmisorNombre)
	assert.Equal(t, "PEPJ800101AAA", r.ReceptorRFC)
	assert.Equal(t, 2024, r.Ejercicio)
	assert.Equal(t, 3, r.MesIni)
	assert.Equal(t, "210.5", r.MontoTotRet.Decimal.String())
	assert.Equal(t, "350", r.MonTotalPorUsoPlataforma.Decimal.String())
}

// ─── Errores ────────────────────────────────────────────────────────────────

func TestParse_Invalido(t *testing.T) {
	_, err := New().Parse([]byte("<cfdi:Comprobante"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_RaizDesconocida(t *testing.T) {
	r, err := New().Parse([]byte(`<Nomina Version="1.2"/>`))
	require.NoError(t, err)
	assert.Equal(t, entity.XMLKindUnknown, r.Kind)
	assert.Equal(t, "1.2", r.Version)
}
