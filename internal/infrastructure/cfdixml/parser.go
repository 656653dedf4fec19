// Package cfdixml lee el XML original de un CFDI 4.0 o de un comprobante de
// retenciones y extrae los datos que se muestran en el visor.
package cfdixml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// Parser implementa facturas.XMLParser y retenciones.XMLParser.
type Parser struct{}

// New devuelve un parser listo para usar.
func New() *Parser { return &Parser{} }

// Parse detecta el tipo por el elemento raíz y resume el documento.
// Un XML mal formado devuelve domain.ErrInvalidInput.
func (p *Parser) Parse(xml []byte) (*entity.XMLResumen, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(xml); err != nil {
		return nil, fmt.Errorf("cfdixml: %w: %v", domain.ErrInvalidInput, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("cfdixml: %w: documento sin raíz", domain.ErrInvalidInput)
	}

	switch root.Tag {
	case "Comprobante":
		return parseCFDI(root), nil
	case "Retenciones":
		return parseRetenciones(root), nil
	default:
		return &entity.XMLResumen{Kind: entity.XMLKindUnknown, Version: root.SelectAttrValue("Version", "")}, nil
	}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(label) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return input, nil
	}
}

func parseCFDI(root *etree.Element) *entity.XMLResumen {
	r := &entity.XMLResumen{
		Kind:            entity.XMLKindCFDI,
		Version:         attr(root, "Version"),
		Fecha:           attr(root, "Fecha"),
		TipoComprobante: attr(root, "TipoDeComprobante"),
		Moneda:          attr(root, "Moneda"),
		SubTotal:        dec(attr(root, "SubTotal")),
		Descuento:       dec(attr(root, "Descuento")),
		Total:           dec(attr(root, "Total")),
		Conceptos:       len(findAll(root, "Concepto")),
		Pagos:           len(findAll(root, "Pago")),
	}
	if tfd := findFirst(root, "TimbreFiscalDigital"); tfd != nil {
		r.UUID = attr(tfd, "UUID")
	}
	if e := findFirst(root, "Emisor"); e != nil {
		r.EmisorRFC = attr(e, "Rfc")
		r.EmisorNombre = attr(e, "Nombre")
	}
	if rc := findFirst(root, "Receptor"); rc != nil {
		r.ReceptorRFC = attr(rc, "Rfc")
		r.ReceptorNombre = attr(rc, "Nombre")
		r.UsoCFDI = attr(rc, "UsoCFDI")
	}
	// Los totales de impuestos viven en el nodo Impuestos del comprobante, no en los de cada concepto.
	for _, imp := range root.ChildElements() {
		if imp.Tag == "Impuestos" {
			r.Trasladados = dec(attr(imp, "TotalImpuestosTrasladados"))
			r.Retenidos = dec(attr(imp, "TotalImpuestosRetenidos"))
		}
	}
	return r
}

func parseRetenciones(root *etree.Element) *entity.XMLResumen {
	r := &entity.XMLResumen{
		Kind:    entity.XMLKindRetenciones,
		Version: attr(root, "Version"),
		Fecha:   attr(root, "FechaExp"),
		MesIni:  atoi(attr(root, "MesIni")),
		MesFin:  atoi(attr(root, "MesFin")),
	}
	r.Ejercicio = atoi(attr(root, "Ejercicio"))
	if p := findFirst(root, "Periodo"); p != nil && r.Ejercicio == 0 {
		r.Ejercicio = atoi(attr(p, "Ejercicio"))
		r.MesIni = atoi(attr(p, "MesIni"))
		r.MesFin = atoi(attr(p, "MesFin"))
	}
	if tfd := findFirst(root, "TimbreFiscalDigital"); tfd != nil {
		r.UUID = attr(tfd, "UUID")
	}
	if e := findFirst(root, "Emisor"); e != nil {
		r.EmisorRFC = attr(e, "RfcEmisor", "RfcE")
		r.EmisorNombre = attr(e, "NomDenRazSocE")
	}
	if rc := findFirst(root, "Receptor"); rc != nil {
		r.ReceptorRFC, r.ReceptorNombre = receptorRetenciones(rc)
	}
	if t := findFirst(root, "Totales"); t != nil {
		r.MontoTotOperacion = dec(attr(t, "MontoTotOperacion"))
		r.MontoTotRet = dec(attr(t, "MontoTotRet"))
	}
	plat := findFirst(root, "PlataformasTecnologicas")
	if plat == nil {
		plat = findFirst(root, "ServiciosPlataforma")
	}
	if plat != nil {
		r.MonTotServSIVA = dec(attr(plat, "MonTotServSIVA"))
		r.MonTotalPorUsoPlataforma = dec(attr(plat, "MonTotalporUsoPlataforma"))
	}
	return r
}

func receptorRetenciones(rc *etree.Element) (rfc, nombre string) {
	if n := findFirst(rc, "Nacional"); n != nil {
		return attr(n, "RfcRecep", "RfcR"), attr(n, "NomDenRazSocR")
	}
	if x := findFirst(rc, "Extranjero"); x != nil {
		return attr(x, "NumRegIdTrib", "NumRegIdTribR"), attr(x, "NomDenRazSocR")
	}
	return attr(rc, "RfcRecep"), attr(rc, "NomDenRazSocR")
}

// findFirst recorre en profundidad comparando el nombre local (sin prefijo).
func findFirst(e *etree.Element, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == local {
			return c
		}
		if f := findFirst(c, local); f != nil {
			return f
		}
	}
	return nil
}

func findAll(e *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == local {
			out = append(out, c)
		}
		out = append(out, findAll(c, local)...)
	}
	return out
}

// attr primer atributo presente entre keys (las versiones del esquema cambian nombres).
func attr(e *etree.Element, keys ...string) string {
	for _, k := range keys {
		if a := e.SelectAttr(k); a != nil {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func dec(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
