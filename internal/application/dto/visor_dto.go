package dto

import (
	"github.com/jhoicas/cfdi-visor/internal/application/importacion"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// DeclaracionItem declaración del listado con su resumen de conciliación.
type DeclaracionItem struct {
	entity.Declaracion
	Resumen *entity.DeclaracionResumen `json:"resumen"`
	PDFURL  string                     `json:"pdf_url,omitempty"`
}

// DeclaracionDetalleResponse detalle con enlaces al PDF y al JSON.
type DeclaracionDetalleResponse struct {
	*entity.DeclaracionDetalle
	Resumen    *entity.DeclaracionResumen `json:"resumen"`
	PDFURL     string                     `json:"pdf_url,omitempty"`
	ResumenURL string                     `json:"resumen_url"`
}

// XMLResponse resumen del XML y, si se pidió, el texto original.
type XMLResponse struct {
	Resumen    *entity.XMLResumen `json:"resumen"`
	Naturaleza string             `json:"naturaleza,omitempty"`
	Raw        string             `json:"raw,omitempty"`
}

// DeclaracionMensualResponse vista mensual con sus enlaces de descarga.
type DeclaracionMensualResponse struct {
	*entity.DeclaracionMensual
	Periodo  string `json:"periodo"`
	CSVURL   string `json:"csv_url,omitempty"`
	HojaURL  string `json:"hoja_url,omitempty"`
	PDFURL   string `json:"pdf_url,omitempty"`
	PDFLabel string `json:"pdf_label,omitempty"`
}

// ResumenResponse resumen del periodo, desglose y avisos.
type ResumenResponse struct {
	Summary *entity.ResumenPeriodo `json:"summary"`
	Details *entity.ResumenDetalle `json:"details"`
	Alerts  []string               `json:"alerts"`
	CSVURL  string                 `json:"csv_url,omitempty"`
}

// ImportStatusResponse estado de ambos flujos de importación.
type ImportStatusResponse struct {
	XML importacion.Snapshot[entity.ImportXMLResult] `json:"xml"`
	PDF importacion.Snapshot[entity.ImportPDFResult] `json:"pdf"`
}

// EstadoResponse indicador de carga y notificaciones activas.
type EstadoResponse struct {
	Busy          bool                  `json:"busy"`
	Count         int                   `json:"count"`
	Notifications []notify.Notification `json:"notifications"`
}
