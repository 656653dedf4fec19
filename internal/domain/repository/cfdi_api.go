package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

// FacturaQuery parámetros de GET /facturas. Los valores cero no se envían.
type FacturaQuery struct {
	Year       int
	Month      int
	Tipo       string
	Naturaleza string
}

// FacturaAPI puerto de lectura de facturas en cfdi-api.
// Los listados se devuelven sin decodificar para normalizarlos en el repositorio.
type FacturaAPI interface {
	ListFacturas(ctx context.Context, q FacturaQuery) ([]json.RawMessage, error)
	GetFactura(ctx context.Context, id int64) (*entity.FacturaDetalle, error)
	// GetFacturaXML devuelve el XML original como texto.
	GetFacturaXML(ctx context.Context, id int64) (string, error)
}

// RetencionAPI puerto de lectura de retenciones.
type RetencionAPI interface {
	ListRetenciones(ctx context.Context) ([]json.RawMessage, error)
	GetRetencion(ctx context.Context, id int64) (*entity.RetencionDetalle, error)
}

// DeclaracionAPI puerto de lectura de declaraciones (acuses PDF).
type DeclaracionAPI interface {
	ListDeclaraciones(ctx context.Context) ([]json.RawMessage, error)
	GetDeclaracion(ctx context.Context, id int64) (*entity.DeclaracionDetalle, error)
	GetDeclaracionResumen(ctx context.Context, id int64) (*entity.DeclaracionResumen, error)
}

// DeclaracionMensualAPI vista mensual calculada por el backend.
type DeclaracionMensualAPI interface {
	GetDeclaracionMensual(ctx context.Context, year, month int, incomeSource string) (*entity.DeclaracionMensual, error)
}

// ResumenAPI resumen del periodo y su desglose.
type ResumenAPI interface {
	GetResumen(ctx context.Context, year, month int) (*entity.ResumenPeriodo, error)
	GetResumenDetalle(ctx context.Context, year, month int) (*entity.ResumenDetalle, error)
}

// ImportAPI subidas multipart (campo files).
type ImportAPI interface {
	ImportXML(ctx context.Context, files []entity.UploadFile) (*entity.ImportXMLResult, error)
	// ImportPDF year y month en cero no se envían.
	ImportPDF(ctx context.Context, files []entity.UploadFile, year, month int) (*entity.ImportPDFResult, error)
}
