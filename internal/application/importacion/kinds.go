package importacion

import (
	"context"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// XMLWorkflow importación de CFDI y retenciones (POST /importar).
type XMLWorkflow = Workflow[entity.ImportXMLResult]

// NewXML arma el flujo XML sobre api.
func NewXML(api repository.ImportAPI, b *busy.Indicator, q *notify.Queue, opts Options, log *logger.Logger) *XMLWorkflow {
	upload := func(ctx context.Context, files []entity.UploadFile) (entity.ImportXMLResult, error) {
		res, err := api.ImportXML(ctx, files)
		if err != nil {
			return entity.ImportXMLResult{}, err
		}
		return *res, nil
	}
	return New("xml", upload, XMLMessages, b, q, opts, log)
}

// PDFWorkflow importación de acuses PDF (POST /importar_pdf) con periodo opcional.
type PDFWorkflow struct {
	*Workflow[entity.ImportPDFResult]

	mu    sync.Mutex
	year  int
	month int
}

// NewPDF arma el flujo PDF sobre api.
func NewPDF(api repository.ImportAPI, b *busy.Indicator, q *notify.Queue, opts Options, log *logger.Logger) *PDFWorkflow {
	p := &PDFWorkflow{}
	upload := func(ctx context.Context, files []entity.UploadFile) (entity.ImportPDFResult, error) {
		year, month := p.Period()
		res, err := api.ImportPDF(ctx, files, year, month)
		if err != nil {
			return entity.ImportPDFResult{}, err
		}
		return *res, nil
	}
	p.Workflow = New("pdf", upload, PDFMessages, b, q, opts, log)
	return p
}

// SetPeriod fija año y mes opcionales del lote (cero = no enviar).
func (p *PDFWorkflow) SetPeriod(year, month int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.year, p.month = year, month
}

// Period año y mes configurados.
func (p *PDFWorkflow) Period() (year, month int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.year, p.month
}
