// Package retenciones conecta el listado de retenciones del backend con su store.
package retenciones

import (
	"context"
	"fmt"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// XMLParser resume el XML del comprobante de retenciones.
type XMLParser interface {
	Parse(xml []byte) (*entity.XMLResumen, error)
}

// Repository lecturas de retenciones.
type Repository struct {
	api    repository.RetencionAPI
	store  *Store
	parser XMLParser
	log    *logger.Logger
}

// NewRepository construye el repositorio.
func NewRepository(api repository.RetencionAPI, s *Store, parser XMLParser, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{api: api, store: s, parser: parser, log: log.WithComponent("retenciones")}
}

func (r *Repository) Store() *Store { return r.store }

// Fetch lee el listado completo y reemplaza las entidades.
func (r *Repository) Fetch(ctx context.Context) error {
	items, err := r.store.Refresh(ctx, r.api.ListRetenciones)
	if err != nil {
		return err
	}
	r.log.Info().Int("count", len(items)).Msg("retenciones cargadas")
	return nil
}

func (r *Repository) SetFilters(p FiltersPatch) {
	r.store.UpdateFilters(p.Apply)
}

// FetchDetail incluye el XML original en XMLText.
func (r *Repository) FetchDetail(ctx context.Context, id int64) (*entity.RetencionDetalle, error) {
	return r.api.GetRetencion(ctx, id)
}

// FetchXMLResumen resume el xml_text del detalle.
func (r *Repository) FetchXMLResumen(ctx context.Context, id int64) (*entity.XMLResumen, error) {
	d, err := r.api.GetRetencion(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.XMLText == nil || *d.XMLText == "" {
		return nil, fmt.Errorf("retención %d sin XML: %w", id, domain.ErrNotFound)
	}
	if r.parser == nil {
		return nil, fmt.Errorf("retenciones: parser XML no configurado: %w", domain.ErrInvalidInput)
	}
	return r.parser.Parse([]byte(*d.XMLText))
}

