// Package facturas conecta el listado de CFDI del backend con su store.
package facturas

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// XMLParser resume el XML original de un comprobante.
type XMLParser interface {
	Parse(xml []byte) (*entity.XMLResumen, error)
}

// Repository lecturas de facturas hacia el store.
type Repository struct {
	api    repository.FacturaAPI
	store  *Store
	parser XMLParser
	log    *logger.Logger
}

// NewRepository construye el repositorio. parser puede ser nil si no se usa FetchXMLResumen.
func NewRepository(api repository.FacturaAPI, s *Store, parser XMLParser, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{api: api, store: s, parser: parser, log: log.WithComponent("facturas")}
}

// Store store de facturas.
func (r *Repository) Store() *Store { return r.store }

// Fetch lee el listado (con parámetros opcionales) y reemplaza las entidades.
// Si falla, el listado previo se conserva y se devuelve el error.
func (r *Repository) Fetch(ctx context.Context, q repository.FacturaQuery) error {
	items, err := r.store.Refresh(ctx, func(ctx context.Context) ([]json.RawMessage, error) {
		return r.api.ListFacturas(ctx, q)
	})
	if err != nil {
		return err
	}
	r.log.Info().Int("count", len(items)).Msg("facturas cargadas")
	return nil
}

// SetFilters aplica un parche de filtros; no toca entidades.
func (r *Repository) SetFilters(p FiltersPatch) {
	r.store.UpdateFilters(p.Apply)
}

// FetchDetail factura con conceptos y pagos.
func (r *Repository) FetchDetail(ctx context.Context, id int64) (*entity.FacturaDetalle, error) {
	return r.api.GetFactura(ctx, id)
}

// FetchXML XML original como texto.
func (r *Repository) FetchXML(ctx context.Context, id int64) (string, error) {
	return r.api.GetFacturaXML(ctx, id)
}

// FetchXMLResumen lee el XML y devuelve sus datos principales.
func (r *Repository) FetchXMLResumen(ctx context.Context, id int64) (*entity.XMLResumen, error) {
	if r.parser == nil {
		return nil, fmt.Errorf("facturas: parser XML no configurado: %w", domain.ErrInvalidInput)
	}
	raw, err := r.api.GetFacturaXML(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.parser.Parse([]byte(raw))
}
