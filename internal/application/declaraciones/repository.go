// Package declaraciones conecta los acuses de declaración con su store y
// completa cada uno con su resumen de conciliación.
package declaraciones

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Repository lecturas de declaraciones y de sus resúmenes.
type Repository struct {
	api   repository.DeclaracionAPI
	store *Store
	limit int
	group singleflight.Group
	log   *logger.Logger
}

// NewRepository construye el repositorio. auxConcurrency limita las lecturas de
// resúmenes simultáneas tras cada Fetch (mínimo 1).
func NewRepository(api repository.DeclaracionAPI, s *Store, auxConcurrency int, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	if auxConcurrency < 1 {
		auxConcurrency = 1
	}
	return &Repository{api: api, store: s, limit: auxConcurrency, log: log.WithComponent("declaraciones")}
}

func (r *Repository) Store() *Store { return r.store }

// Fetch lee el listado, reemplaza las entidades y después pide el resumen de cada
// declaración que aún no lo tiene. Los fallos de resúmenes individuales se ignoran.
func (r *Repository) Fetch(ctx context.Context) error {
	items, err := r.store.Refresh(ctx, r.api.ListDeclaraciones)
	if err != nil {
		return err
	}
	r.log.Info().Int("count", len(items)).Msg("declaraciones cargadas")
	r.loadSummaries(ctx, items)
	return nil
}

func (r *Repository) loadSummaries(ctx context.Context, items []entity.Declaracion) {
	var g errgroup.Group
	g.SetLimit(r.limit)
	pending := 0
	for _, it := range items {
		if r.store.HasAux(it.ID) {
			continue
		}
		id := it.ID
		pending++
		g.Go(func() error {
			if _, err := r.FetchSummary(ctx, id); err != nil {
				r.log.Debug().Err(err).Int64("id", id).Msg("resumen no disponible")
			}
			return nil
		})
	}
	_ = g.Wait()
	if pending > 0 {
		r.log.Debug().Int("requested", pending).Msg("barrido de resúmenes terminado")
	}
}

// FetchSummary devuelve el resumen de id. Se guarda en el store solo si no estaba;
// peticiones concurrentes del mismo id comparten una sola llamada.
func (r *Repository) FetchSummary(ctx context.Context, id int64) (*entity.DeclaracionResumen, error) {
	if v, ok := r.store.Aux(id); ok {
		return &v, nil
	}
	v, err, _ := r.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		if v, ok := r.store.Aux(id); ok {
			return &v, nil
		}
		s, err := r.api.GetDeclaracionResumen(ctx, id)
		if err != nil {
			return nil, err
		}
		if !r.store.HasAux(id) {
			r.store.SetAux(id, *s)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.DeclaracionResumen), nil
}

func (r *Repository) SetFilters(p FiltersPatch) {
	r.store.UpdateFilters(p.Apply)
}

// FetchDetail declaración con extracto de texto del PDF.
func (r *Repository) FetchDetail(ctx context.Context, id int64) (*entity.DeclaracionDetalle, error) {
	return r.api.GetDeclaracion(ctx, id)
}

// ArchivoPath ruta relativa del PDF original (se abre como enlace).
func ArchivoPath(id int64, filename string) string {
	return fmt.Sprintf("/declaraciones/%d/archivo/%s", id, url.PathEscape(filename))
}

// ResumenPath ruta relativa del resumen JSON.
func ResumenPath(id int64) string {
	return fmt.Sprintf("/declaraciones/%d/resumen.json", id)
}
