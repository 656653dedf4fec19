package declaraciones

import (
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/state/query"
	"github.com/jhoicas/cfdi-visor/internal/state/store"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Filters filtro por periodo YYYY-MM.
type Filters struct {
	Period *string `json:"period"`
}

// FiltersPatch parche de filtros.
type FiltersPatch struct {
	Period store.Field[string] `json:"period"`
}

// Apply fusiona el parche.
func (p FiltersPatch) Apply(f Filters) Filters {
	p.Period.Apply(&f.Period)
	return f
}

// Store guarda, además de las declaraciones, el resumen de conciliación por id.
type Store = store.Store[entity.Declaracion, Filters, entity.DeclaracionResumen]

// View filas con su resumen (nil mientras no llega).
type View = query.View[entity.Declaracion, Filters, entity.DeclaracionResumen]

// Row declaración con su resumen.
type Row = query.Row[entity.Declaracion, entity.DeclaracionResumen]

// NewStore crea el store vacío.
func NewStore(log *logger.Logger) *Store {
	return store.New[entity.Declaracion, Filters, entity.DeclaracionResumen]("declaraciones", Filters{}, log)
}

var Spec = query.Spec[entity.Declaracion, Filters]{
	Match: func(d entity.Declaracion, f Filters) bool {
		if f.Period == nil || *f.Period == "" {
			return true
		}
		k, ok := d.PeriodKey()
		return ok && k == *f.Period
	},
	Period: entity.Declaracion.PeriodKey,
}

// NewView crea la vista sobre s.
func NewView(s *Store) *View { return query.NewView(s, Spec) }
