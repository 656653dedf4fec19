package retenciones

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

type (
	Store = store.Store[entity.Retencion, Filters, struct{}]
	View  = query.View[entity.Retencion, Filters, struct{}]
)

// NewStore crea el store vacío.
func NewStore(log *logger.Logger) *Store {
	return store.New[entity.Retencion, Filters, struct{}]("retenciones", Filters{}, log)
}

// Spec un periodo vacío no filtra.
var Spec = query.Spec[entity.Retencion, Filters]{
	Match: func(r entity.Retencion, f Filters) bool {
		if f.Period == nil || *f.Period == "" {
			return true
		}
		k, ok := r.PeriodKey()
		return ok && k == *f.Period
	},
	Period: entity.Retencion.PeriodKey,
}

// NewView crea la vista sobre s.
func NewView(s *Store) *View { return query.NewView(s, Spec) }
