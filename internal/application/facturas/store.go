package facturas

import (
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/state/query"
	"github.com/jhoicas/cfdi-visor/internal/state/store"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// Filters filtros de la vista de facturas; nil significa sin filtrar.
type Filters struct {
	Year       *int    `json:"year"`
	Month      *int    `json:"month"`
	Tipo       *string `json:"tipo"`
	Naturaleza *string `json:"naturaleza"`
}

// FiltersPatch parche parcial: solo las claves presentes cambian; null limpia.
type FiltersPatch struct {
	Year       store.Field[int]    `json:"year"`
	Month      store.Field[int]    `json:"month"`
	Tipo       store.Field[string] `json:"tipo"`
	Naturaleza store.Field[string] `json:"naturaleza"`
}

// Apply fusiona el parche sobre f.
func (p FiltersPatch) Apply(f Filters) Filters {
	p.Year.Apply(&f.Year)
	p.Month.Apply(&f.Month)
	p.Tipo.Apply(&f.Tipo)
	p.Naturaleza.Apply(&f.Naturaleza)
	return f
}

// Store de facturas; no lleva datos auxiliares.
type Store = store.Store[entity.Factura, Filters, struct{}]

// View vista derivada de facturas.
type View = query.View[entity.Factura, Filters, struct{}]

// NewStore crea el store vacío.
func NewStore(log *logger.Logger) *Store {
	return store.New[entity.Factura, Filters, struct{}]("facturas", Filters{}, log)
}

// Spec filtra por igualdad exacta en cada filtro activo.
var Spec = query.Spec[entity.Factura, Filters]{
	Match: func(f entity.Factura, flt Filters) bool {
		if flt.Year != nil && !eqInt(f.YearEmision, *flt.Year) {
			return false
		}
		if flt.Month != nil && !eqInt(f.MonthEmision, *flt.Month) {
			return false
		}
		if flt.Tipo != nil && !eqStr(f.TipoComprobante, *flt.Tipo) {
			return false
		}
		if flt.Naturaleza != nil && !eqStr(f.Naturaleza, *flt.Naturaleza) {
			return false
		}
		return true
	},
	Period: entity.Factura.PeriodKey,
}

// NewView crea la vista sobre s.
func NewView(s *Store) *View { return query.NewView(s, Spec) }

func eqInt(v *int, want int) bool       { return v != nil && *v == want }
func eqStr(v *string, want string) bool { return v != nil && *v == want }
