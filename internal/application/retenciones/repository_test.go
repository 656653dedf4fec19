package retenciones

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/state/store"
)

type fakeAPI struct {
	list   []json.RawMessage
	detail *entity.RetencionDetalle
}

func (f *fakeAPI) ListRetenciones(context.Context) ([]json.RawMessage, error) {
	return f.list, nil
}

func (f *fakeAPI) GetRetencion(context.Context, int64) (*entity.RetencionDetalle, error) {
	if f.detail == nil {
		return nil, domain.ErrNotFound
	}
	return f.detail, nil
}

type echoParser struct{}

func (echoParser) Parse(xml []byte) (*entity.XMLResumen, error) {
	return &entity.XMLResumen{Kind: entity.XMLKindRetenciones, UUID: string(xml)}, nil
}

func TestFetchYPeriodos(t *testing.T) {
	api := &fakeAPI{list: []json.RawMessage{
		json.RawMessage(`{"id": 1, "ejercicio": 2024, "mes_ini": 3}`),
		json.RawMessage(`{"id": 2, "ejercicio": 2024, "mes_ini": 12}`),
		json.RawMessage(`{"id": 3, "ejercicio": 2024, "mes_ini": 0}`),
		json.RawMessage(`{"id": 4.5}`),
	}}
	repo := NewRepository(api, NewStore(nil), echoParser{}, nil)
	view := NewView(repo.Store())
	defer view.Close()

	require.NoError(t, repo.Fetch(context.Background()))

	res := view.Current()
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []string{"2024-12", "2024-03"}, res.Periods)

	repo.SetFilters(FiltersPatch{Period: store.Set("2024-03")})
	res = view.Current()
	require.Equal(t, 1, res.Count)
	assert.Equal(t, int64(1), res.Items[0].ID)

	repo.SetFilters(FiltersPatch{Period: store.Set("")})
	assert.Equal(t, 3, view.Current().Count, "periodo vacío no filtra")
}

func TestFetchXMLResumen(t *testing.T) {
	xml := "uuid-xml"
	api := &fakeAPI{detail: &entity.RetencionDetalle{XMLText: &xml}}
	repo := NewRepository(api, NewStore(nil), echoParser{}, nil)

	res, err := repo.FetchXMLResumen(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "uuid-xml", res.UUID)

	api.detail = &entity.RetencionDetalle{}
	_, err = repo.FetchXMLResumen(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
