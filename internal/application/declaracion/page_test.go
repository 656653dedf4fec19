package declaracion

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/application/busy"
	"github.com/jhoicas/cfdi-visor/internal/application/notify"
	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
)

type fakeAPI struct {
	err    error
	calls  int
	source string
}

func (f *fakeAPI) GetDeclaracionMensual(_ context.Context, year, month int, source string) (*entity.DeclaracionMensual, error) {
	f.calls++
	f.source = source
	if f.err != nil {
		return nil, f.err
	}
	return &entity.DeclaracionMensual{
		Year: year, Month: month, IncomeSource: source, EffectiveIncomeSource: "plataforma",
		IngresosBase: decimal.RequireFromString("12500.00"),
		Checks:       []entity.DeclaracionCheck{{Level: entity.CheckOK, Title: "Ingresos", Detail: "cuadra"}},
	}, nil
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func newPage(api *fakeAPI) (*Page, *notify.Queue) {
	q := notify.New(0, notify.WithAfterFunc(func(time.Duration, func()) notify.Timer { return noopTimer{} }))
	return New(api, busy.New(), notify.NewReporter(q), "http://api.local/api/v1", nil), q
}

func TestLoad_ValidaPeriodo(t *testing.T) {
	api := &fakeAPI{}
	p, q := newPage(api)

	_, err := p.Load(context.Background(), 2024, 0, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.calls)
	require.Len(t, q.Active(), 1)
	assert.Equal(t, notify.LevelWarning, q.Active()[0].Level)
	assert.Equal(t, MsgSelectPeriod, q.Active()[0].Message)
}

func TestLoad_Exito(t *testing.T) {
	api := &fakeAPI{}
	p, q := newPage(api)

	d, err := p.Load(context.Background(), 2024, 3, "")

	require.NoError(t, err)
	assert.Equal(t, entity.IncomeSourceAuto, api.source)
	assert.Equal(t, "2024-03", d.PeriodLabel())
	assert.Same(t, d, p.Current())
	assert.Empty(t, q.Active())
}

func TestLoad_ErrorLimpiaVista(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   notify.Level
		message string
	}{
		{"404", domain.ErrNotFound, notify.LevelWarning, MsgNotFound},
		{"5xx", domain.ErrServer, notify.LevelError, notify.MsgServer},
		{"otro", domain.ErrInvalidInput, notify.LevelError, MsgLoadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			p, q := newPage(api)
			_, err := p.Load(context.Background(), 2024, 3, entity.IncomeSourceCFDI)
			require.NoError(t, err)

			api.err = tt.err
			_, err = p.Load(context.Background(), 2024, 4, entity.IncomeSourceCFDI)

			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, p.Current(), "la vista se limpia en error")
			require.Len(t, q.Active(), 1)
			assert.Equal(t, tt.level, q.Active()[0].Level)
			assert.Equal(t, tt.message, q.Active()[0].Message)
		})
	}
}

func TestLoad_FuenteInvalida(t *testing.T) {
	api := &fakeAPI{}
	p, _ := newPage(api)
	_, err := p.Load(context.Background(), 2024, 3, "todo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.calls)
}

func TestURLs(t *testing.T) {
	p, _ := newPage(&fakeAPI{})

	u, ok := p.CSVURL(2024, 3, entity.IncomeSourceAmbos)
	require.True(t, ok)
	assert.Equal(t, "http://api.local/api/v1/sat_report.csv?year=2024&month=3&income_source=ambos", u)

	u, ok = p.HojaURL(2024, 3, "")
	require.True(t, ok)
	assert.Equal(t, "http://api.local/api/v1/sat_hoja.txt?year=2024&month=3&income_source=auto", u)

	_, ok = p.CSVURL(0, 3, "")
	assert.False(t, ok)

	assert.Equal(t, "http://api.local/api/v1/declaraciones/9/archivo/acuse%20marzo.pdf",
		p.PDFURL(entity.DeclaracionPDF{ID: 9, Filename: "acuse marzo.pdf"}))
}
