package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"idle", StateIdle, true},
		{"failed", StateFailed, true},
		{"desconocido", State("OTRO"), false},
		{"vacío", State(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.IsValid())
		})
	}
}

func TestMachine_FireInvalid(t *testing.T) {
	m := NewBuilder().Build(StateIdle)
	err := m.Fire(context.Background(), TriggerSubmit)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_GuardFailed(t *testing.T) {
	b := NewBuilder()
	b.Configure(StateIdle).PermitIf(TriggerSubmit, StateUploading, func(context.Context) bool { return false })
	m := b.Build(StateIdle)

	assert.True(t, m.CanFire(TriggerSubmit))
	err := m.Fire(context.Background(), TriggerSubmit)
	assert.True(t, errors.Is(err, ErrGuardFailed))
}

func TestBuild_CopiesConfiguration(t *testing.T) {
	b := NewBuilder()
	b.Configure(StateIdle).Permit(TriggerSelect, StateFilesSelected)
	m := b.Build(StateIdle)

	b.Configure(StateIdle).Permit(TriggerSubmit, StateUploading)
	assert.False(t, m.CanFire(TriggerSubmit), "cambios posteriores al Build no afectan la máquina")
}

func TestImportMachine_Lifecycle(t *testing.T) {
	files := 0
	m := NewImportMachine(func(context.Context) bool { return files > 0 })
	ctx := context.Background()

	require.NoError(t, m.Fire(ctx, TriggerSelect))
	assert.Equal(t, StateIdle, m.State(), "selección vacía queda en IDLE")

	files = 2
	require.NoError(t, m.Fire(ctx, TriggerSelect))
	assert.Equal(t, StateFilesSelected, m.State())

	require.NoError(t, m.Fire(ctx, TriggerSubmit))
	assert.Equal(t, StateUploading, m.State())

	require.NoError(t, m.Fire(ctx, TriggerFail))
	assert.Equal(t, StateFailed, m.State())

	require.NoError(t, m.Fire(ctx, TriggerSubmit), "reintento desde FAILED con archivos conservados")
	require.NoError(t, m.Fire(ctx, TriggerSucceed))
	assert.True(t, m.State().IsSettled())

	assert.Error(t, m.Fire(ctx, TriggerSubmit), "SUCCEEDED requiere nueva selección")
	require.NoError(t, m.Fire(ctx, TriggerClear))
	assert.Equal(t, StateIdle, m.State())
}

func TestImportMachine_SubmitSinArchivos(t *testing.T) {
	m := NewImportMachine(func(context.Context) bool { return false })
	err := m.Fire(context.Background(), TriggerSubmit)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
