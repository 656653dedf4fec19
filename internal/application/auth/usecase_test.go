package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/pkg/jwt"
)

type memStorage struct {
	data   map[string]string
	setErr error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string]string{}} }

func (m *memStorage) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

var testJWT = JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "cfdi-visor"}

func TestLoginMock_ValoresPorDefecto(t *testing.T) {
	st := newMemStorage()
	uc := NewSessionUseCase(st, testJWT, nil)

	u, err := uc.LoginMock("", "")
	require.NoError(t, err)

	assert.Equal(t, entity.SessionUser{ID: "mock-user", Name: "Demo", Role: "admin"}, *u)
	assert.JSONEq(t, `{"id":"mock-user","name":"Demo","role":"admin"}`, st.data[StorageKey])
}

func TestRestore(t *testing.T) {
	st := newMemStorage()
	st.data[StorageKey] = `{"id":"mock-user","name":"Ana","role":"lector"}`

	uc := NewSessionUseCase(st, testJWT, nil)

	require.NotNil(t, uc.Current())
	assert.Equal(t, "Ana", uc.Current().Name)
}

func TestRestore_EntradaCorruptaSePurga(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json inválido", `{no es json`},
		{"null", `null`},
		{"objeto vacío", `{}`},
		{"sin id", `{"name":"Ana","role":"admin"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStorage()
			st.data[StorageKey] = tt.raw

			uc := NewSessionUseCase(st, testJWT, nil)

			assert.Nil(t, uc.Current())
			_, ok := st.data[StorageKey]
			assert.False(t, ok, "la entrada se purga")
			_, err := uc.IssueToken()
			assert.ErrorIs(t, err, domain.ErrNoSession)
		})
	}
}

func TestLogout(t *testing.T) {
	st := newMemStorage()
	uc := NewSessionUseCase(st, testJWT, nil)
	_, err := uc.LoginMock("Demo", "admin")
	require.NoError(t, err)

	var seen []*entity.SessionUser
	uc.Subscribe(func(u *entity.SessionUser) { seen = append(seen, u) })
	require.NoError(t, uc.Logout())

	assert.Nil(t, uc.Current())
	assert.Empty(t, st.data)
	require.Len(t, seen, 1)
	assert.Nil(t, seen[0])
}

func TestLoginMock_ErrorDeAlmacenamiento(t *testing.T) {
	st := newMemStorage()
	st.setErr = errors.New("disco lleno")
	uc := NewSessionUseCase(st, testJWT, nil)

	_, err := uc.LoginMock("", "")

	assert.Error(t, err)
	assert.Nil(t, uc.Current(), "sin persistir no hay sesión")
}

func TestIssueToken(t *testing.T) {
	uc := NewSessionUseCase(newMemStorage(), testJWT, nil)

	_, err := uc.IssueToken()
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = uc.LoginMock("Demo", "admin")
	require.NoError(t, err)
	token, err := uc.IssueToken()
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "mock-user", claims.UserID)
}
