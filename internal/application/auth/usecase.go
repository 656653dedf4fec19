package auth

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/cfdi-visor/internal/domain"
	"github.com/jhoicas/cfdi-visor/internal/domain/entity"
	"github.com/jhoicas/cfdi-visor/internal/domain/repository"
	"github.com/jhoicas/cfdi-visor/pkg/jwt"
	"github.com/jhoicas/cfdi-visor/pkg/logger"
)

// StorageKey clave de la sesión en el almacenamiento persistente.
const StorageKey = "cfdi.auth.user"

// Valores de la sesión simulada.
const (
	MockUserID  = "mock-user"
	DefaultName = "Demo"
	DefaultRole = entity.RoleAdmin
)

// JWTConfig configuración para generación de tokens del servidor local.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionUseCase sesión simulada persistida en almacenamiento clave/valor.
type SessionUseCase struct {
	storage repository.KeyValueStorage
	jwtCfg  JWTConfig
	log     *logger.Logger

	mu      sync.RWMutex
	user    *entity.SessionUser
	subs    map[int]func(*entity.SessionUser)
	nextSub int
}

// NewSessionUseCase construye el caso de uso y restaura la sesión guardada.
func NewSessionUseCase(storage repository.KeyValueStorage, jwtCfg JWTConfig, log *logger.Logger) *SessionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &SessionUseCase{
		storage: storage,
		jwtCfg:  jwtCfg,
		log:     log.WithComponent("auth"),
		subs:    make(map[int]func(*entity.SessionUser)),
	}
	uc.Restore()
	return uc
}

// Restore lee la sesión guardada. Una entrada corrupta se elimina.
func (uc *SessionUseCase) Restore() *entity.SessionUser {
	raw, ok, err := uc.storage.Get(StorageKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo leer la sesión")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var u entity.SessionUser
	err = json.Unmarshal([]byte(raw), &u)
	if err == nil && u.ID == "" {
		// "null" o "{}" decodifican sin error pero no son una sesión.
		err = fmt.Errorf("sesión sin id")
	}
	if err != nil {
		uc.log.Warn().Err(err).Msg("sesión corrupta; se elimina")
		if derr := uc.storage.Delete(StorageKey); derr != nil {
			uc.log.Error().Err(derr).Msg("no se pudo eliminar la sesión corrupta")
		}
		return nil
	}
	uc.mu.Lock()
	uc.user = &u
	uc.mu.Unlock()
	return &u
}

// LoginMock inicia la sesión simulada. name y role vacíos toman Demo y admin.
func (uc *SessionUseCase) LoginMock(name, role string) (*entity.SessionUser, error) {
	if name == "" {
		name = DefaultName
	}
	if role == "" {
		role = DefaultRole
	}
	u := &entity.SessionUser{ID: MockUserID, Name: name, Role: role}
	if err := uc.setUser(u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("name", name).Str("role", role).Msg("sesión iniciada")
	return u, nil
}

// Logout cierra la sesión y borra el almacenamiento.
func (uc *SessionUseCase) Logout() error {
	if err := uc.setUser(nil); err != nil {
		return err
	}
	uc.log.Info().Msg("sesión cerrada")
	return nil
}

func (uc *SessionUseCase) setUser(u *entity.SessionUser) error {
	if u != nil {
		b, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := uc.storage.Set(StorageKey, string(b)); err != nil {
			return fmt.Errorf("guardar sesión: %w", err)
		}
	} else if err := uc.storage.Delete(StorageKey); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}

	uc.mu.Lock()
	uc.user = u
	fns := make([]func(*entity.SessionUser), 0, len(uc.subs))
	for _, fn := range uc.subs {
		fns = append(fns, fn)
	}
	uc.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
	return nil
}

// Current usuario actual o nil.
func (uc *SessionUseCase) Current() *entity.SessionUser {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.user == nil {
		return nil
	}
	u := *uc.user
	return &u
}

// Subscribe recibe el usuario tras cada login/logout.
func (uc *SessionUseCase) Subscribe(fn func(*entity.SessionUser)) (unsubscribe func()) {
	uc.mu.Lock()
	id := uc.nextSub
	uc.nextSub++
	uc.subs[id] = fn
	uc.mu.Unlock()
	return func() {
		uc.mu.Lock()
		delete(uc.subs, id)
		uc.mu.Unlock()
	}
}

// IssueToken firma un JWT para el usuario actual. ErrNoSession si no hay sesión.
func (uc *SessionUseCase) IssueToken() (string, error) {
	u := uc.Current()
	if u == nil {
		return "", domain.ErrNoSession
	}
	return jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Name, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
