package dto

import "github.com/jhoicas/cfdi-visor/internal/domain/entity"

// LoginRequest datos opcionales de la sesión simulada.
type LoginRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SessionResponse usuario actual y token para las rutas protegidas.
type SessionResponse struct {
	User  *entity.SessionUser `json:"user"`
	Token string              `json:"token,omitempty"`
}
