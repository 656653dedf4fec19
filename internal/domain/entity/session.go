package entity

// Roles de la sesión simulada.
const (
	RoleAdmin = "admin"
)

// SessionUser usuario de la sesión persistida ({id, name, role}).
type SessionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
