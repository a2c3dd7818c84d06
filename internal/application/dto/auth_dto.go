package dto

import "time"

// LoginRequest credenciales de acceso. Sirve para ambos espacios: primero se
// busca el email entre usuarios de tenant y después entre super admins.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse resultado del login. El token NUNCA viaja en el cuerpo:
// se entrega en la cookie http-only "auth-token".
type LoginResponse struct {
	User UserResponse `json:"user"`
}

// UserResponse perfil público de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Avatar    string     `json:"avatar,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpdateProfileRequest cambios permitidos sobre el propio perfil.
// Role, CompanyID y password quedan fuera a propósito.
type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// UpdatePasswordRequest cambio de contraseña verificando la actual.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
