package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser datos públicos del empleado autenticado.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse token firmado más los datos del empleado (sin password).
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
