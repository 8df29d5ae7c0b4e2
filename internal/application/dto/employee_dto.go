package dto

import (
	"time"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// CreateEmployeeRequest entrada para crear un empleado (password en texto, se hashea en el use case).
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin encargado empleado"`
	Password string `json:"password"`
}

// UpdateEmployeeRequest actualización parcial; las claves ausentes no se tocan.
type UpdateEmployeeRequest struct {
	Name     entity.Optional[string] `json:"name"`
	Email    entity.Optional[string] `json:"email"`
	Role     entity.Optional[string] `json:"role"`
	Password entity.Optional[string] `json:"password"`
}

// EmployeeResponse salida de un empleado (nunca incluye password).
type EmployeeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
