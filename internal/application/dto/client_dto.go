package dto

import (
	"time"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateClientRequest actualización parcial.
type UpdateClientRequest struct {
	Name  entity.Optional[string] `json:"name"`
	Email entity.Optional[string] `json:"email"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
