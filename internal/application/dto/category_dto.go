package dto

import (
	"time"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest actualización parcial. description: null la limpia.
type UpdateCategoryRequest struct {
	Name        entity.Optional[string] `json:"name"`
	Description entity.Optional[string] `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
