package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto (JSON o multipart).
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64           `json:"category_id"`
}

// UpdateProductRequest actualización parcial. description y category_id aceptan null.
// La imagen solo se cambia subiendo un archivo o con "image": null para quitarla.
type UpdateProductRequest struct {
	Name        entity.Optional[string]          `json:"name"`
	Description entity.Optional[string]          `json:"description"`
	Price       entity.Optional[decimal.Decimal] `json:"price"`
	Stock       entity.Optional[int]             `json:"stock"`
	CategoryID  entity.Optional[int64]           `json:"category_id"`
	Image       entity.Optional[string]          `json:"image"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  *int64          `json:"category_id"`
	Image       *string         `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
