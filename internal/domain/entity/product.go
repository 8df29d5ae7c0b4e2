package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
// Image es la ruta pública de la imagen (ej. /img/productos/producto_3.jpg).
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *int64
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch actualización parcial de un producto.
type ProductPatch struct {
	Name        Optional[string]
	Description Optional[string] // anulable
	Price       Optional[decimal.Decimal]
	Stock       Optional[int]
	CategoryID  Optional[int64]  // anulable
	Image       Optional[string] // anulable
}

// IsEmpty indica que no hay ningún campo que actualizar.
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Price.Set && !p.Stock.Set && !p.CategoryID.Set && !p.Image.Set
}
