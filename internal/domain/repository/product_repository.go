package repository

import (
	"context"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) (int64, error)
	Update(ctx context.Context, id int64, patch entity.ProductPatch) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	// DecrementStock resta quantity solo si hay stock suficiente (stock >= quantity).
	// Devuelve false si el producto no existe o el stock no alcanza.
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
}
