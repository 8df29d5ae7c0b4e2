package repository

import (
	"context"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) (int64, error)
	Update(ctx context.Context, id int64, patch entity.CategoryPatch) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
