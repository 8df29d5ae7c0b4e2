package repository

import (
	"context"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	List(ctx context.Context) ([]*entity.Client, error)
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Create(ctx context.Context, c *entity.Client) (int64, error)
	Update(ctx context.Context, id int64, patch entity.ClientPatch) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
