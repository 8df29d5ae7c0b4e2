package repository

import (
	"context"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// List devuelve las ventas activas con nombres de cliente/empleado, más recientes primero (sin líneas).
	List(ctx context.Context) ([]*entity.Sale, error)
	// GetByID devuelve la venta con sus líneas activas; nil si no existe o está eliminada.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	CreateHeader(ctx context.Context, s *entity.Sale) (int64, error)
	CreateLines(ctx context.Context, saleID int64, lines []entity.SaleLine) error
	// SoftDelete marca la cabecera y, si existía, sus líneas. Devuelve false si no había venta activa.
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
