package repository

import (
	"context"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Ninguna lectura devuelve PasswordHash salvo FindByEmailWithPassword.
type EmployeeRepository interface {
	List(ctx context.Context) ([]*entity.Employee, error)
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*entity.Employee, error)
	Create(ctx context.Context, e *entity.Employee) (int64, error)
	// Update aplica el patch; PasswordHash, si viene, ya está hasheado.
	Update(ctx context.Context, id int64, patch entity.EmployeePatch) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
