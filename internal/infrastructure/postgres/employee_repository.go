package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Columnas públicas: nunca incluyen password.
const employeeColumns = `id, name, email, role, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// List devuelve los empleados activos en orden de alta.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, dbError("list employees", err)
	}
	defer rows.Close()
	list := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, dbError("scan employee", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID obtiene un empleado activo; nil si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get employee", err)
	}
	return e, nil
}

// findByEmailSQL compara con lower() igual que employees_email_active_uq,
// así el índice sirve y el email no distingue mayúsculas.
const findByEmailSQL = `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM employees WHERE lower(email) = lower($1) AND deleted_at IS NULL`

// FindByEmailWithPassword es la única lectura que trae el hash (para login).
func (r *EmployeeRepo) FindByEmailWithPassword(ctx context.Context, email string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(ctx, findByEmailSQL, email).Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("find employee by email", err)
	}
	return &e, nil
}

// Create inserta el empleado. PasswordHash ya viene hasheado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO employees (name, email, password, role)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Name, e.Email, e.PasswordHash, e.Role,
	).Scan(&id)
	if err != nil {
		return 0, dbError("insert employee", err)
	}
	return id, nil
}

// Update aplica solo los campos presentes en el patch.
func (r *EmployeeRepo) Update(ctx context.Context, id int64, patch entity.EmployeePatch) (bool, error) {
	var s setClause
	if patch.Name.Set {
		s.add("name", patch.Name.Value)
	}
	if patch.Email.Set {
		s.add("email", patch.Email.Value)
	}
	if patch.Role.Set {
		s.add("role", patch.Role.Value)
	}
	if patch.Password.Set {
		s.add("password", patch.Password.Value)
	}
	if s.empty() {
		return false, nil
	}
	sql, args := s.build("employees", id)
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, dbError("update employee", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SoftDelete marca deleted_at; false si no había fila activa.
func (r *EmployeeRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE employees SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, dbError("delete employee", err)
	}
	return cmd.RowsAffected() > 0, nil
}
