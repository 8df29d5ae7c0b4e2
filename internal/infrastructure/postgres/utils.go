package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/viverodavinci/vivero-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// dbError traduce errores del driver a errores de dominio.
// 23505 -> ErrDuplicate; cualquier otro PgError -> ErrDatabase; el resto se envuelve tal cual.
func dbError(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.WrapError(domain.ErrDuplicate, "El registro ya existe", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.WrapError(domain.ErrDatabase, "Error en la base de datos", fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// setClause acumula asignaciones "col = $n" para un UPDATE dinámico.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

// build arma el UPDATE filtrando por id y deleted_at IS NULL. El id es el último argumento.
func (s *setClause) build(table string, id int64) (string, []any) {
	args := append(s.args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s, updated_at = now() WHERE id = $%d AND deleted_at IS NULL",
		table, strings.Join(s.cols, ", "), len(args))
	return sql, args
}
