package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/vivero?sslmode=disable", pgx5URL("postgres://u:p@db:5432/vivero?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/vivero", pgx5URL("postgresql://u@db/vivero"))
	assert.Equal(t, "pgx5://ya/convertido", pgx5URL("pgx5://ya/convertido"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
}

func TestSetClause_Build(t *testing.T) {
	var s setClause
	assert.True(t, s.empty())
	s.add("name", "Helecho")
	s.add("description", nil)

	sql, args := s.build("products", 9)
	assert.Equal(t, "UPDATE products SET name = $1, description = $2, updated_at = now() WHERE id = $3 AND deleted_at IS NULL", sql)
	assert.Equal(t, []any{"Helecho", nil, int64(9)}, args)
}

// El login compara por lower(email), la misma expresión del índice único de empleados.
func TestFindByEmail_MismaExpresionQueElIndiceUnico(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "employees_email_active_uq ON employees (lower(email))")
	assert.Contains(t, findByEmailSQL, "lower(email) = lower($1)")
}
