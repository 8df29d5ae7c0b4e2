package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, dbError("list categories", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, dbError("scan category", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByName búsqueda exacta sin distinguir mayúsculas (la usa el importador).
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories
		WHERE lower(name) = lower($1) AND deleted_at IS NULL ORDER BY id ASC LIMIT 1`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, sql string, arg any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get category", err)
	}
	return c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description,
	).Scan(&id)
	if err != nil {
		return 0, dbError("insert category", err)
	}
	return id, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id int64, patch entity.CategoryPatch) (bool, error) {
	var s setClause
	if patch.Name.Set {
		s.add("name", patch.Name.Value)
	}
	if patch.Description.Set {
		s.add("description", patch.Description.Ptr())
	}
	if s.empty() {
		return false, nil
	}
	sql, args := s.build("categories", id)
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, dbError("update category", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *CategoryRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, dbError("delete category", err)
	}
	return cmd.RowsAffected() > 0, nil
}
