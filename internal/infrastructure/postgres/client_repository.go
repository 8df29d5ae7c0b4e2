package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM clients WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, dbError("list clients", err)
	}
	defer rows.Close()
	list := make([]*entity.Client, 0)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dbError("scan client", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM clients WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get client", err)
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO clients (name, email) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Email,
	).Scan(&id)
	if err != nil {
		return 0, dbError("insert client", err)
	}
	return id, nil
}

func (r *ClientRepo) Update(ctx context.Context, id int64, patch entity.ClientPatch) (bool, error) {
	var s setClause
	if patch.Name.Set {
		s.add("name", patch.Name.Value)
	}
	if patch.Email.Set {
		s.add("email", patch.Email.Value)
	}
	if s.empty() {
		return false, nil
	}
	sql, args := s.build("clients", id)
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, dbError("update client", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ClientRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE clients SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, dbError("delete client", err)
	}
	return cmd.RowsAffected() > 0, nil
}
