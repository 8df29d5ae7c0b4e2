package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas y líneas. Se usa con pool para lecturas y con tx
// (vía TxRunner) para crear y eliminar.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Los LEFT JOIN toleran cliente/empleado eliminados después de la venta.
const saleHeaderSelect = `
	SELECT s.id, s.client_id, s.employee_id, s.total, s.created_at, s.updated_at,
	       COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(e.name, ''), COALESCE(e.email, '')
	FROM sales s
	LEFT JOIN clients c ON c.id = s.client_id
	LEFT JOIN employees e ON e.id = s.employee_id`

func scanSaleHeader(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.ClientID, &s.EmployeeID, &s.Total, &s.CreatedAt, &s.UpdatedAt,
		&s.ClientName, &s.ClientEmail, &s.EmployeeName, &s.EmployeeEmail); err != nil {
		return nil, err
	}
	return &s, nil
}

// List devuelve las cabeceras activas, más recientes primero.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleHeaderSelect+` WHERE s.deleted_at IS NULL ORDER BY s.id DESC`)
	if err != nil {
		return nil, dbError("list sales", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSaleHeader(rows)
		if err != nil {
			return nil, dbError("scan sale", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID cabecera más líneas activas con nombre y descripción del producto.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSaleHeader(r.q.QueryRow(ctx, saleHeaderSelect+` WHERE s.id = $1 AND s.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get sale", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.sale_id, l.product_id, l.quantity, l.unit_price,
		       COALESCE(p.name, ''), p.description
		FROM sale_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1 AND l.deleted_at IS NULL
		ORDER BY l.id ASC`, id)
	if err != nil {
		return nil, dbError("get sale lines", err)
	}
	defer rows.Close()
	s.Lines = make([]entity.SaleLine, 0)
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.ProductName, &l.ProductDescription); err != nil {
			return nil, dbError("scan sale line", err)
		}
		s.Lines = append(s.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("get sale lines", err)
	}
	return s, nil
}

// CreateHeader inserta la cabecera con el total ya calculado.
func (r *SaleRepo) CreateHeader(ctx context.Context, s *entity.Sale) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO sales (client_id, employee_id, total) VALUES ($1, $2, $3) RETURNING id`,
		s.ClientID, s.EmployeeID, s.Total,
	).Scan(&id)
	if err != nil {
		return 0, dbError("insert sale", err)
	}
	return id, nil
}

// CreateLines inserta todas las líneas en un único batch.
func (r *SaleRepo) CreateLines(ctx context.Context, saleID int64, lines []entity.SaleLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
			saleID, l.ProductID, l.Quantity, l.UnitPrice)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return dbError("insert sale lines", err)
		}
	}
	return nil
}

// SoftDelete marca cabecera y líneas. Debe correr dentro de una tx.
func (r *SaleRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, dbError("delete sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE sale_lines SET deleted_at = now() WHERE sale_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return false, dbError("delete sale lines", err)
	}
	return true, nil
}
