package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, price, stock, category_id, image, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List lista los productos activos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, dbError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dbError("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto activo por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get product", err)
	}
	return p, nil
}

// Create persiste un nuevo producto. La imagen se asigna después, cuando ya se conoce el id.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, category_id, image)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.Image,
	).Scan(&id)
	if err != nil {
		return 0, dbError("insert product", err)
	}
	return id, nil
}

// Update aplica solo los campos presentes; description, category_id e image aceptan null.
func (r *ProductRepo) Update(ctx context.Context, id int64, patch entity.ProductPatch) (bool, error) {
	var s setClause
	if patch.Name.Set {
		s.add("name", patch.Name.Value)
	}
	if patch.Description.Set {
		s.add("description", patch.Description.Ptr())
	}
	if patch.Price.Set {
		s.add("price", patch.Price.Value)
	}
	if patch.Stock.Set {
		s.add("stock", patch.Stock.Value)
	}
	if patch.CategoryID.Set {
		s.add("category_id", patch.CategoryID.Ptr())
	}
	if patch.Image.Set {
		s.add("image", patch.Image.Ptr())
	}
	if s.empty() {
		return false, nil
	}
	sql, args := s.build("products", id)
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, dbError("update product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SoftDelete marca el producto como eliminado.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, dbError("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DecrementStock descuenta en una sola sentencia con el piso en el WHERE,
// así dos ventas concurrentes no pueden dejar el stock negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND stock >= $2`, id, quantity)
	if err != nil {
		return false, dbError("decrement stock", err)
	}
	return cmd.RowsAffected() > 0, nil
}
