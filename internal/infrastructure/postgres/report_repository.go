package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el tablero.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals usa COALESCE para devolver cero si el período no tiene ventas.
func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COUNT(*)
	FROM sales
	WHERE deleted_at IS NULL
	  AND created_at >= $1 AND created_at < $2`

	var total decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, dbError("reports.SalesTotals", err)
	}
	return total, count, nil
}

func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(l.quantity)                AS quantity_sold,
	    SUM(l.quantity * l.unit_price) AS revenue
	FROM sale_lines l
	JOIN sales    s ON s.id = l.sale_id
	JOIN products p ON p.id = l.product_id
	WHERE s.deleted_at IS NULL
	  AND l.deleted_at IS NULL
	  AND s.created_at >= $1 AND s.created_at < $2
	GROUP BY p.id, p.name
	ORDER BY revenue DESC, p.id ASC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, dbError("reports.TopProducts", err)
	}
	defer rows.Close()

	results := []repository.ProductSales{}
	for rows.Next() {
		var item repository.ProductSales
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.QuantitySold, &item.Revenue); err != nil {
			return nil, fmt.Errorf("reports.TopProducts scan: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("reports.TopProducts", err)
	}
	return results, nil
}

func (r *ReportRepo) LowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products
		WHERE deleted_at IS NULL AND stock <= $1 ORDER BY stock ASC, id ASC`, threshold)
	if err != nil {
		return nil, dbError("reports.LowStock", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("reports.LowStock scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
