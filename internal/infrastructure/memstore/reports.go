package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

type ReportRepo struct{ s *Store }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *ReportRepo) SalesTotals(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total, count := decimal.Zero, 0
	for _, id := range r.s.data.sales.ids() {
		v := r.s.data.sales.rows[id].v
		if inRange(v.CreatedAt, from, to) {
			total = total.Add(v.Total)
			count++
		}
	}
	return total, count, nil
}

func (r *ReportRepo) TopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc := make(map[int64]*repository.ProductSales)
	for _, lid := range r.s.data.lines.ids() {
		l := r.s.data.lines.rows[lid].v
		sale, ok := r.s.data.sales.active(l.SaleID)
		if !ok || !inRange(sale.v.CreatedAt, from, to) {
			continue
		}
		ps, ok := acc[l.ProductID]
		if !ok {
			ps = &repository.ProductSales{ProductID: l.ProductID, Revenue: decimal.Zero}
			if p, found := r.s.data.products.rows[l.ProductID]; found {
				ps.ProductName = p.v.Name
			}
			acc[l.ProductID] = ps
		}
		ps.QuantitySold += l.Quantity
		ps.Revenue = ps.Revenue.Add(l.Subtotal())
	}

	out := make([]repository.ProductSales, 0, len(acc))
	for _, ps := range acc {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) LowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, id := range r.s.data.products.ids() {
		p := r.s.data.products.rows[id].v
		if p.Stock <= threshold {
			out = append(out, &p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}
