package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

// mockReports implementa ReportRepository con funciones configurables.
type mockReports struct {
	totals   func(from, to time.Time) (decimal.Decimal, int, error)
	top      func(from, to time.Time, limit int) ([]repository.ProductSales, error)
	lowStock func(threshold int) ([]*entity.Product, error)
}

func (m *mockReports) SalesTotals(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	return m.totals(from, to)
}

func (m *mockReports) TopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	return m.top(from, to, limit)
}

func (m *mockReports) LowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	return m.lowStock(threshold)
}

var fixedNow = time.Date(2026, time.October, 15, 16, 30, 0, 0, time.UTC)

func TestGetSummary_RangosYMapeo(t *testing.T) {
	var gotLimit, gotThreshold int
	repo := &mockReports{
		totals: func(from, to time.Time) (decimal.Decimal, int, error) {
			assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), to)
			if from.Day() == 1 {
				return decimal.RequireFromString("1250.505"), 40, nil
			}
			assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), from)
			return decimal.RequireFromString("80"), 3, nil
		},
		top: func(from, to time.Time, limit int) ([]repository.ProductSales, error) {
			gotLimit = limit
			return []repository.ProductSales{
				{ProductID: 2, ProductName: "Ficus", QuantitySold: 10, Revenue: decimal.RequireFromString("125")},
			}, nil
		},
		lowStock: func(threshold int) ([]*entity.Product, error) {
			gotThreshold = threshold
			return []*entity.Product{{ID: 9, Name: "Bonsái", Stock: 1}}, nil
		},
	}
	uc := NewDashboardUseCase(repo, 5)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "80", out.TodaySales.String())
	assert.Equal(t, 3, out.TodayCount)
	assert.Equal(t, "1250.51", out.MonthlySales.String())
	assert.Equal(t, 40, out.MonthlyCount)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "Ficus", out.TopProducts[0].ProductName)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, 1, out.LowStock[0].Stock)
	assert.Equal(t, "Octubre 2026", out.DateLabel)
	assert.Equal(t, dashboardTopProducts, gotLimit)
	assert.Equal(t, 5, gotThreshold)
}

func TestGetSummary_PropagaError(t *testing.T) {
	boom := errors.New("sin conexión")
	repo := &mockReports{
		totals: func(time.Time, time.Time) (decimal.Decimal, int, error) { return decimal.Zero, 0, nil },
		top: func(time.Time, time.Time, int) ([]repository.ProductSales, error) {
			return nil, boom
		},
		lowStock: func(int) ([]*entity.Product, error) { return nil, nil },
	}
	_, err := NewDashboardUseCase(repo, 5).GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGetSummary_SinDatosDevuelveListasVacias(t *testing.T) {
	repo := &mockReports{
		totals:   func(time.Time, time.Time) (decimal.Decimal, int, error) { return decimal.Zero, 0, nil },
		top:      func(time.Time, time.Time, int) ([]repository.ProductSales, error) { return nil, nil },
		lowStock: func(int) ([]*entity.Product, error) { return nil, nil },
	}
	out, err := NewDashboardUseCase(repo, 5).GetSummary(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.TopProducts)
	assert.NotNil(t, out.LowStock)
}
