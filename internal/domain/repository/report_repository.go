package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// ProductSales ventas acumuladas de un producto en un período.
type ProductSales struct {
	ProductID    int64
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// ReportRepository consultas de solo lectura para el tablero de ventas.
// Solo cuentan ventas y líneas no eliminadas.
type ReportRepository interface {
	// SalesTotals suma los totales y cuenta las ventas con created_at en [from, to).
	SalesTotals(ctx context.Context, from, to time.Time) (total decimal.Decimal, count int, err error)

	// TopProducts los `limit` productos con más ingreso en [from, to), de mayor a menor.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)

	// LowStock productos vigentes con stock <= threshold, primero los de menos stock.
	LowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
}
