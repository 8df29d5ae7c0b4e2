package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// KPIs del día y del mes en curso, el top de productos del mes y los productos con poco stock.
type DashboardSummaryDTO struct {
	// Día actual (00:00 – 23:59)
	TodaySales decimal.Decimal `json:"today_sales"`
	TodayCount int             `json:"today_count"`

	// Mes en curso (día 1 – hoy)
	MonthlySales decimal.Decimal `json:"monthly_sales"`
	MonthlyCount int             `json:"monthly_count"`

	TopProducts []TopProductDTO      `json:"top_products"`
	LowStock    []LowStockProductDTO `json:"low_stock"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// TopProductDTO un producto del ranking de ingresos.
type TopProductDTO struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// LowStockProductDTO producto en o por debajo del umbral de reposición.
type LowStockProductDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}
