// Package analytics contiene el tablero de ventas del vivero.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

const dashboardTopProducts = 5 // productos en el widget del tablero

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
// No toca las tablas directamente; delega todo en ReportRepository.
type DashboardUseCase struct {
	reports           repository.ReportRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold es el stock a partir del
// cual un producto se considera por reponer.
func NewDashboardUseCase(reports repository.ReportRepository, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary lanza las cuatro consultas en paralelo:
//  1. SalesTotals(hoy)
//  2. SalesTotals(mes)
//  3. TopProducts(mes, top 5)
//  4. LowStock(umbral)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		todayTotal, monthTotal decimal.Decimal
		todayCount, monthCount int
		top                    []repository.ProductSales
		low                    []*entity.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todayTotal, todayCount, err = uc.reports.SalesTotals(gctx, todayStart, tomorrow)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		monthTotal, monthCount, err = uc.reports.SalesTotals(gctx, monthStart, tomorrow)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		top, err = uc.reports.TopProducts(gctx, monthStart, tomorrow, dashboardTopProducts)
		if err != nil {
			return fmt.Errorf("dashboard: top productos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		low, err = uc.reports.LowStock(gctx, uc.lowStockThreshold)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		TodaySales:   todayTotal.Round(2),
		TodayCount:   todayCount,
		MonthlySales: monthTotal.Round(2),
		MonthlyCount: monthCount,
		TopProducts:  make([]dto.TopProductDTO, 0, len(top)),
		LowStock:     make([]dto.LowStockProductDTO, 0, len(low)),
		DateLabel:    monthLabel(now),
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			TotalRevenue: p.Revenue.Round(2),
		})
	}
	for _, p := range low {
		out.LowStock = append(out.LowStock, dto.LowStockProductDTO{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
