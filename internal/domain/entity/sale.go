package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Total se calcula al crearla y queda congelado.
// Los campos Client*/Employee* vienen del join y son solo de lectura.
type Sale struct {
	ID            int64
	ClientID      int64
	EmployeeID    int64
	Total         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClientName    string
	ClientEmail   string
	EmployeeName  string
	EmployeeEmail string
	Lines         []SaleLine
}

// SaleLine una línea de la venta: producto, cantidad y precio unitario congelados al vender.
type SaleLine struct {
	ID                 int64
	SaleID             int64
	ProductID          int64
	Quantity           int
	UnitPrice          decimal.Decimal
	ProductName        string
	ProductDescription *string
}

// Subtotal cantidad × precio unitario.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SaleTotal suma cantidad × precio unitario de todas las líneas, redondeado a centavos.
func SaleTotal(lines []SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}
