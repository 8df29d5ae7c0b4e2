package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea de la venta tal como la envía el cliente.
type SaleLineRequest struct {
	ProductID int64            `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
}

// CreateSaleRequest entrada para registrar una venta. El empleado sale del token.
type CreateSaleRequest struct {
	ClientID int64             `json:"client_id" validate:"required"`
	Lines    []SaleLineRequest `json:"lines" validate:"required,min=1"`
}

// SaleLineResponse línea de venta con datos del producto.
type SaleLineResponse struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product_id"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ProductName        string          `json:"product_name"`
	ProductDescription *string         `json:"product_description"`
}

// SaleResponse cabecera de venta con nombres de cliente/empleado; Lines solo en el detalle.
type SaleResponse struct {
	ID            int64              `json:"id"`
	ClientID      int64              `json:"client_id"`
	EmployeeID    int64              `json:"employee_id"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	ClientName    string             `json:"client_name"`
	ClientEmail   string             `json:"client_email"`
	EmployeeName  string             `json:"employee_name"`
	EmployeeEmail string             `json:"employee_email"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}
