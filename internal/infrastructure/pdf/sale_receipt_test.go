package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/pdf"
)

func TestReceiptGenerator_GeneraPDF(t *testing.T) {
	lines := []entity.SaleLine{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("5.00"), ProductName: "Helecho"},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("15.00"), ProductName: "Maceta de barro"},
	}
	sale := &entity.Sale{
		ID: 12, ClientID: 1, EmployeeID: 1,
		Total:      entity.SaleTotal(lines),
		CreatedAt:  time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		ClientName: "Ana", ClientEmail: "ana@correo.com",
		EmployeeName: "Luis", EmployeeEmail: "luis@vivero.com",
		Lines: lines,
	}

	b, err := pdf.NewReceiptGenerator("").Generate(sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
