package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de ventas y productos atados a ella.
// Si fn devuelve error se hace rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Tipos de evento publicados tras confirmar la transacción.
const (
	EventSaleCreated = "venta.creada"
	EventSaleDeleted = "venta.eliminada"
)

// Event notificación de una venta creada o eliminada.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	SaleID     int64           `json:"sale_id"`
	ClientID   int64           `json:"client_id,omitempty"`
	EmployeeID int64           `json:"employee_id,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Lines      int             `json:"lines,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos de venta (Kafka o no-op). Best effort: un fallo no revierte la venta.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	Generate(sale *entity.Sale) ([]byte, error)
}

// ReceiptXMLBuilder genera el comprobante XML canónico y su digest SHA-256 en hex.
type ReceiptXMLBuilder interface {
	Build(sale *entity.Sale) (xmlBytes []byte, digest string, err error)
}
