package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"github.com/viverodavinci/vivero-api/pkg/config"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

const (
	msgSaleNotFound    = "Venta no encontrada"
	msgSaleNeedsClient = "La venta debe tener un cliente asociado"
	msgSaleNeedsLines  = "La venta debe tener al menos un producto"
	msgLineIncomplete  = "Cada producto debe tener producto_id, cantidad y precio_unitario"
	msgLineQuantity    = "La cantidad debe ser mayor a 0"
	msgLineUnitPrice   = "El precio unitario debe ser mayor o igual a 0"
	msgLineCents       = "El precio unitario admite como máximo 2 decimales y 10 dígitos enteros"
	msgLineMaxQuantity = "La cantidad excede el máximo permitido"
	msgTotalTooLarge   = "El total de la venta excede el máximo permitido"
)

// SaleUseCase registra, consulta y elimina ventas.
type SaleUseCase struct {
	tx        TxRunner
	sales     repository.SaleRepository
	products  repository.ProductRepository
	clients   repository.ClientRepository
	publisher EventPublisher
	pricing   string
	log       *logger.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso. pricing es config.PricingClient o config.PricingCatalog;
// publisher puede ser nil.
func NewSaleUseCase(
	tx TxRunner,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	publisher EventPublisher,
	pricing string,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if pricing == "" {
		pricing = config.PricingClient
	}
	return &SaleUseCase{
		tx:        tx,
		sales:     sales,
		products:  products,
		clients:   clients,
		publisher: publisher,
		pricing:   pricing,
		log:       log,
		now:       time.Now,
	}
}

// Create registra la venta: cabecera, líneas y descuento de stock en una sola transacción.
// Si alguna línea no tiene stock suficiente no queda nada escrito.
func (uc *SaleUseCase) Create(ctx context.Context, employeeID int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	catalogPricing := uc.pricing == config.PricingCatalog
	if err := validateSale(in, catalogPricing); err != nil {
		return nil, err
	}

	// ── 1. Cliente y productos deben existir ─────────────────────────────────
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NewError(domain.ErrNotFound, "Cliente no encontrado")
	}

	lines := make([]entity.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NewError(domain.ErrNotFound, fmt.Sprintf("Producto %d no encontrado", l.ProductID))
		}
		price := p.Price
		if !catalogPricing {
			price = *l.UnitPrice
		}
		lines = append(lines, entity.SaleLine{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitPrice:   price,
			ProductName: p.Name,
		})
	}

	// ── 2. Total congelado al momento de la venta ────────────────────────────
	// Precios y total deben caber en NUMERIC(12,2) tal cual, sin redondeo de la base.
	total := entity.SaleTotal(lines)
	if !entity.MoneyFits(total) {
		return nil, domain.Invalid(msgTotalTooLarge)
	}
	header := &entity.Sale{
		ClientID:   in.ClientID,
		EmployeeID: employeeID,
		Total:      total,
	}

	// ── 3. Transacción ───────────────────────────────────────────────────────
	var created *entity.Sale
	err = uc.tx.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		id, err := saleRepo.CreateHeader(ctx, header)
		if err != nil {
			return err
		}
		if err := saleRepo.CreateLines(ctx, id, lines); err != nil {
			return err
		}
		for _, l := range lines {
			ok, err := productRepo.DecrementStock(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return stockError(ctx, productRepo, l)
			}
		}
		created, err = saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if created == nil {
			return fmt.Errorf("venta %d no visible tras insertarla", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("sale_id", created.ID).Int64("employee_id", employeeID).
		Str("total", created.Total.StringFixed(2)).Int("lines", len(created.Lines)).Msg("venta registrada")

	uc.publish(ctx, Event{
		Type:       EventSaleCreated,
		SaleID:     created.ID,
		ClientID:   created.ClientID,
		EmployeeID: created.EmployeeID,
		Total:      created.Total,
		Lines:      len(created.Lines),
	})

	out := toSaleResponse(created, true)
	return &out, nil
}

// stockError distingue producto eliminado durante la venta de stock insuficiente.
func stockError(ctx context.Context, productRepo repository.ProductRepository, l entity.SaleLine) error {
	p, err := productRepo.GetByID(ctx, l.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewError(domain.ErrNotFound, fmt.Sprintf("Producto %d no encontrado", l.ProductID))
	}
	return domain.NewError(domain.ErrInsufficientStock,
		fmt.Sprintf("Stock insuficiente para %s (disponible: %d, solicitado: %d)", p.Name, p.Stock, l.Quantity))
}

func validateSale(in dto.CreateSaleRequest, catalogPricing bool) error {
	if in.ClientID <= 0 {
		return domain.Invalid(msgSaleNeedsClient)
	}
	if len(in.Lines) == 0 {
		return domain.Invalid(msgSaleNeedsLines)
	}
	for _, l := range in.Lines {
		if l.ProductID <= 0 || (l.UnitPrice == nil && !catalogPricing) {
			return domain.Invalid(msgLineIncomplete)
		}
		if l.Quantity <= 0 {
			return domain.Invalid(msgLineQuantity)
		}
		if l.Quantity > entity.MaxQuantity {
			return domain.Invalid(msgLineMaxQuantity)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return domain.Invalid(msgLineUnitPrice)
		}
		// con precio de catálogo el del cliente se descarta
		if !catalogPricing && !entity.MoneyFits(*l.UnitPrice) {
			return domain.Invalid(msgLineCents)
		}
	}
	return nil
}

// List ventas activas, más recientes primero (sin líneas).
func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, false))
	}
	return out, nil
}

// GetByID venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	s, err := loadSale(ctx, uc.sales, id)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(s, true)
	return &out, nil
}

func loadSale(ctx context.Context, repo repository.SaleRepository, id int64) (*entity.Sale, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgSaleNotFound)
	}
	return s, nil
}

// Delete borrado lógico de cabecera y líneas en una transacción. El stock no se repone.
func (uc *SaleUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.Run(ctx, func(saleRepo repository.SaleRepository, _ repository.ProductRepository) error {
		ok, err := saleRepo.SoftDelete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewError(domain.ErrNotFound, msgSaleNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("sale_id", id).Msg("venta eliminada")
	uc.publish(ctx, Event{Type: EventSaleDeleted, SaleID: id})
	return nil
}

func (uc *SaleUseCase) publish(ctx context.Context, ev Event) {
	if uc.publisher == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.OccurredAt = uc.now().UTC()
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", ev.Type).Int64("sale_id", ev.SaleID).Msg("no se pudo publicar el evento de venta")
	}
}

func toSaleResponse(s *entity.Sale, withLines bool) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		EmployeeID:    s.EmployeeID,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		ClientName:    s.ClientName,
		ClientEmail:   s.ClientEmail,
		EmployeeName:  s.EmployeeName,
		EmployeeEmail: s.EmployeeEmail,
	}
	if withLines {
		out.Lines = make([]dto.SaleLineResponse, 0, len(s.Lines))
		for _, l := range s.Lines {
			out.Lines = append(out.Lines, dto.SaleLineResponse{
				ID:                 l.ID,
				ProductID:          l.ProductID,
				Quantity:           l.Quantity,
				UnitPrice:          l.UnitPrice,
				Subtotal:           l.Subtotal(),
				ProductName:        l.ProductName,
				ProductDescription: l.ProductDescription,
			})
		}
	}
	return out
}
