package sales_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/memstore"
	"github.com/viverodavinci/vivero-api/pkg/config"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []sales.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev sales.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	store    *memstore.Store
	uc       *sales.SaleUseCase
	pub      *recordingPublisher
	clientID int64
	sellerID int64
	productA int64 // stock 10, precio 5.00
	productB int64 // stock 3, precio 7.50
}

func newFixture(t *testing.T, pricing string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	f := &fixture{store: store, pub: &recordingPublisher{}}

	var err error
	f.clientID, err = store.Clients().Create(ctx, &entity.Client{Name: "Ana", Email: "ana@correo.com"})
	require.NoError(t, err)
	f.sellerID, err = store.Employees().Create(ctx, &entity.Employee{Name: "Luis", Email: "luis@vivero.com", Role: "empleado", PasswordHash: "x"})
	require.NoError(t, err)
	f.productA, err = store.Products().Create(ctx, &entity.Product{Name: "Helecho", Price: decimal.RequireFromString("5.00"), Stock: 10})
	require.NoError(t, err)
	f.productB, err = store.Products().Create(ctx, &entity.Product{Name: "Maceta", Price: decimal.RequireFromString("7.50"), Stock: 3})
	require.NoError(t, err)

	f.uc = sales.NewSaleUseCase(store.TxRunner(), store.Sales(), store.Products(), store.Clients(), f.pub, pricing, nil)
	return f
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TotalLineasYStock(t *testing.T) {
	f := newFixture(t, config.PricingClient)

	out, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productA, Quantity: 2, UnitPrice: dec("5.00")},
			{ProductID: f.productB, Quantity: 1, UnitPrice: dec("15.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "25.00", out.Total.StringFixed(2))
	assert.Equal(t, f.sellerID, out.EmployeeID)
	assert.Equal(t, "Ana", out.ClientName)
	assert.Equal(t, "Luis", out.EmployeeName)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "Helecho", out.Lines[0].ProductName)
	assert.Equal(t, "10.00", out.Lines[0].Subtotal.StringFixed(2))

	assert.Equal(t, 8, f.stock(t, f.productA))
	assert.Equal(t, 2, f.stock(t, f.productB))

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, sales.EventSaleCreated, f.pub.events[0].Type)
	assert.Equal(t, out.ID, f.pub.events[0].SaleID)
	assert.NotEmpty(t, f.pub.events[0].ID)
}

func TestCreate_TotalIgualASumaDeLineas(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	out, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productA, Quantity: 7, UnitPrice: dec("1.10")},
			{ProductID: f.productB, Quantity: 3, UnitPrice: dec("0.33")},
		},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, l := range out.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, out.Total.Equal(sum), "total %s, suma de líneas %s", out.Total, sum)
	assert.Equal(t, "8.69", out.Total.StringFixed(2))
}

func TestCreate_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productA, Quantity: 2, UnitPrice: dec("5")},
			{ProductID: f.productB, Quantity: 4, UnitPrice: dec("7.5")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada quedó escrito: ni stock descontado ni venta
	assert.Equal(t, 10, f.stock(t, f.productA))
	assert.Equal(t, 3, f.stock(t, f.productB))
	list, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pub.events)
}

func TestCreate_LineasRepetidasSumanContraElStock(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	_, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productB, Quantity: 2, UnitPrice: dec("7.5")},
			{ProductID: f.productB, Quantity: 2, UnitPrice: dec("7.5")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, f.productB))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	tests := []struct {
		name string
		in   dto.CreateSaleRequest
		want error
	}{
		{"sin cliente", dto.CreateSaleRequest{Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1, UnitPrice: dec("1")}}}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateSaleRequest{ClientID: f.clientID}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 0, UnitPrice: dec("1")}}}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1, UnitPrice: dec("-1")}}}, domain.ErrInvalidInput},
		{"sin precio", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1}}}, domain.ErrInvalidInput},
		{"precio con 3 decimales", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 3, UnitPrice: dec("0.333")}}}, domain.ErrInvalidInput},
		{"cantidad fuera de INTEGER", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: math.MaxInt32 + 1, UnitPrice: dec("1")}}}, domain.ErrInvalidInput},
		{"total fuera de NUMERIC(12,2)", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 2, UnitPrice: dec("9999999999.99")}}}, domain.ErrInvalidInput},
		{"cliente inexistente", dto.CreateSaleRequest{ClientID: 999, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1, UnitPrice: dec("1")}}}, domain.ErrNotFound},
		{"producto inexistente", dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: 999, Quantity: 1, UnitPrice: dec("1")}}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), f.sellerID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 10, f.stock(t, f.productA))
}

func TestCreate_PrecioDeCatalogo(t *testing.T) {
	f := newFixture(t, config.PricingCatalog)
	out, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productA, Quantity: 2, UnitPrice: dec("0.01")},
			{ProductID: f.productB, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "17.50", out.Total.StringFixed(2))
	assert.Equal(t, "5.00", out.Lines[0].UnitPrice.StringFixed(2))
}

func TestCreate_FalloDelPublicadorNoRevierte(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	f.pub.err = errors.New("broker caído")

	out, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines:    []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1, UnitPrice: dec("5")}},
	})
	require.NoError(t, err)
	got, err := f.uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestCreate_ConcurrenteNoDejaStockNegativo(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(context.Background(), f.sellerID, dto.CreateSaleRequest{
				ClientID: f.clientID,
				Lines:    []dto.SaleLineRequest{{ProductID: f.productB, Quantity: 1, UnitPrice: dec("7.5")}},
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, ok)
	assert.Equal(t, 0, f.stock(t, f.productB))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos dentro de la transacción
// ──────────────────────────────────────────────────────────────────────────────

var errStore = errors.New("fallo de escritura")

// faultyTx ejecuta sobre el TxRunner del store pero con repos que fallan a pedido.
type faultyTx struct {
	inner        sales.TxRunner
	failLines    bool
	failStockFor int64
}

func (tx faultyTx) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	return tx.inner.Run(ctx, func(s repository.SaleRepository, p repository.ProductRepository) error {
		return fn(faultySales{SaleRepository: s, fail: tx.failLines}, faultyProducts{ProductRepository: p, failFor: tx.failStockFor})
	})
}

type faultySales struct {
	repository.SaleRepository
	fail bool
}

func (r faultySales) CreateLines(ctx context.Context, saleID int64, lines []entity.SaleLine) error {
	if r.fail {
		return errStore
	}
	return r.SaleRepository.CreateLines(ctx, saleID, lines)
}

type faultyProducts struct {
	repository.ProductRepository
	failFor int64
}

func (r faultyProducts) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	if id == r.failFor {
		return false, errStore
	}
	return r.ProductRepository.DecrementStock(ctx, id, quantity)
}

func TestCreate_FalloEnLaTransaccionNoDejaNada(t *testing.T) {
	tests := []struct {
		name string
		tx   func(f *fixture) faultyTx
	}{
		{"falla el alta de líneas", func(f *fixture) faultyTx {
			return faultyTx{inner: f.store.TxRunner(), failLines: true}
		}},
		{"falla el descuento de la segunda línea", func(f *fixture) faultyTx {
			return faultyTx{inner: f.store.TxRunner(), failStockFor: f.productB}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.PricingClient)
			ctx := context.Background()
			uc := sales.NewSaleUseCase(tt.tx(f), f.store.Sales(), f.store.Products(), f.store.Clients(), f.pub, config.PricingClient, nil)

			_, err := uc.Create(ctx, f.sellerID, dto.CreateSaleRequest{
				ClientID: f.clientID,
				Lines: []dto.SaleLineRequest{
					{ProductID: f.productA, Quantity: 2, UnitPrice: dec("5")},
					{ProductID: f.productB, Quantity: 1, UnitPrice: dec("7.5")},
				},
			})
			require.ErrorIs(t, err, errStore)

			exists, _ := f.store.Row(memstore.TableSales, 1)
			assert.False(t, exists, "la cabecera no debe quedar guardada")
			exists, _ = f.store.Row(memstore.TableSaleLines, 1)
			assert.False(t, exists)
			assert.Equal(t, 10, f.stock(t, f.productA))
			assert.Equal(t, 3, f.stock(t, f.productB))
			assert.Empty(t, f.pub.events)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestList_MasRecientesPrimeroSinLineas(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	ctx := context.Background()
	req := dto.CreateSaleRequest{ClientID: f.clientID, Lines: []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 1, UnitPrice: dec("5")}}}
	first, err := f.uc.Create(ctx, f.sellerID, req)
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, f.sellerID, req)
	require.NoError(t, err)

	list, err := f.uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Nil(t, list[0].Lines)
}

func TestDelete_NoReponeStock(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	ctx := context.Background()
	out, err := f.uc.Create(ctx, f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines:    []dto.SaleLineRequest{{ProductID: f.productA, Quantity: 4, UnitPrice: dec("5")}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, out.ID))

	_, err = f.uc.GetByID(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 6, f.stock(t, f.productA))
	assert.Equal(t, sales.EventSaleDeleted, f.pub.events[len(f.pub.events)-1].Type)

	assert.ErrorIs(t, f.uc.Delete(ctx, out.ID), domain.ErrNotFound)
}

func TestDelete_MarcaCabeceraYLineas(t *testing.T) {
	f := newFixture(t, config.PricingClient)
	ctx := context.Background()
	out, err := f.uc.Create(ctx, f.sellerID, dto.CreateSaleRequest{
		ClientID: f.clientID,
		Lines: []dto.SaleLineRequest{
			{ProductID: f.productA, Quantity: 1, UnitPrice: dec("5")},
			{ProductID: f.productB, Quantity: 1, UnitPrice: dec("7.5")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	require.NoError(t, f.uc.Delete(ctx, out.ID))

	exists, deleted := f.store.Row(memstore.TableSales, out.ID)
	assert.True(t, exists)
	assert.True(t, deleted)
	for _, l := range out.Lines {
		exists, deleted := f.store.Row(memstore.TableSaleLines, l.ID)
		assert.True(t, exists, "línea %d", l.ID)
		assert.True(t, deleted, "línea %d", l.ID)
	}
}
