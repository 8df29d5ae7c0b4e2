// Package memstore implementa los puertos de repositorio en memoria.
// Lo usan los tests y el modo -dry-run del importador.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

type record[T any] struct {
	v       T
	deleted bool
}

type table[T any] struct {
	next int64
	rows map[int64]*record[T]
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]*record[T])}
}

func (t *table[T]) add(v T) int64 {
	t.next++
	t.rows[t.next] = &record[T]{v: v}
	return t.next
}

func (t *table[T]) active(id int64) (*record[T], bool) {
	r, ok := t.rows[id]
	if !ok || r.deleted {
		return nil, false
	}
	return r, true
}

// ids activos en orden ascendente.
func (t *table[T]) ids() []int64 {
	out := make([]int64, 0, len(t.rows))
	for id, r := range t.rows {
		if !r.deleted {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{next: t.next, rows: make(map[int64]*record[T], len(t.rows))}
	for id, r := range t.rows {
		cp := *r
		c.rows[id] = &cp
	}
	return c
}

type state struct {
	employees  *table[entity.Employee]
	categories *table[entity.Category]
	clients    *table[entity.Client]
	products   *table[entity.Product]
	sales      *table[entity.Sale]
	lines      *table[entity.SaleLine]
}

func (s state) clone() state {
	return state{
		employees:  s.employees.clone(),
		categories: s.categories.clone(),
		clients:    s.clients.clone(),
		products:   s.products.clone(),
		sales:      s.sales.clone(),
		lines:      s.lines.clone(),
	}
}

// Store base de datos en memoria. Seguro para uso concurrente; las transacciones se serializan.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data state
	now  func() time.Time
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		data: state{
			employees:  newTable[entity.Employee](),
			categories: newTable[entity.Category](),
			clients:    newTable[entity.Client](),
			products:   newTable[entity.Product](),
			sales:      newTable[entity.Sale](),
			lines:      newTable[entity.SaleLine](),
		},
		now: time.Now,
	}
}

func (s *Store) Employees() *EmployeeRepo  { return &EmployeeRepo{s: s} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Clients() *ClientRepo      { return &ClientRepo{s: s} }
func (s *Store) Products() *ProductRepo    { return &ProductRepo{s: s} }
func (s *Store) Sales() *SaleRepo          { return &SaleRepo{s: s} }
func (s *Store) TxRunner() *TxRunner       { return &TxRunner{s: s} }
func (s *Store) Reports() *ReportRepo      { return &ReportRepo{s: s} }

// Table nombre de una tabla del store, para Row.
type Table string

const (
	TableEmployees  Table = "employees"
	TableCategories Table = "categories"
	TableClients    Table = "clients"
	TableProducts   Table = "products"
	TableSales      Table = "sales"
	TableSaleLines  Table = "sale_lines"
)

// Row informa si la fila existe y si tiene la marca de borrado, sin filtrar
// como hacen las lecturas de los repos.
func (s *Store) Row(t Table, id int64) (exists, deleted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t {
	case TableEmployees:
		return peek(s.data.employees, id)
	case TableCategories:
		return peek(s.data.categories, id)
	case TableClients:
		return peek(s.data.clients, id)
	case TableProducts:
		return peek(s.data.products, id)
	case TableSales:
		return peek(s.data.sales, id)
	case TableSaleLines:
		return peek(s.data.lines, id)
	}
	return false, false
}

func peek[T any](t *table[T], id int64) (exists, deleted bool) {
	r, ok := t.rows[id]
	if !ok {
		return false, false
	}
	return true, r.deleted
}

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner simula una transacción: guarda una copia del estado y la restaura si fn falla.
type TxRunner struct {
	s *Store
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snapshot := r.s.data.clone()
	r.s.mu.Unlock()

	if err := fn(r.s.Sales(), r.s.Products()); err != nil {
		r.s.mu.Lock()
		r.s.data = snapshot
		r.s.mu.Unlock()
		return err
	}
	return ctx.Err()
}
