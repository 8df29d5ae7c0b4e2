package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
)

func duplicate() error {
	return domain.NewError(domain.ErrDuplicate, "El registro ya existe")
}

// ──────────────────────────────────────────────────────────────────────────────
// Employees
// ──────────────────────────────────────────────────────────────────────────────

type EmployeeRepo struct{ s *Store }

func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Employee, 0)
	for _, id := range r.s.data.employees.ids() {
		e := r.s.data.employees.rows[id].v
		e.PasswordHash = ""
		out = append(out, &e)
	}
	return out, nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.employees.active(id)
	if !ok {
		return nil, nil
	}
	e := rec.v
	e.PasswordHash = ""
	return &e, nil
}

func (r *EmployeeRepo) FindByEmailWithPassword(_ context.Context, email string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.data.employees.ids() {
		e := r.s.data.employees.rows[id].v
		if strings.EqualFold(e.Email, email) {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepo) emailTaken(email string, except int64) bool {
	for _, id := range r.s.data.employees.ids() {
		if id != except && strings.EqualFold(r.s.data.employees.rows[id].v.Email, email) {
			return true
		}
	}
	return false
}

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(e.Email, 0) {
		return 0, duplicate()
	}
	v := *e
	v.CreatedAt, v.UpdatedAt = r.s.now(), r.s.now()
	id := r.s.data.employees.add(v)
	r.s.data.employees.rows[id].v.ID = id
	return id, nil
}

func (r *EmployeeRepo) Update(_ context.Context, id int64, p entity.EmployeePatch) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.employees.active(id)
	if !ok {
		return false, nil
	}
	if p.Email.Set && r.emailTaken(p.Email.Value, id) {
		return false, duplicate()
	}
	if p.Name.Set {
		rec.v.Name = p.Name.Value
	}
	if p.Email.Set {
		rec.v.Email = p.Email.Value
	}
	if p.Role.Set {
		rec.v.Role = p.Role.Value
	}
	if p.Password.Set {
		rec.v.PasswordHash = p.Password.Value
	}
	rec.v.UpdatedAt = r.s.now()
	return true, nil
}

func (r *EmployeeRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return markDeleted(r.s.data.employees, id), nil
}

func markDeleted[T any](t *table[T], id int64) bool {
	rec, ok := t.active(id)
	if !ok {
		return false
	}
	rec.deleted = true
	return true
}

// ──────────────────────────────────────────────────────────────────────────────
// Categories
// ──────────────────────────────────────────────────────────────────────────────

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0)
	for _, id := range r.s.data.categories.ids() {
		c := r.s.data.categories.rows[id].v
		out = append(out, &c)
	}
	return out, nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.categories.active(id)
	if !ok {
		return nil, nil
	}
	c := rec.v
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.data.categories.ids() {
		c := r.s.data.categories.rows[id].v
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *c
	v.CreatedAt, v.UpdatedAt = r.s.now(), r.s.now()
	id := r.s.data.categories.add(v)
	r.s.data.categories.rows[id].v.ID = id
	return id, nil
}

func (r *CategoryRepo) Update(_ context.Context, id int64, p entity.CategoryPatch) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.categories.active(id)
	if !ok {
		return false, nil
	}
	if p.Name.Set {
		rec.v.Name = p.Name.Value
	}
	if p.Description.Set {
		rec.v.Description = p.Description.Ptr()
	}
	rec.v.UpdatedAt = r.s.now()
	return true, nil
}

func (r *CategoryRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return markDeleted(r.s.data.categories, id), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

type ClientRepo struct{ s *Store }

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Client, 0)
	for _, id := range r.s.data.clients.ids() {
		c := r.s.data.clients.rows[id].v
		out = append(out, &c)
	}
	return out, nil
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.clients.active(id)
	if !ok {
		return nil, nil
	}
	c := rec.v
	return &c, nil
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *c
	v.CreatedAt, v.UpdatedAt = r.s.now(), r.s.now()
	id := r.s.data.clients.add(v)
	r.s.data.clients.rows[id].v.ID = id
	return id, nil
}

func (r *ClientRepo) Update(_ context.Context, id int64, p entity.ClientPatch) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.clients.active(id)
	if !ok {
		return false, nil
	}
	if p.Name.Set {
		rec.v.Name = p.Name.Value
	}
	if p.Email.Set {
		rec.v.Email = p.Email.Value
	}
	rec.v.UpdatedAt = r.s.now()
	return true, nil
}

func (r *ClientRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return markDeleted(r.s.data.clients, id), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, id := range r.s.data.products.ids() {
		p := r.s.data.products.rows[id].v
		out = append(out, &p)
	}
	return out, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.products.active(id)
	if !ok {
		return nil, nil
	}
	p := rec.v
	return &p, nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.CreatedAt, v.UpdatedAt = r.s.now(), r.s.now()
	id := r.s.data.products.add(v)
	r.s.data.products.rows[id].v.ID = id
	return id, nil
}

func (r *ProductRepo) Update(_ context.Context, id int64, p entity.ProductPatch) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.products.active(id)
	if !ok {
		return false, nil
	}
	if p.Name.Set {
		rec.v.Name = p.Name.Value
	}
	if p.Description.Set {
		rec.v.Description = p.Description.Ptr()
	}
	if p.Price.Set {
		rec.v.Price = p.Price.Value
	}
	if p.Stock.Set {
		rec.v.Stock = p.Stock.Value
	}
	if p.CategoryID.Set {
		rec.v.CategoryID = p.CategoryID.Ptr()
	}
	if p.Image.Set {
		rec.v.Image = p.Image.Ptr()
	}
	rec.v.UpdatedAt = r.s.now()
	return true, nil
}

func (r *ProductRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return markDeleted(r.s.data.products, id), nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, id int64, quantity int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.products.active(id)
	if !ok || rec.v.Stock < quantity {
		return false, nil
	}
	rec.v.Stock -= quantity
	rec.v.UpdatedAt = r.s.now()
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Sales
// ──────────────────────────────────────────────────────────────────────────────

type SaleRepo struct{ s *Store }

// header completa nombres de cliente/empleado como el LEFT JOIN de PostgreSQL.
func (r *SaleRepo) header(v entity.Sale) *entity.Sale {
	if c, ok := r.s.data.clients.rows[v.ClientID]; ok {
		v.ClientName, v.ClientEmail = c.v.Name, c.v.Email
	}
	if e, ok := r.s.data.employees.rows[v.EmployeeID]; ok {
		v.EmployeeName, v.EmployeeEmail = e.v.Name, e.v.Email
	}
	v.Lines = nil
	return &v
}

func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := r.s.data.sales.ids()
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]*entity.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.header(r.s.data.sales.rows[id].v))
	}
	return out, nil
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.sales.active(id)
	if !ok {
		return nil, nil
	}
	s := r.header(rec.v)
	s.Lines = make([]entity.SaleLine, 0)
	for _, lid := range r.s.data.lines.ids() {
		l := r.s.data.lines.rows[lid].v
		if l.SaleID != id {
			continue
		}
		if p, ok := r.s.data.products.rows[l.ProductID]; ok {
			l.ProductName, l.ProductDescription = p.v.Name, p.v.Description
		}
		s.Lines = append(s.Lines, l)
	}
	return s, nil
}

func (r *SaleRepo) CreateHeader(_ context.Context, s *entity.Sale) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := entity.Sale{ClientID: s.ClientID, EmployeeID: s.EmployeeID, Total: s.Total}
	v.CreatedAt, v.UpdatedAt = r.s.now(), r.s.now()
	id := r.s.data.sales.add(v)
	r.s.data.sales.rows[id].v.ID = id
	return id, nil
}

func (r *SaleRepo) CreateLines(_ context.Context, saleID int64, lines []entity.SaleLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range lines {
		v := entity.SaleLine{SaleID: saleID, ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		id := r.s.data.lines.add(v)
		r.s.data.lines.rows[id].v.ID = id
	}
	return nil
}

func (r *SaleRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.sales.active(id)
	if !ok {
		return false, nil
	}
	rec.deleted = true
	for _, l := range r.s.data.lines.rows {
		if l.v.SaleID == id {
			l.deleted = true
		}
	}
	return true, nil
}
