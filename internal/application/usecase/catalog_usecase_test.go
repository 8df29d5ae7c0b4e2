package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/memstore"
)

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CreateYListarEnOrden(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())

	a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Plantas"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Macetas", Description: strPtr("Barro y plástico")})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, "Barro y plástico", *list[1].Description)
}

func TestCategory_CreateSinNombre(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_SoftDelete(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Sustratos"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, c.ID))

	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// segunda eliminación: ya no hay fila activa
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestCategory_UpdateSinCampos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Plantas"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, c.ID, dto.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}

func TestCategory_UpdateParcialYNullLimpia(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Plantas", Description: strPtr("Interior")})
	require.NoError(t, err)

	var in dto.UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Plantas de interior"}`), &in))
	got, err := uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Plantas de interior", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Interior", *got.Description)

	in = dto.UpdateCategoryRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &in))
	got, err = uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "Plantas de interior", got.Name)
}

func TestCategory_UpdateNombreNull(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Plantas"})
	require.NoError(t, err)

	var in dto.UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &in))
	_, err = uc.Update(ctx, c.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_UpdateInexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())
	var in dto.UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &in))
	_, err := uc.Update(context.Background(), 99, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_FindOrCreateByName(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memstore.New().Categories())

	id, created, err := uc.FindOrCreateByName(ctx, "Herramientas")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := uc.FindOrCreateByName(ctx, "herramientas")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_Validaciones(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateClientRequest
	}{
		{"sin nombre", dto.CreateClientRequest{Email: "a@b.com"}},
		{"sin email", dto.CreateClientRequest{Name: "Ana"}},
		{"email inválido", dto.CreateClientRequest{Name: "Ana", Email: "no-es-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(memstore.New().Clients())

	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Ana Pérez", Email: "ana@correo.com"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	var in dto.UpdateClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"ana.perez@correo.com"}`), &in))
	got, err := uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.Name)
	assert.Equal(t, "ana.perez@correo.com", got.Email)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado lógico: la fila sigue guardada, marcada como eliminada
// ──────────────────────────────────────────────────────────────────────────────

func TestSoftDelete_ConservaFilaMarcada(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	categories := usecase.NewCategoryUseCase(store.Categories())
	clients := usecase.NewClientUseCase(store.Clients())
	employees := usecase.NewEmployeeUseCase(store.Employees(), "123456")
	products := usecase.NewProductUseCase(store.Products(), store.Categories(), nil, nil)

	tests := []struct {
		name   string
		table  memstore.Table
		create func() (int64, error)
		del    func(int64) error
	}{
		{"categoría", memstore.TableCategories, func() (int64, error) {
			out, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "Plantas"})
			if err != nil {
				return 0, err
			}
			return out.ID, nil
		}, func(id int64) error { return categories.Delete(ctx, id) }},
		{"cliente", memstore.TableClients, func() (int64, error) {
			out, err := clients.Create(ctx, dto.CreateClientRequest{Name: "Ana", Email: "ana@correo.com"})
			if err != nil {
				return 0, err
			}
			return out.ID, nil
		}, func(id int64) error { return clients.Delete(ctx, id) }},
		{"empleado", memstore.TableEmployees, func() (int64, error) {
			out, err := employees.Create(ctx, dto.CreateEmployeeRequest{Name: "Luis", Email: "luis@vivero.com", Role: "empleado"})
			if err != nil {
				return 0, err
			}
			return out.ID, nil
		}, func(id int64) error { return employees.Delete(ctx, id) }},
		{"producto", memstore.TableProducts, func() (int64, error) {
			p := decimal.RequireFromString("4.50")
			out, err := products.Create(ctx, dto.CreateProductRequest{Name: "Helecho", Price: &p}, nil)
			if err != nil {
				return 0, err
			}
			return out.ID, nil
		}, func(id int64) error { return products.Delete(ctx, id) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.create()
			require.NoError(t, err)
			exists, deleted := store.Row(tt.table, id)
			require.True(t, exists)
			require.False(t, deleted)

			require.NoError(t, tt.del(id))

			exists, deleted = store.Row(tt.table, id)
			assert.True(t, exists, "la fila no se borra físicamente")
			assert.True(t, deleted)
		})
	}
}
