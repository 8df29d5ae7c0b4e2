package usecase

import (
	"context"
	"strings"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

const msgCategoryNotFound = "Categoría no encontrada"

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgCategoryNotFound)
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Create crea una categoría; name es obligatorio.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if blank(in.Name) {
		return nil, domain.Invalid("La categoría debe tener un nombre")
	}
	id, err := uc.repo.Create(ctx, &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Update aplica una actualización parcial.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	patch := entity.CategoryPatch{Name: in.Name, Description: in.Description}
	if patch.IsEmpty() {
		return nil, nothingToUpdate()
	}
	if err := requiredText(patch.Name, "La categoría debe tener un nombre"); err != nil {
		return nil, err
	}
	ok, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, msgCategoryNotFound)
	}
	return uc.GetByID(ctx, id)
}

// Delete hace borrado lógico.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.ErrNotFound, msgCategoryNotFound)
	}
	return nil
}

// FindOrCreateByName devuelve la categoría con ese nombre o la crea. Lo usa el importador.
func (uc *CategoryUseCase) FindOrCreateByName(ctx context.Context, name string) (int64, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, domain.Invalid("La categoría debe tener un nombre")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	id, err := uc.repo.Create(ctx, &entity.Category{Name: name})
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
