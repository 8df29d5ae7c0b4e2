package usecase

import (
	"context"
	"strings"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

const msgClientNotFound = "Cliente no encontrado"

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgClientNotFound)
	}
	out := toClientResponse(c)
	return &out, nil
}

// Create crea un cliente; name y email obligatorios.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if blank(in.Name) || blank(in.Email) {
		return nil, domain.Invalid("El cliente debe tener nombre y email")
	}
	if !validEmail(in.Email) {
		return nil, domain.Invalid(msgInvalidEmail)
	}
	id, err := uc.repo.Create(ctx, &entity.Client{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	patch := entity.ClientPatch{Name: in.Name, Email: in.Email}
	if patch.IsEmpty() {
		return nil, nothingToUpdate()
	}
	if err := requiredText(patch.Name, "El cliente debe tener nombre y email"); err != nil {
		return nil, err
	}
	if err := requiredText(patch.Email, "El cliente debe tener nombre y email"); err != nil {
		return nil, err
	}
	if patch.Email.Set && !validEmail(patch.Email.Value) {
		return nil, domain.Invalid(msgInvalidEmail)
	}
	ok, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, msgClientNotFound)
	}
	return uc.GetByID(ctx, id)
}

func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.ErrNotFound, msgClientNotFound)
	}
	return nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
