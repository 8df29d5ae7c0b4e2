package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgEmployeeNotFound = "Empleado no encontrado"
	msgEmployeeRequired = "El empleado debe tener nombre, email y rol"
	msgInvalidRole      = "Rol inválido: debe ser admin, encargado o empleado"
	msgPasswordTooLong  = "El password no puede superar 72 bytes"
)

// bcrypt solo usa los primeros 72 bytes y rechaza entradas más largas.
const maxPasswordBytes = 72

// EmployeeUseCase casos de uso CRUD para empleados. El password se hashea con bcrypt
// y nunca sale en las respuestas.
type EmployeeUseCase struct {
	repo            repository.EmployeeRepository
	defaultPassword string
}

// NewEmployeeUseCase construye el caso de uso. defaultPassword se usa cuando el alta no trae password.
func NewEmployeeUseCase(repo repository.EmployeeRepository, defaultPassword string) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, defaultPassword: defaultPassword}
}

func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgEmployeeNotFound)
	}
	out := toEmployeeResponse(e)
	return &out, nil
}

// Create da de alta un empleado. Sin password se usa el de por defecto.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if blank(in.Name) || blank(in.Email) || blank(in.Role) {
		return nil, domain.Invalid(msgEmployeeRequired)
	}
	if !validEmail(in.Email) {
		return nil, domain.Invalid(msgInvalidEmail)
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.Invalid(msgInvalidRole)
	}
	password := in.Password
	if password == "" {
		password = uc.defaultPassword
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	id, err := uc.repo.Create(ctx, &entity.Employee{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Update aplica una actualización parcial; si viene password se vuelve a hashear.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	patch := entity.EmployeePatch{Name: in.Name, Email: in.Email, Role: in.Role, Password: in.Password}
	if patch.IsEmpty() {
		return nil, nothingToUpdate()
	}
	for _, f := range []entity.Optional[string]{patch.Name, patch.Email, patch.Role, patch.Password} {
		if err := requiredText(f, msgEmployeeRequired); err != nil {
			return nil, err
		}
	}
	if patch.Email.Set && !validEmail(patch.Email.Value) {
		return nil, domain.Invalid(msgInvalidEmail)
	}
	if patch.Role.Set && !entity.ValidRole(patch.Role.Value) {
		return nil, domain.Invalid(msgInvalidRole)
	}
	if patch.Password.Set {
		hash, err := hashPassword(patch.Password.Value)
		if err != nil {
			return nil, err
		}
		patch.Password = entity.Some(hash)
	}
	ok, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, msgEmployeeNotFound)
	}
	return uc.GetByID(ctx, id)
}

func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.ErrNotFound, msgEmployeeNotFound)
	}
	return nil
}

// EnsureAdmin crea un admin con ese email si no existe ninguno activo. Devuelve true si lo creó.
func (uc *EmployeeUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := uc.repo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.Create(ctx, dto.CreateEmployeeRequest{
		Name: name, Email: email, Role: entity.RoleAdmin, Password: password,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func hashPassword(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", domain.Invalid(msgPasswordTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
