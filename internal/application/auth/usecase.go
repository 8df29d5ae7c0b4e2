package auth

import (
	"context"
	"strings"
	"time"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"github.com/viverodavinci/vivero-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

const msgInvalidCredentials = "Credenciales inválidas"

// AuthUseCase login de empleados.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employees: employees, jwtCfg: jwtCfg}
}

// Login verifica email/password y firma un token con id, nombre y rol.
// Email desconocido y password incorrecto dan el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.NewError(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}
	emp, err := uc.employees.FindByEmailWithPassword(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.NewError(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.NewError(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       emp.Role,
	}, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.SessionUser{
			ID:    emp.ID,
			Name:  emp.Name,
			Email: emp.Email,
			Role:  emp.Role,
		},
	}, nil
}
