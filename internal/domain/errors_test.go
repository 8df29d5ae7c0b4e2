package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viverodavinci/vivero-api/internal/domain"
)

func TestAppError_IsKind(t *testing.T) {
	err := domain.NotFound("Producto")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Producto no encontrado", err.Error())
}

func TestAppError_WrapConservaCausa(t *testing.T) {
	cause := errors.New("conexión rechazada")
	err := fmt.Errorf("crear venta: %w", domain.WrapError(domain.ErrDatabase, "Error en la base de datos", cause))

	assert.ErrorIs(t, err, domain.ErrDatabase)
	assert.ErrorIs(t, err, cause)

	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Error en la base de datos", appErr.Message)
}
