package usecase

import (
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// Mensajes de validación compartidos por los casos de uso del catálogo.
const (
	msgNothingToUpdate = "No hay campos para actualizar"
	msgInvalidEmail    = "El email no es válido"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func validEmail(s string) bool { return govalidator.IsEmail(strings.TrimSpace(s)) }

// requiredText valida un campo de texto obligatorio dentro de un patch:
// null o vacío son inválidos.
func requiredText(o entity.Optional[string], msg string) error {
	if o.Set && (o.Null || blank(o.Value)) {
		return domain.Invalid(msg)
	}
	return nil
}

func nothingToUpdate() error {
	return domain.NewError(domain.ErrNothingToUpdate, msgNothingToUpdate)
}
