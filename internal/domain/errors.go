package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada uno define un tipo de fallo;
// el responder HTTP central los traduce a código de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNothingToUpdate    = errors.New("no hay campos para actualizar")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrMissingToken       = errors.New("no se proporcionó token")
	ErrTokenExpired       = errors.New("token expirado")
	ErrTokenInvalid       = errors.New("token inválido")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDatabase           = errors.New("error en la base de datos")
)

// AppError asocia un mensaje para el cliente a uno de los errores de dominio.
// errors.Is(appErr, domain.ErrNotFound) funciona a través de Kind.
type AppError struct {
	Kind    error
	Message string
	Err     error // causa interna, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap expone tanto el tipo como la causa.
func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError crea un AppError con mensaje propio.
func NewError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError crea un AppError conservando la causa.
func WrapError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NotFound atajo para "<recurso> no encontrado".
func NotFound(resource string) *AppError {
	return NewError(ErrNotFound, resource+" no encontrado")
}

// Invalid atajo para errores de validación.
func Invalid(message string) *AppError {
	return NewError(ErrInvalidInput, message)
}
