package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

const (
	msgServerError   = "Error en el servidor"
	msgDatabaseError = "Error en la base de datos"
)

// errorStatus traduce un error de dominio a código HTTP y mensaje por defecto.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "Datos inválidos"
	case errors.Is(err, domain.ErrNothingToUpdate):
		return fiber.StatusBadRequest, "No hay campos para actualizar"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusBadRequest, "Credenciales inválidas"
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized, msgMissingToken
	case errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized, msgExpiredToken
	case errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusForbidden, msgInvalidToken
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, msgAdminOnly
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "Recurso no encontrado"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "El registro ya existe"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "Stock insuficiente"
	case errors.Is(err, domain.ErrDatabase):
		return fiber.StatusBadRequest, msgDatabaseError
	}
	return fiber.StatusInternalServerError, msgServerError
}

// ErrorHandler responder central: todo handler devuelve el error y aquí se decide
// código y cuerpo {success:false, message}. Los 5xx nunca exponen el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("error HTTP")
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: msgServerError})
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: fe.Message})
		}

		status, message := errorStatus(err)
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Message != "" && status != fiber.StatusInternalServerError {
			message = appErr.Message
		}
		if errors.Is(err, domain.ErrDatabase) {
			message = msgDatabaseError
		}

		ev := log.Warn()
		if status >= fiber.StatusInternalServerError || errors.Is(err, domain.ErrDatabase) {
			ev = log.Error()
		}
		ev.Err(err).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("petición fallida")

		return c.Status(status).JSON(dto.ErrorResponse{Message: message})
	}
}

// NotFound responde 404 uniforme para rutas de la API que no existen.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Message: "No se puede encontrar " + c.OriginalURL() + " en este servidor",
	})
}
