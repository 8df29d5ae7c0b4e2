package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

// RequestID asigna un id (uuid v4) a cada petición y lo devuelve en X-Request-ID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

func requestID(c *fiber.Ctx) string {
	v, _ := c.Locals("requestid").(string)
	return v
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler todavía no escribió la respuesta
			status, _ = errorStatus(err)
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("petición")
		return err
	}
}
