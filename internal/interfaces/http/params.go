package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
)

const (
	msgInvalidID   = "ID inválido"
	msgInvalidBody = "Cuerpo de la petición inválido"
)

// paramID lee el :id de la ruta como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(msgInvalidID)
	}
	return id, nil
}

// parseBody decodifica el JSON del cuerpo. Un cuerpo vacío deja out sin tocar,
// así una actualización sin campos llega al caso de uso como parche vacío.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid(msgInvalidBody)
	}
	return nil
}

func deleted(c *fiber.Ctx, message string) error {
	return c.JSON(dto.MessageResponse{Success: true, Message: message})
}
