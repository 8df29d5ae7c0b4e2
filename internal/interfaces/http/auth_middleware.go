package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/pkg/jwt"
)

// Locals keys con la identidad del empleado autenticado.
const (
	LocalEmployeeID = "employee_id"
	LocalName       = "employee_name"
	LocalRole       = "employee_role"
)

const (
	msgMissingToken = "Acceso denegado. No se proporcionó token."
	msgExpiredToken = "Token expirado. Por favor, inicia sesión nuevamente."
	msgInvalidToken = "Token inválido."
	msgAdminOnly    = "Acceso denegado. Se requieren permisos de administrador."
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// Los errores se devuelven al ErrorHandler central.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return domain.NewError(domain.ErrMissingToken, msgMissingToken)
		}
		tokenString := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" || strings.EqualFold(tokenString, "Bearer") {
			return domain.NewError(domain.ErrMissingToken, msgMissingToken)
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return domain.WrapError(domain.ErrTokenExpired, msgExpiredToken, err)
			}
			return domain.WrapError(domain.ErrTokenInvalid, msgInvalidToken, err)
		}
		c.Locals(LocalEmployeeID, id.EmployeeID)
		c.Locals(LocalName, id.Name)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Usar después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return domain.NewError(domain.ErrForbidden, msgAdminOnly)
	}
}

// GetEmployeeID devuelve el id del empleado autenticado (0 si no hay).
func GetEmployeeID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalEmployeeID).(int64)
	return v
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetName devuelve el nombre del empleado autenticado.
func GetName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalName).(string)
	return v
}
