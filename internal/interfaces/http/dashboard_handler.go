package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/application/analytics"
)

// DashboardHandler resumen de ventas para la pantalla principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de ventas
// @Description  Ventas de hoy y del mes, top 5 productos del mes y productos con stock bajo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
