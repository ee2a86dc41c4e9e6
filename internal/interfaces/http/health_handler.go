package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/usecase"
)

// HealthHandler sondas de salud (sin sesión).
type HealthHandler struct {
	uc *usecase.HealthUseCase
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Health godoc
// @Summary      Estado del servicio (sin consultar la base de datos)
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return h.write(c, h.uc.Report())
}

// Ready godoc
// @Summary      Preparado: incluye ping a la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /api/health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return h.write(c, h.uc.Ready(c.UserContext()))
}

func (h *HealthHandler) write(c *fiber.Ctx, resp dto.HealthResponse) error {
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	status := fiber.StatusOK
	if resp.Status != usecase.HealthHealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
