package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/dto"
)

// featureChecker es el contrato mínimo que necesita el middleware para verificar funcionalidades.
// Lo implementa *usecase.FeatureService.
type featureChecker interface {
	Enabled(name string) bool
}

// RequireFeature corta con 403 si la funcionalidad está desactivada en este despliegue.
// Con checker nil todas se consideran desactivadas.
func RequireFeature(name string, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker == nil || !checker.Enabled(name) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(dto.CodeForbidden, MsgFeatureDisabled))
		}
		return c.Next()
	}
}
