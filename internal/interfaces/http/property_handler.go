package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/usecase"
)

// Mensajes de la API de propiedades.
const (
	MsgFetchPropertiesFailed = "Failed to fetch properties"
	MsgStatementFailed       = "Nie udało się wygenerować zestawienia"
	MsgSummaryFailed         = "Nie udało się obliczyć podsumowania"
)

// PropertyHandler API de lectura de propiedades del propietario en sesión.
type PropertyHandler struct {
	uc *usecase.PropertyUseCase
	responder
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(uc *usecase.PropertyUseCase, r responder) *PropertyHandler {
	return &PropertyHandler{uc: uc, responder: r}
}

// List godoc
// @Summary      Listar propiedades con inquilino, pago del mes y documentos
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result{data=[]dto.PropertyDetailsResponse}
// @Failure      401  {object}  dto.Result
// @Failure      500  {object}  dto.Result
// @Router       /api/v1/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(dto.CodeUnauthenticated, "Unauthorized"))
	}
	list, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, MsgFetchPropertiesFailed)
	}
	return c.JSON(dto.OK(list))
}

// GetByID godoc
// @Summary      Obtener propiedad por ID
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la propiedad"
// @Success      200  {object}  dto.Result{data=dto.PropertyResponse}
// @Failure      404  {object}  dto.Result
// @Router       /api/v1/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return h.fail(c, err, MsgFetchPropertiesFailed)
	}
	return c.JSON(dto.OK(out))
}

// Statement godoc
// @Summary      Zestawienie PDF de una propiedad
// @Tags         properties
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la propiedad"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Result
// @Router       /api/v1/properties/{id}/statement.pdf [get]
func (h *PropertyHandler) Statement(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Statement(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return h.fail(c, err, MsgStatementFailed)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="zestawienie-`+id+`.pdf"`)
	return c.Send(pdf)
}

// Summary godoc
// @Summary      Resumen de la cartera del propietario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result{data=dto.PortfolioSummary}
// @Failure      403  {object}  dto.Result
// @Router       /api/v1/analytics/summary [get]
func (h *PropertyHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.fail(c, err, MsgSummaryFailed)
	}
	return c.JSON(dto.OK(out))
}
