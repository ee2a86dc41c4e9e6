package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// Mensajes de las acciones de formulario.
const (
	MsgCreateUnauthenticated = "Musisz być zalogowany, aby dodać nieruchomość"
	MsgCreateFailed          = "Nie udało się dodać nieruchomości"
	MsgUpdateFailed          = "Nie udało się zaktualizować nieruchomości"
	MsgDeleteNotFound        = "Nieruchomość nie została znaleziona"
	MsgDeleteFailed          = "Nie udało się usunąć nieruchomości"
	MsgDeleted               = "Nieruchomość została usunięta"
)

// ActionHandler acciones de formulario del panel (alta, edición y baja de propiedades).
// Cada acción resuelve la sesión antes de tocar el almacén.
type ActionHandler struct {
	uc *usecase.PropertyUseCase
	responder
}

// NewActionHandler construye el handler.
func NewActionHandler(uc *usecase.PropertyUseCase, r responder) *ActionHandler {
	return &ActionHandler{uc: uc, responder: r}
}

// Create godoc
// @Summary      Alta de propiedad
// @Tags         actions
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        address     formData  string  true  "Adres"
// @Param        city        formData  string  true  "Miasto"
// @Param        postalCode  formData  string  true  "Kod pocztowy XX-XXX"
// @Success      201  {object}  dto.Result{data=dto.PropertyResponse}
// @Failure      400  {object}  dto.Result
// @Failure      401  {object}  dto.Result
// @Router       /actions/properties/create [post]
func (h *ActionHandler) Create(c *fiber.Ctx) error {
	ownerID, ok := h.owner(c, MsgCreateUnauthenticated)
	if !ok {
		return nil
	}
	var in dto.CreatePropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(dto.CodeValidation, MsgInvalidBody))
	}
	out, err := h.uc.Create(c.UserContext(), ownerID, in)
	if err != nil {
		return h.fail(c, err, MsgCreateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Edición parcial de propiedad
// @Tags         actions
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        propertyId  formData  string  true   "ID"
// @Param        address     formData  string  false  "Adres"
// @Param        city        formData  string  false  "Miasto"
// @Param        postalCode  formData  string  false  "Kod pocztowy XX-XXX"
// @Success      200  {object}  dto.Result{data=dto.PropertyResponse}
// @Failure      400  {object}  dto.Result
// @Failure      404  {object}  dto.Result
// @Router       /actions/properties/update [post]
func (h *ActionHandler) Update(c *fiber.Ctx) error {
	ownerID, ok := h.owner(c, MsgUnauthenticated)
	if !ok {
		return nil
	}
	var in dto.UpdatePropertyRequest
	if isFormRequest(c) {
		in = dto.UpdatePropertyRequest{
			PropertyID: c.FormValue("propertyId"),
			Address:    optionalFormValue(c, "address"),
			City:       optionalFormValue(c, "city"),
			PostalCode: optionalFormValue(c, "postalCode"),
		}
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(dto.CodeValidation, MsgInvalidBody))
	}
	out, err := h.uc.Update(c.UserContext(), ownerID, in)
	if err != nil {
		return h.fail(c, err, MsgUpdateFailed)
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Baja de propiedad (sin contratos vigentes o futuros)
// @Tags         actions
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        propertyId  formData  string  true  "ID"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.Result
// @Failure      409  {object}  dto.Result
// @Router       /actions/properties/delete [post]
func (h *ActionHandler) Delete(c *fiber.Ctx) error {
	ownerID, ok := h.owner(c, MsgUnauthenticated)
	if !ok {
		return nil
	}
	var in dto.DeletePropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(dto.CodeValidation, MsgInvalidBody))
	}
	if err := h.uc.Delete(c.UserContext(), ownerID, in.PropertyID); err != nil {
		status, body := statusForError(err, MsgDeleteFailed)
		if status == fiber.StatusNotFound {
			body.Error = MsgDeleteNotFound
		}
		if status >= fiber.StatusInternalServerError {
			h.internal(c, err)
		}
		return c.Status(status).JSON(body)
	}
	return c.JSON(dto.OKMessage(MsgDeleted))
}

// owner resuelve la sesión y exige rol de propietario. Si no se cumple, ya respondió.
func (h *ActionHandler) owner(c *fiber.Ctx, unauthMsg string) (string, bool) {
	id := GetSession(c)
	if id == nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(dto.CodeUnauthenticated, unauthMsg))
		return "", false
	}
	if id.Role != entity.RoleOwner {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.Fail(dto.CodeForbidden, MsgForbidden))
		return "", false
	}
	return id.UserID, true
}

// optionalFormValue nil si el campo no viene en el formulario; una cadena vacía
// presente sí se envía para que la validación la rechace.
func optionalFormValue(c *fiber.Ctx, key string) *string {
	args := c.Request().PostArgs()
	if args.Has(key) {
		v := string(args.Peek(key))
		return &v
	}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		if vals, ok := mf.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
	}
	return nil
}
