package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/domain"
)

// Mensajes comunes de la interfaz.
const (
	MsgUnauthenticated   = "Musisz być zalogowany"
	MsgForbidden         = "Brak uprawnień do tej operacji"
	MsgPropertyNotFound  = "Nieruchomość nie została znaleziona lub nie masz do niej dostępu"
	MsgActiveLease       = "Nie można usunąć nieruchomości z aktywnymi umowami najmu"
	MsgLeaseOverlap      = "Okres umowy nakłada się na inną umowę tej nieruchomości"
	MsgEmailExists       = "Użytkownik z tym adresem email już istnieje"
	MsgInvalidBody       = "Nieprawidłowe dane formularza"
	MsgInternal          = "Wystąpił nieoczekiwany błąd"
	MsgTooManyRequests   = "Zbyt wiele żądań, spróbuj ponownie później"
	MsgFeatureDisabled   = "Ta funkcja jest wyłączona"
	MsgPageNotFound      = "Strona nie została znaleziona"
	MsgInvalidCredential = "Nieprawidłowy email lub hasło"
)

// ErrorReporter recibe los errores internos (lo cumple *monitoring.Reporter).
type ErrorReporter interface {
	Capture(err error, tags map[string]string)
}

// statusForError traduce un error de dominio a status y sobre de respuesta.
// fallback es el mensaje público para errores internos.
func statusForError(err error, fallback string) (int, dto.Result) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		r := dto.Fail(dto.CodeValidation, verr.Message)
		r.Field = verr.Field
		return fiber.StatusBadRequest, r
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, dto.Fail(dto.CodeConflict, MsgEmailExists)
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.Fail(dto.CodeValidation, MsgInvalidBody)
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.Fail(dto.CodeUnauthenticated, MsgUnauthenticated)
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.Fail(dto.CodeForbidden, MsgForbidden)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.Fail(dto.CodeNotFound, MsgPropertyNotFound)
	case errors.Is(err, domain.ErrActiveLease):
		return fiber.StatusConflict, dto.Fail(dto.CodeConflict, MsgActiveLease)
	case errors.Is(err, domain.ErrLeaseOverlap), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.Fail(dto.CodeConflict, MsgLeaseOverlap)
	}
	return fiber.StatusInternalServerError, dto.Fail(dto.CodeInternal, fallback)
}

// responder escribe errores de casos de uso. Los 5xx se registran y se reportan;
// el detalle interno nunca llega al cliente.
type responder struct {
	log      zerolog.Logger
	reporter ErrorReporter
}

func (r responder) fail(c *fiber.Ctx, err error, fallback string) error {
	status, body := statusForError(err, fallback)
	if status >= fiber.StatusInternalServerError {
		r.internal(c, err)
	}
	return c.Status(status).JSON(body)
}

func (r responder) internal(c *fiber.Ctx, err error) {
	reqID := GetRequestID(c)
	r.log.Error().Err(err).
		Str("request_id", reqID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error interno")
	if r.reporter != nil {
		r.reporter.Capture(err, map[string]string{
			"request_id": reqID,
			"path":       c.Path(),
			"user_id":    GetUserID(c),
		})
	}
}
