// Package validation valida los DTO de entrada con go-playground/validator y traduce
// la primera regla incumplida a un domain.ValidationError con el mensaje para el usuario.
package validation

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/braian-rent/braian-api/internal/domain"
)

// PostalCodePattern formato XX-XXX.
var PostalCodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según el tag json (address, postalCode, ...).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return PostalCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// Mensajes por campo (cualquier regla) y por campo+regla.
var fieldMessages = map[string]string{
	"address":    "Adres musi mieć minimum 5 znaków",
	"city":       "Miasto musi mieć minimum 2 znaki",
	"postalCode": "Nieprawidłowy kod pocztowy (format: XX-XXX)",
	"propertyId": "Brak identyfikatora nieruchomości",
	"email":      "Nieprawidłowy adres email",
	"phone":      "Nieprawidłowy numer telefonu",
	"name":       "Nieprawidłowe imię i nazwisko",
}

var ruleMessages = map[string]string{
	"address.max":  "Adres może mieć maksymalnie 255 znaków",
	"city.max":     "Miasto może mieć maksymalnie 100 znaków",
	"password.min": "Hasło musi mieć minimum 8 znaków",
}

// Struct valida s y devuelve el primer campo inválido como *domain.ValidationError.
func Struct(ctx context.Context, s any) error {
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInvalidInput
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field(), message(fe))
}

// StructRequired como Struct, pero un campo obligatorio vacío devuelve el mensaje
// genérico requiredMsg (formularios donde todos los campos son obligatorios).
func StructRequired(ctx context.Context, s any, requiredMsg string) error {
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInvalidInput
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.NewValidationError(fe.Field(), requiredMsg)
		}
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	if m, ok := ruleMessages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := fieldMessages[fe.Field()]; ok {
		return m
	}
	return "Nieprawidłowa wartość pola " + fe.Field()
}
