package rental

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

var (
	upperPL   = cases.Upper(language.Polish)
	printerPL = message.NewPrinter(language.Polish)
)

// Initials iniciales del nombre: primera letra de las dos primeras palabras,
// o los dos primeros caracteres si hay una sola palabra. En mayúsculas (reglas polacas).
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		a := []rune(parts[0])
		b := []rune(parts[1])
		return upperPL.String(string(a[0]) + string(b[0]))
	}
	r := []rune(strings.TrimSpace(name))
	if len(r) > 2 {
		r = r[:2]
	}
	return upperPL.String(string(r))
}

// FormatAmount importe en formato polaco (separador de miles, coma decimal, hasta 2 decimales).
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printerPL.Sprint(number.Decimal(f, number.MinFractionDigits(0), number.MaxFractionDigits(2)))
}

// FormatDate fecha como DD.MM.YYYY en la zona loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006")
}

// PaymentBadge etiqueta y color del estado de pago.
type PaymentBadge struct {
	Label string
	Color string // red, yellow, green
}

// PaymentStatusBadge traduce el estado del pago a su insignia.
func PaymentStatusBadge(status string) PaymentBadge {
	switch status {
	case entity.PaymentPaid:
		return PaymentBadge{Label: "Opłacona", Color: "green"}
	case entity.PaymentPartiallyPaid:
		return PaymentBadge{Label: "Częściowo opłacona", Color: "yellow"}
	default:
		return PaymentBadge{Label: "Nieopłacona", Color: "red"}
	}
}

// ClampIndex ajusta el índice de propiedad seleccionada al rango [0, n).
func ClampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
