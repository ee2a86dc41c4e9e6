package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago. Se escriben directamente; no hay proceso que los recalcule.
const (
	PaymentUnpaid        = "UNPAID"
	PaymentPartiallyPaid = "PARTIALLY_PAID"
	PaymentPaid          = "PAID"
)

// Tipos de pago.
const (
	PaymentTypeRent      = "RENT"
	PaymentTypeUtilities = "UTILITIES"
	PaymentTypeDeposit   = "DEPOSIT"
	PaymentTypeOther     = "OTHER"
)

// Payment cuota de un contrato.
type Payment struct {
	ID          string
	LeaseID     string
	AmountDue   decimal.Decimal
	AmountPaid  *decimal.Decimal
	DueDate     time.Time
	Type        string
	Status      string
	Description *string
	CreatedAt   time.Time
}

// Outstanding importe pendiente (nunca negativo).
func (p *Payment) Outstanding() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	paid := decimal.Zero
	if p.AmountPaid != nil {
		paid = *p.AmountPaid
	}
	rest := p.AmountDue.Sub(paid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
