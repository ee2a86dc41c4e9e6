package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease contrato de alquiler entre propietario e inquilino sobre una propiedad.
type Lease struct {
	ID         string
	PropertyID string
	OwnerID    string
	TenantID   string
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal
	CreatedAt  time.Time
}

// IsActiveAt informa si el contrato está vigente en t (límites inclusivos).
func (l *Lease) IsActiveAt(t time.Time) bool {
	if l == nil {
		return false
	}
	return !t.Before(l.StartDate) && !t.After(l.EndDate)
}

// BlocksDeletion informa si el contrato impide borrar la propiedad: termina en t o después.
func (l *Lease) BlocksDeletion(t time.Time) bool {
	return l != nil && !l.EndDate.Before(t)
}
