package entity

import "time"

// Tipos de documento.
const (
	DocumentLeaseAgreement   = "LEASE_AGREEMENT"
	DocumentInsurance        = "INSURANCE"
	DocumentHandoverProtocol = "HANDOVER_PROTOCOL"
	DocumentOther            = "OTHER"
)

// Document archivo asociado a una propiedad (y opcionalmente a un contrato). Inmutable.
type Document struct {
	ID         string
	PropertyID string
	LeaseID    *string
	Type       string
	FileURL    string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// ValidDocumentType informa si t es un tipo de documento conocido.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentLeaseAgreement, DocumentInsurance, DocumentHandoverProtocol, DocumentOther:
		return true
	}
	return false
}
