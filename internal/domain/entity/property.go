package entity

import "time"

// Property inmueble de un propietario. Todo acceso se filtra por OwnerID.
type Property struct {
	ID         string
	OwnerID    string
	Address    string
	City       string
	PostalCode string // XX-XXX
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TenantContact datos de contacto del inquilino del contrato vigente.
type TenantContact struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// PropertyDetails propiedad enriquecida para el panel: inquilino y pago del contrato vigente
// y todos los documentos (más recientes primero).
type PropertyDetails struct {
	Property
	ActiveLease    *Lease
	Tenant         *TenantContact
	CurrentPayment *Payment
	Documents      []*Document
}
