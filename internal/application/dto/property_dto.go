package dto

import "time"

// CreatePropertyRequest campos del formulario de alta.
type CreatePropertyRequest struct {
	Address    string `json:"address" form:"address" validate:"required,min=5,max=255"`
	City       string `json:"city" form:"city" validate:"required,min=2,max=100"`
	PostalCode string `json:"postalCode" form:"postalCode" validate:"required,postalcode"`
}

// UpdatePropertyRequest actualización parcial; los campos nil no se tocan.
type UpdatePropertyRequest struct {
	PropertyID string  `json:"propertyId" form:"propertyId" validate:"required"`
	Address    *string `json:"address,omitempty" form:"address" validate:"omitnil,min=5,max=255"`
	City       *string `json:"city,omitempty" form:"city" validate:"omitnil,min=2,max=100"`
	PostalCode *string `json:"postalCode,omitempty" form:"postalCode" validate:"omitnil,postalcode"`
}

// DeletePropertyRequest identificador de la propiedad a borrar.
type DeletePropertyRequest struct {
	PropertyID string `json:"propertyId" form:"propertyId" validate:"required"`
}

// PropertyResponse propiedad sin enriquecer.
type PropertyResponse struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TenantResponse contacto del inquilino del contrato vigente.
type TenantResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PaymentResponse pago del mes en curso.
type PaymentResponse struct {
	ID          string    `json:"id"`
	AmountDue   float64   `json:"amountDue"`
	AmountPaid  *float64  `json:"amountPaid"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
}

// DocumentResponse documento con su estado evaluado al leer.
type DocumentResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	FileURL     string     `json:"fileUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
	StatusColor string     `json:"statusColor"`
}

// PropertyDetailsResponse propiedad enriquecida para el panel.
type PropertyDetailsResponse struct {
	ID             string             `json:"id"`
	Address        string             `json:"address"`
	City           string             `json:"city"`
	PostalCode     string             `json:"postalCode"`
	Tenant         *TenantResponse    `json:"tenant"`
	CurrentPayment *PaymentResponse   `json:"currentPayment"`
	Documents      []DocumentResponse `json:"documents"`
}

// PortfolioSummary resumen de la cartera del propietario en el mes en curso.
type PortfolioSummary struct {
	Properties         int     `json:"properties"`
	Occupied           int     `json:"occupied"`
	Vacant             int     `json:"vacant"`
	MonthlyRent        float64 `json:"monthlyRent"`
	CurrentDue         float64 `json:"currentDue"`
	CurrentOutstanding float64 `json:"currentOutstanding"`
	UnpaidPayments     int     `json:"unpaidPayments"`
	DocumentsAttention int     `json:"documentsAttention"`
}
