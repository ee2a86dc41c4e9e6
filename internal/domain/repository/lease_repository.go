package repository

import (
	"context"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// LeaseRepository puerto para contratos. Create devuelve domain.ErrLeaseOverlap si el
// periodo se superpone con otro contrato de la misma propiedad.
type LeaseRepository interface {
	Create(ctx context.Context, l *entity.Lease) error
	ListByProperty(ctx context.Context, propertyID, ownerID string) ([]*entity.Lease, error)
}

// PaymentRepository puerto para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
}

// DocumentRepository puerto para documentos (solo alta; son inmutables).
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
}
