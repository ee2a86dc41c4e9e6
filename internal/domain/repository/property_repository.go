package repository

import (
	"context"
	"time"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// PropertyRepository puerto de persistencia de propiedades. Toda operación recibe el
// propietario explícito; una propiedad ajena se trata igual que una inexistente.
type PropertyRepository interface {
	// ListByOwner devuelve las propiedades (más recientes primero) con el contrato vigente en now,
	// su inquilino, el pago del mes de now y los documentos.
	ListByOwner(ctx context.Context, ownerID string, now time.Time) ([]*entity.PropertyDetails, error)
	GetByOwner(ctx context.Context, id, ownerID string) (*entity.Property, error)
	Create(ctx context.Context, p *entity.Property) error
	// Update devuelve domain.ErrNotFound si no hay fila con (id, owner).
	Update(ctx context.Context, p *entity.Property) error
	// DeleteIfNoActiveLease borra de forma atómica; domain.ErrNotFound o domain.ErrActiveLease.
	DeleteIfNoActiveLease(ctx context.Context, id, ownerID string, now time.Time) error
}
