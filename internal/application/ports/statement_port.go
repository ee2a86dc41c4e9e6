package ports

import (
	"context"
	"time"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// StatementData datos del estado de cuenta de una propiedad.
type StatementData struct {
	Property     *entity.PropertyDetails
	Leases       []*entity.Lease // todos los contratos, inicio más reciente primero
	OwnerName    string
	GeneratedAt  time.Time
	Location     *time.Location
	DashboardURL string
}

// StatementRenderer puerto de salida para generar el PDF del estado de cuenta.
type StatementRenderer interface {
	RenderStatement(ctx context.Context, data StatementData) ([]byte, error)
}
