package seed

import (
	"context"

	"github.com/braian-rent/braian-api/internal/domain/repository"
)

// Stores repositorios atados a una misma transacción.
type Stores struct {
	Users       repository.UserRepository
	Properties  repository.PropertyRepository
	Leases      repository.LeaseRepository
	Payments    repository.PaymentRepository
	Documents   repository.DocumentRepository
	Maintenance repository.MaintenanceRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn falla no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(s Stores) error) error
}
