package postgres

import (
	"context"
	"fmt"

	"github.com/braian-rent/braian-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo operaciones de limpieza para el seeder.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador.
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

// Reset vacía las tablas de negocio. No toca schema_migrations.
func (r *MaintenanceRepo) Reset(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `TRUNCATE documents, payments, leases, properties, users`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}
