package repository

import "context"

// MaintenanceRepository operaciones de mantenimiento usadas por el seeder.
type MaintenanceRepository interface {
	// Reset borra todos los datos de negocio (usuarios, propiedades, contratos, pagos, documentos).
	Reset(ctx context.Context) error
}
