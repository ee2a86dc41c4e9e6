package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/braian-rent/braian-api/internal/application/seed"
)

// Ensure TxRunner implements seed.TxRunner.
var _ seed.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, loc *time.Location) *TxRunner {
	return &TxRunner{pool: pool, loc: loc}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(s seed.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stores := seed.Stores{
		Users:       NewUserRepository(tx),
		Properties:  NewPropertyRepository(tx, r.loc),
		Leases:      NewLeaseRepository(tx),
		Payments:    NewPaymentRepository(tx),
		Documents:   NewDocumentRepository(tx),
		Maintenance: NewMaintenanceRepository(tx),
	}
	if err := fn(stores); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
