package postgres

import (
	"context"
	"fmt"

	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/repository"
)

var _ repository.LeaseRepository = (*LeaseRepo)(nil)

// LeaseRepo implementación del puerto LeaseRepository sobre PostgreSQL.
type LeaseRepo struct {
	q Querier
}

// NewLeaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeaseRepository(q Querier) *LeaseRepo {
	return &LeaseRepo{q: q}
}

// Create persiste un contrato. La restricción leases_no_overlap rechaza periodos superpuestos.
func (r *LeaseRepo) Create(ctx context.Context, l *entity.Lease) error {
	query := `
		INSERT INTO leases (id, property_id, owner_id, tenant_id, start_date, end_date, rent_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.PropertyID, l.OwnerID, l.TenantID, l.StartDate, l.EndDate, l.RentAmount, l.CreatedAt,
	)
	if err != nil {
		switch {
		case isExclusionViolation(err):
			return domain.ErrLeaseOverlap
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert lease: %w", err)
	}
	return nil
}

// ListByProperty contratos de una propiedad del propietario, más recientes primero.
func (r *LeaseRepo) ListByProperty(ctx context.Context, propertyID, ownerID string) ([]*entity.Lease, error) {
	query := `
		SELECT id, property_id, owner_id, tenant_id, start_date, end_date, rent_amount, created_at
		FROM leases WHERE property_id = $1 AND owner_id = $2
		ORDER BY start_date DESC`
	rows, err := r.q.Query(ctx, query, propertyID, ownerID)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lease
	for rows.Next() {
		var l entity.Lease
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.OwnerID, &l.TenantID, &l.StartDate, &l.EndDate, &l.RentAmount, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
