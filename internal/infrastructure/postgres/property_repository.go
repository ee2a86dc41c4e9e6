package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
	"github.com/braian-rent/braian-api/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementación del puerto PropertyRepository sobre PostgreSQL.
type PropertyRepo struct {
	q   Querier
	loc *time.Location // zona para calcular el mes en curso
}

// NewPropertyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier, loc *time.Location) *PropertyRepo {
	if loc == nil {
		loc = time.UTC
	}
	return &PropertyRepo{q: q, loc: loc}
}

// Contrato vigente (inicio más reciente) y pago del mes de ese contrato (vencimiento más reciente).
const listByOwnerQuery = `
	SELECT p.id, p.owner_id, p.address, p.city, p.postal_code, p.created_at, p.updated_at,
	       l.id, l.tenant_id, l.start_date, l.end_date, l.rent_amount,
	       t.id, t.name, t.email, t.phone,
	       pay.id, pay.amount_due, pay.amount_paid, pay.due_date, pay.type, pay.status, pay.description
	FROM properties p
	LEFT JOIN LATERAL (
		SELECT id, tenant_id, start_date, end_date, rent_amount
		FROM leases
		WHERE property_id = p.id AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC
		LIMIT 1
	) l ON true
	LEFT JOIN users t ON t.id = l.tenant_id
	LEFT JOIN LATERAL (
		SELECT id, amount_due, amount_paid, due_date, type, status, description
		FROM payments
		WHERE lease_id = l.id AND due_date >= $3 AND due_date < $4
		ORDER BY due_date DESC
		LIMIT 1
	) pay ON true
	WHERE p.owner_id = $1
	ORDER BY p.created_at DESC`

const ownerDocumentsQuery = `
	SELECT d.id, d.property_id, d.lease_id, d.type, d.file_url, d.expires_at, d.created_at
	FROM documents d
	JOIN properties p ON p.id = d.property_id
	WHERE p.owner_id = $1
	ORDER BY d.created_at DESC`

// ListByOwner devuelve las propiedades del propietario enriquecidas para el panel.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID string, now time.Time) ([]*entity.PropertyDetails, error) {
	monthStart, monthEnd := rental.MonthRange(now, r.loc)

	rows, err := r.q.Query(ctx, listByOwnerQuery, ownerID, now, monthStart, monthEnd)
	if err != nil {
		if isInvalidText(err) {
			return []*entity.PropertyDetails{}, nil
		}
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.PropertyDetails, 0)
	byID := make(map[string]*entity.PropertyDetails)
	for rows.Next() {
		d, err := scanPropertyDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		list = append(list, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	docRows, err := r.q.Query(ctx, ownerDocumentsQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer docRows.Close()
	for docRows.Next() {
		doc, err := scanDocument(docRows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if d, ok := byID[doc.PropertyID]; ok {
			d.Documents = append(d.Documents, doc)
		}
	}
	if err := docRows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return list, nil
}

func scanPropertyDetails(row pgx.Row) (*entity.PropertyDetails, error) {
	var (
		d entity.PropertyDetails

		leaseID, tenantID       *string
		leaseStart, leaseEnd    *time.Time
		rent                    decimal.NullDecimal
		tID, tName, tEmail      *string
		tPhone                  *string
		payID, payType, payStat *string
		payDue                  decimal.NullDecimal
		payPaid                 decimal.NullDecimal
		payDate                 *time.Time
		payDesc                 *string
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.Address, &d.City, &d.PostalCode, &d.CreatedAt, &d.UpdatedAt,
		&leaseID, &tenantID, &leaseStart, &leaseEnd, &rent,
		&tID, &tName, &tEmail, &tPhone,
		&payID, &payDue, &payPaid, &payDate, &payType, &payStat, &payDesc,
	)
	if err != nil {
		return nil, err
	}
	d.Documents = []*entity.Document{}

	if leaseID != nil {
		d.ActiveLease = &entity.Lease{
			ID:         *leaseID,
			PropertyID: d.ID,
			OwnerID:    d.OwnerID,
			TenantID:   deref(tenantID),
			StartDate:  derefTime(leaseStart),
			EndDate:    derefTime(leaseEnd),
			RentAmount: rent.Decimal,
		}
	}
	if tID != nil {
		d.Tenant = &entity.TenantContact{ID: *tID, Name: deref(tName), Email: deref(tEmail), Phone: deref(tPhone)}
	}
	if payID != nil {
		p := &entity.Payment{
			ID:          *payID,
			LeaseID:     deref(leaseID),
			AmountDue:   payDue.Decimal,
			DueDate:     derefTime(payDate),
			Type:        deref(payType),
			Status:      deref(payStat),
			Description: payDesc,
		}
		if payPaid.Valid {
			v := payPaid.Decimal
			p.AmountPaid = &v
		}
		d.CurrentPayment = p
	}
	return &d, nil
}

// GetByOwner obtiene la propiedad si pertenece al propietario; (nil, nil) en otro caso.
func (r *PropertyRepo) GetByOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	query := `
		SELECT id, owner_id, address, city, postal_code, created_at, updated_at
		FROM properties WHERE id = $1 AND owner_id = $2`
	var p entity.Property
	err := r.q.QueryRow(ctx, query, id, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Address, &p.City, &p.PostalCode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// Create persiste una nueva propiedad.
func (r *PropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (id, owner_id, address, city, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.OwnerID, p.Address, p.City, p.PostalCode, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// Update actualiza dirección, ciudad y código postal filtrando por id y propietario.
func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	query := `
		UPDATE properties SET address = $3, city = $4, postal_code = $5, updated_at = $6
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query, p.ID, p.OwnerID, p.Address, p.City, p.PostalCode, p.UpdatedAt)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteIfNoActiveLease bloquea la fila de la propiedad, comprueba contratos con fin >= now
// y borra (en cascada contratos, pagos y documentos), todo en una transacción.
// Los INSERT de contratos toman KEY SHARE sobre la misma fila, así que esperan al borrado.
func (r *PropertyRepo) DeleteIfNoActiveLease(ctx context.Context, id, ownerID string, now time.Time) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT id FROM properties WHERE id = $1 AND owner_id = $2 FOR UPDATE`, id, ownerID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock property: %w", err)
	}

	var blocking bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM leases WHERE property_id = $1 AND end_date >= $2)`, id, now,
	).Scan(&blocking)
	if err != nil {
		return fmt.Errorf("check leases: %w", err)
	}
	if blocking {
		return domain.ErrActiveLease
	}

	if _, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1 AND owner_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
