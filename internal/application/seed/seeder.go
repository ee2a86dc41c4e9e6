package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/validation"
	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// Datos de demostración.
const (
	DemoPassword    = "TestPassword123!"
	DemoOwnerEmail  = "marek.wlasciciel@example.com"
	DemoTenantEmail = "anna.najemca@example.com"
	demoDocumentURL = "https://example.com/umowa.pdf"
)

// Result identificadores creados por una siembra.
type Result struct {
	OwnerID    string
	TenantID   string
	PropertyID string
	LeaseID    string
	PaymentID  string
}

// Seeder carga datos de demostración y altas manuales desde el CLI.
type Seeder struct {
	tx         TxRunner
	log        zerolog.Logger
	loc        *time.Location
	bcryptCost int
	now        func() time.Time
}

// NewSeeder construye el seeder. loc define el mes del pago de ejemplo.
func NewSeeder(tx TxRunner, log zerolog.Logger, loc *time.Location, bcryptCost int) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{tx: tx, log: log, loc: loc, bcryptCost: bcryptCost, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Seed vacía la base y crea propietario, inquilino, propiedad, contrato vigente con su
// documento y el pago del mes. Todo en una transacción.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	res := &Result{}

	err = s.tx.Run(ctx, func(st Stores) error {
		s.log.Info().Msg("limpiando datos existentes")
		if err := st.Maintenance.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		owner := &entity.User{
			ID: uuid.New().String(), Email: DemoOwnerEmail, PasswordHash: string(hash),
			Name: "Marek Właściciel", Phone: "+48 123 456 789", Role: entity.RoleOwner,
			CreatedAt: now, UpdatedAt: now,
		}
		tenant := &entity.User{
			ID: uuid.New().String(), Email: DemoTenantEmail, PasswordHash: string(hash),
			Name: "Anna Najemca", Phone: "+48 987 654 321", Role: entity.RoleTenant,
			CreatedAt: now, UpdatedAt: now,
		}
		for _, u := range []*entity.User{owner, tenant} {
			if err := st.Users.Create(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
		}
		res.OwnerID, res.TenantID = owner.ID, tenant.ID

		property := &entity.Property{
			ID: uuid.New().String(), OwnerID: owner.ID,
			Address: "ul. Poznańska 12/3", City: "Warszawa", PostalCode: "00-680",
			CreatedAt: now, UpdatedAt: now,
		}
		if err := st.Properties.Create(ctx, property); err != nil {
			return fmt.Errorf("create property: %w", err)
		}
		res.PropertyID = property.ID

		rent := decimal.NewFromInt(2500)
		lease, payment, err := s.leaseWithPayment(ctx, st, property, tenant.ID, rent, nil)
		if err != nil {
			return err
		}
		res.LeaseID, res.PaymentID = lease.ID, payment.ID

		doc := &entity.Document{
			ID: uuid.New().String(), PropertyID: property.ID, LeaseID: &lease.ID,
			Type: entity.DocumentLeaseAgreement, FileURL: demoDocumentURL, CreatedAt: now,
		}
		if err := st.Documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("owner_id", res.OwnerID).
		Str("tenant_id", res.TenantID).
		Str("property_id", res.PropertyID).
		Msg("siembra completada")
	return res, nil
}

// PropertySample alta manual de una propiedad con inquilino, contrato y pago del mes.
type PropertySample struct {
	OwnerEmail  string
	Address     string
	City        string
	PostalCode  string
	TenantEmail string
	TenantName  string
	TenantPhone string
	Rent        decimal.Decimal
	Description string
}

// AddProperty crea la propiedad para un propietario existente. El inquilino se reutiliza
// si ya existe; si no, se crea con una contraseña aleatoria (no puede iniciar sesión).
func (s *Seeder) AddProperty(ctx context.Context, in PropertySample) (*Result, error) {
	if err := validation.Struct(ctx, dto.CreatePropertyRequest{
		Address: in.Address, City: in.City, PostalCode: in.PostalCode,
	}); err != nil {
		return nil, err
	}
	if !in.Rent.IsPositive() {
		return nil, domain.NewValidationError("rent", "Kwota czynszu musi być większa od zera")
	}
	now := s.now()
	res := &Result{}

	err := s.tx.Run(ctx, func(st Stores) error {
		owner, err := st.Users.FindByEmail(ctx, in.OwnerEmail)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrUserNotFound
		}
		res.OwnerID = owner.ID

		tenant, err := st.Users.FindByEmail(ctx, in.TenantEmail)
		if err != nil {
			return err
		}
		if tenant == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), s.bcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			tenant = &entity.User{
				ID: uuid.New().String(), Email: in.TenantEmail, PasswordHash: string(hash),
				Name: in.TenantName, Phone: in.TenantPhone, Role: entity.RoleTenant,
				CreatedAt: now, UpdatedAt: now,
			}
			if err := st.Users.Create(ctx, tenant); err != nil {
				return fmt.Errorf("create tenant: %w", err)
			}
		}
		res.TenantID = tenant.ID

		property := &entity.Property{
			ID: uuid.New().String(), OwnerID: owner.ID,
			Address: in.Address, City: in.City, PostalCode: in.PostalCode,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := st.Properties.Create(ctx, property); err != nil {
			return fmt.Errorf("create property: %w", err)
		}
		res.PropertyID = property.ID

		var desc *string
		if in.Description != "" {
			desc = &in.Description
		}
		lease, payment, err := s.leaseWithPayment(ctx, st, property, tenant.ID, in.Rent, desc)
		if err != nil {
			return err
		}
		res.LeaseID, res.PaymentID = lease.ID, payment.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("property_id", res.PropertyID).Str("owner_id", res.OwnerID).Msg("propiedad añadida")
	return res, nil
}

// leaseWithPayment contrato vigente (6 meses atrás, 12 adelante) y cuota impaga
// con vencimiento el día 10 del mes en curso.
func (s *Seeder) leaseWithPayment(ctx context.Context, st Stores, p *entity.Property, tenantID string,
	rent decimal.Decimal, desc *string) (*entity.Lease, *entity.Payment, error) {
	now := s.now()
	lease := &entity.Lease{
		ID: uuid.New().String(), PropertyID: p.ID, OwnerID: p.OwnerID, TenantID: tenantID,
		StartDate: now.AddDate(0, -6, 0), EndDate: now.AddDate(1, 0, 0),
		RentAmount: rent, CreatedAt: now,
	}
	if err := st.Leases.Create(ctx, lease); err != nil {
		return nil, nil, fmt.Errorf("create lease: %w", err)
	}

	local := now.In(s.loc)
	due := time.Date(local.Year(), local.Month(), 10, 12, 0, 0, 0, s.loc)
	payment := &entity.Payment{
		ID: uuid.New().String(), LeaseID: lease.ID, AmountDue: rent, DueDate: due,
		Type: entity.PaymentTypeRent, Status: entity.PaymentUnpaid, Description: desc, CreatedAt: now,
	}
	if err := st.Payments.Create(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("create payment: %w", err)
	}
	return lease, payment, nil
}
