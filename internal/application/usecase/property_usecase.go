package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/application/validation"
	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
	"github.com/braian-rent/braian-api/internal/domain/repository"
)

// PropertyDeps dependencias opcionales del caso de uso de propiedades.
type PropertyDeps struct {
	Cache        ports.PropertyListCache // nil desactiva la caché
	Metrics      ports.MetricsSink
	Statements   ports.StatementRenderer
	Users        repository.UserRepository  // nombre del propietario en el PDF
	Leases       repository.LeaseRepository // historial de contratos en el PDF
	Location     *time.Location
	DashboardURL string
	Now          func() time.Time
}

// PropertyUseCase casos de uso de propiedades. Toda operación va filtrada por el propietario
// de la sesión; una propiedad ajena se trata igual que una inexistente.
type PropertyUseCase struct {
	repo repository.PropertyRepository
	deps PropertyDeps
}

// NewPropertyUseCase construye el caso de uso.
func NewPropertyUseCase(repo repository.PropertyRepository, deps PropertyDeps) *PropertyUseCase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &PropertyUseCase{repo: repo, deps: deps}
}

// List propiedades del propietario con inquilino vigente, pago del mes y documentos.
func (uc *PropertyUseCase) List(ctx context.Context, ownerID string) ([]dto.PropertyDetailsResponse, error) {
	details, err := uc.ListDetails(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := uc.deps.Now()
	out := make([]dto.PropertyDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toPropertyDetailsResponse(d, now))
	}
	return out, nil
}

// ListDetails como List pero devuelve las entidades (vistas del panel y PDF).
func (uc *PropertyUseCase) ListDetails(ctx context.Context, ownerID string) ([]*entity.PropertyDetails, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	var gen uint64
	if uc.deps.Cache != nil {
		list, g, ok := uc.deps.Cache.Get(ownerID)
		if ok {
			uc.inc(ports.MetricPropertyCacheHits)
			return list, nil
		}
		gen = g
		uc.inc(ports.MetricPropertyCacheMiss)
	}
	list, err := uc.repo.ListByOwner(ctx, ownerID, uc.deps.Now())
	if err != nil {
		return nil, err
	}
	if uc.deps.Cache != nil {
		uc.deps.Cache.Set(ownerID, list, gen)
	}
	return list, nil
}

// Get obtiene una propiedad del propietario; ErrNotFound si no existe o es ajena.
func (uc *PropertyUseCase) Get(ctx context.Context, id, ownerID string) (*dto.PropertyResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.repo.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPropertyResponse(p), nil
}

// Create valida y crea una propiedad para el propietario.
func (uc *PropertyUseCase) Create(ctx context.Context, ownerID string, in dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	if err := validation.Struct(ctx, in); err != nil {
		return nil, err
	}
	now := uc.deps.Now()
	p := &entity.Property{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ownerID)
	uc.inc(ports.MetricPropertiesCreated)
	return toPropertyResponse(p), nil
}

// Update aplica los campos presentes; ErrNotFound si no existe o es ajena.
func (uc *PropertyUseCase) Update(ctx context.Context, ownerID string, in dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.PropertyID = strings.TrimSpace(in.PropertyID)
	in.Address = trimPtr(in.Address)
	in.City = trimPtr(in.City)
	in.PostalCode = trimPtr(in.PostalCode)
	if err := validation.Struct(ctx, in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByOwner(ctx, in.PropertyID, ownerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
	p.UpdatedAt = uc.deps.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ownerID)
	uc.inc(ports.MetricPropertiesUpdated)
	return toPropertyResponse(p), nil
}

// Delete borra la propiedad si ningún contrato termina hoy o después.
// ErrNotFound si no existe o es ajena; ErrActiveLease si hay contratos vigentes o futuros.
func (uc *PropertyUseCase) Delete(ctx context.Context, ownerID, propertyID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	propertyID = strings.TrimSpace(propertyID)
	if err := validation.Struct(ctx, dto.DeletePropertyRequest{PropertyID: propertyID}); err != nil {
		return err
	}
	if err := uc.repo.DeleteIfNoActiveLease(ctx, propertyID, ownerID, uc.deps.Now()); err != nil {
		return err
	}
	uc.invalidate(ownerID)
	uc.inc(ports.MetricPropertiesDeleted)
	return nil
}

// Statement genera el PDF del estado de cuenta de una propiedad.
func (uc *PropertyUseCase) Statement(ctx context.Context, id, ownerID string) ([]byte, error) {
	if uc.deps.Statements == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.ListDetails(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var target *entity.PropertyDetails
	for _, d := range list {
		if d.ID == id {
			target = d
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	ownerName := ""
	if uc.deps.Users != nil {
		if u, err := uc.deps.Users.FindByID(ctx, ownerID); err == nil && u != nil {
			ownerName = u.Name
		}
	}
	var leases []*entity.Lease
	if uc.deps.Leases != nil {
		if leases, err = uc.deps.Leases.ListByProperty(ctx, id, ownerID); err != nil {
			return nil, err
		}
	}
	return uc.deps.Statements.RenderStatement(ctx, ports.StatementData{
		Property:     target,
		Leases:       leases,
		OwnerName:    ownerName,
		GeneratedAt:  uc.deps.Now(),
		Location:     uc.deps.Location,
		DashboardURL: uc.deps.DashboardURL,
	})
}

// Summary agrega la cartera: ocupación, renta mensual de los contratos vigentes,
// pagos del mes y documentos que requieren atención (vencidos, por revisar o por vencer).
func (uc *PropertyUseCase) Summary(ctx context.Context, ownerID string) (*dto.PortfolioSummary, error) {
	list, err := uc.ListDetails(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := uc.deps.Now()
	out := &dto.PortfolioSummary{Properties: len(list)}
	rent, due, outstanding := decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range list {
		if d.ActiveLease != nil {
			out.Occupied++
			rent = rent.Add(d.ActiveLease.RentAmount)
		}
		if p := d.CurrentPayment; p != nil {
			due = due.Add(p.AmountDue)
			outstanding = outstanding.Add(p.Outstanding())
			if p.Status != entity.PaymentPaid {
				out.UnpaidPayments++
			}
		}
		for _, doc := range d.Documents {
			if rental.EvaluateDocument(doc, now) != rental.DocumentValid {
				out.DocumentsAttention++
			}
		}
	}
	out.Vacant = out.Properties - out.Occupied
	out.MonthlyRent = rent.InexactFloat64()
	out.CurrentDue = due.InexactFloat64()
	out.CurrentOutstanding = outstanding.InexactFloat64()
	return out, nil
}

func (uc *PropertyUseCase) invalidate(ownerID string) {
	if uc.deps.Cache != nil {
		uc.deps.Cache.Invalidate(ownerID)
	}
}

func (uc *PropertyUseCase) inc(name string) {
	if uc.deps.Metrics != nil {
		uc.deps.Metrics.Inc(name)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toPropertyResponse(p *entity.Property) *dto.PropertyResponse {
	if p == nil {
		return nil
	}
	return &dto.PropertyResponse{
		ID:         p.ID,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPropertyDetailsResponse(d *entity.PropertyDetails, now time.Time) dto.PropertyDetailsResponse {
	out := dto.PropertyDetailsResponse{
		ID:         d.ID,
		Address:    d.Address,
		City:       d.City,
		PostalCode: d.PostalCode,
		Documents:  make([]dto.DocumentResponse, 0, len(d.Documents)),
	}
	if d.Tenant != nil {
		out.Tenant = &dto.TenantResponse{ID: d.Tenant.ID, Name: d.Tenant.Name, Email: d.Tenant.Email, Phone: d.Tenant.Phone}
	}
	if p := d.CurrentPayment; p != nil {
		pr := &dto.PaymentResponse{
			ID:          p.ID,
			AmountDue:   p.AmountDue.InexactFloat64(),
			DueDate:     p.DueDate,
			Status:      p.Status,
			Type:        p.Type,
			Description: p.Description,
		}
		if p.AmountPaid != nil {
			v := p.AmountPaid.InexactFloat64()
			pr.AmountPaid = &v
		}
		out.CurrentPayment = pr
	}
	for _, doc := range d.Documents {
		status := rental.EvaluateDocument(doc, now)
		out.Documents = append(out.Documents, dto.DocumentResponse{
			ID:          doc.ID,
			Type:        doc.Type,
			FileURL:     doc.FileURL,
			ExpiresAt:   doc.ExpiresAt,
			CreatedAt:   doc.CreatedAt,
			Status:      string(status),
			StatusColor: status.Color(),
		})
	}
	return out
}
