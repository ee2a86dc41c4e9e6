// Package memory adaptadores en memoria de los puertos de repositorio para tests.
// Aplican las mismas reglas que el esquema PostgreSQL: filtro por propietario,
// contratos sin solapamiento y borrado en cascada.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/braian-rent/braian-api/internal/application/seed"
	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
	"github.com/braian-rent/braian-api/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.PropertyRepository    = (*PropertyRepo)(nil)
	_ repository.LeaseRepository       = (*LeaseRepo)(nil)
	_ repository.PaymentRepository     = (*PaymentRepo)(nil)
	_ repository.DocumentRepository    = (*DocumentRepo)(nil)
	_ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)
	_ seed.TxRunner                    = (*Store)(nil)
)

// Store datos compartidos por los repos en memoria.
type Store struct {
	mu         sync.RWMutex
	loc        *time.Location
	users      map[string]*entity.User
	properties map[string]*entity.Property
	leases     map[string]*entity.Lease
	payments   map[string]*entity.Payment
	documents  map[string]*entity.Document
	calls      atomic.Int64
}

// NewStore construye un almacén vacío; loc define el mes en curso.
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	s := &Store{loc: loc}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.users = make(map[string]*entity.User)
	s.properties = make(map[string]*entity.Property)
	s.leases = make(map[string]*entity.Lease)
	s.payments = make(map[string]*entity.Payment)
	s.documents = make(map[string]*entity.Document)
}

// Calls número de operaciones recibidas por cualquier repo del almacén.
func (s *Store) Calls() int64 { return s.calls.Load() }

func (s *Store) touch() { s.calls.Add(1) }

// Users, Properties, ... devuelven los repos atados al almacén.
func (s *Store) Users() *UserRepo              { return &UserRepo{s: s} }
func (s *Store) Properties() *PropertyRepo     { return &PropertyRepo{s: s} }
func (s *Store) Leases() *LeaseRepo            { return &LeaseRepo{s: s} }
func (s *Store) Payments() *PaymentRepo        { return &PaymentRepo{s: s} }
func (s *Store) Documents() *DocumentRepo      { return &DocumentRepo{s: s} }
func (s *Store) Maintenance() *MaintenanceRepo { return &MaintenanceRepo{s: s} }

// Run ejecuta fn con los repos del almacén. Sin rollback: un fallo deja lo ya escrito.
func (s *Store) Run(_ context.Context, fn func(seed.Stores) error) error {
	return fn(seed.Stores{
		Users:       s.Users(),
		Properties:  s.Properties(),
		Leases:      s.Leases(),
		Payments:    s.Payments(),
		Documents:   s.Documents(),
		Maintenance: s.Maintenance(),
	})
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo repo de usuarios en memoria.
type UserRepo struct{ s *Store }

// Create persiste el usuario; email repetido devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

// FindByID (nil, nil) si no existe.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// FindByEmail (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// List usuarios, más recientes primero.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Properties ────────────────────────────────────────────────────────────────

// PropertyRepo repo de propiedades en memoria.
type PropertyRepo struct{ s *Store }

// ListByOwner mismo resultado que la consulta LATERAL de PostgreSQL.
func (r *PropertyRepo) ListByOwner(_ context.Context, ownerID string, now time.Time) ([]*entity.PropertyDetails, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.PropertyDetails, 0)
	for _, p := range r.s.properties {
		if p.OwnerID != ownerID {
			continue
		}
		d := &entity.PropertyDetails{Property: *p, Documents: []*entity.Document{}}

		var leases []*entity.Lease
		for _, l := range r.s.leases {
			if l.PropertyID == p.ID {
				leases = append(leases, l)
			}
		}
		if active := rental.SelectActiveLease(leases, now); active != nil {
			cp := *active
			d.ActiveLease = &cp
			if t, ok := r.s.users[active.TenantID]; ok {
				d.Tenant = &entity.TenantContact{ID: t.ID, Name: t.Name, Email: t.Email, Phone: t.Phone}
			}
			payments := make([]*entity.Payment, 0, len(r.s.payments))
			for _, pay := range r.s.payments {
				payments = append(payments, pay)
			}
			if cur := rental.SelectCurrentPayment(payments, active.ID, now, r.s.loc); cur != nil {
				cp := *cur
				d.CurrentPayment = &cp
			}
		}
		for _, doc := range r.s.documents {
			if doc.PropertyID == p.ID {
				cp := *doc
				d.Documents = append(d.Documents, &cp)
			}
		}
		rental.SortDocumentsNewestFirst(d.Documents)
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetByOwner (nil, nil) si no existe o es de otro propietario.
func (r *PropertyRepo) GetByOwner(_ context.Context, id, ownerID string) (*entity.Property, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.properties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Create persiste la propiedad.
func (r *PropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[p.OwnerID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *p
	r.s.properties[p.ID] = &cp
	return nil
}

// Update ErrNotFound si no existe o es de otro propietario.
func (r *PropertyRepo) Update(_ context.Context, p *entity.Property) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.properties[p.ID]
	if !ok || cur.OwnerID != p.OwnerID {
		return domain.ErrNotFound
	}
	cur.Address, cur.City, cur.PostalCode, cur.UpdatedAt = p.Address, p.City, p.PostalCode, p.UpdatedAt
	return nil
}

// DeleteIfNoActiveLease comprueba y borra bajo el mismo lock (cascada incluida).
func (r *PropertyRepo) DeleteIfNoActiveLease(_ context.Context, id, ownerID string, now time.Time) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	var leases []*entity.Lease
	for _, l := range r.s.leases {
		if l.PropertyID == id {
			leases = append(leases, l)
		}
	}
	if rental.HasBlockingLease(leases, now) {
		return domain.ErrActiveLease
	}
	for _, l := range leases {
		for pid, pay := range r.s.payments {
			if pay.LeaseID == l.ID {
				delete(r.s.payments, pid)
			}
		}
		delete(r.s.leases, l.ID)
	}
	for did, d := range r.s.documents {
		if d.PropertyID == id {
			delete(r.s.documents, did)
		}
	}
	delete(r.s.properties, id)
	return nil
}

// ── Leases, payments, documents ───────────────────────────────────────────────

// LeaseRepo repo de contratos en memoria.
type LeaseRepo struct{ s *Store }

// Create rechaza periodos superpuestos en la misma propiedad (límites inclusivos).
func (r *LeaseRepo) Create(_ context.Context, l *entity.Lease) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[l.PropertyID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.leases {
		if other.PropertyID == l.PropertyID &&
			!l.StartDate.After(other.EndDate) && !other.StartDate.After(l.EndDate) {
			return domain.ErrLeaseOverlap
		}
	}
	cp := *l
	r.s.leases[l.ID] = &cp
	return nil
}

// ListByProperty contratos de la propiedad del propietario, inicio más reciente primero.
func (r *LeaseRepo) ListByProperty(_ context.Context, propertyID, ownerID string) ([]*entity.Lease, error) {
	r.s.touch()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Lease
	for _, l := range r.s.leases {
		if l.PropertyID == propertyID && l.OwnerID == ownerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// PaymentRepo repo de pagos en memoria.
type PaymentRepo struct{ s *Store }

// Create persiste el pago.
func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leases[p.LeaseID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

// DocumentRepo repo de documentos en memoria.
type DocumentRepo struct{ s *Store }

// Create persiste el documento.
func (r *DocumentRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[d.PropertyID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.s.documents[d.ID] = &cp
	return nil
}

// MaintenanceRepo limpieza en memoria.
type MaintenanceRepo struct{ s *Store }

// Reset vacía el almacén.
func (r *MaintenanceRepo) Reset(_ context.Context) error {
	r.s.touch()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reset()
	return nil
}
