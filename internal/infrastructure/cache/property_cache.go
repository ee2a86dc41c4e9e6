package cache

import (
	"sync"
	"time"

	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/domain/entity"
)

var _ ports.PropertyListCache = (*PropertyCache)(nil)

type entry struct {
	list    []*entity.PropertyDetails
	expires time.Time
}

// PropertyCache caché TTL en memoria del listado por propietario. Con ttl <= 0 no guarda nada.
// Cada propietario tiene una generación que Invalidate incrementa; Set descarta listados
// leídos antes de la última invalidación.
type PropertyCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	entries     map[string]entry
	generations map[string]uint64
	now         func() time.Time
}

// NewPropertyCache construye la caché.
func NewPropertyCache(ttl time.Duration) *PropertyCache {
	return &PropertyCache{
		ttl:         ttl,
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (c *PropertyCache) WithClock(now func() time.Time) *PropertyCache {
	c.now = now
	return c
}

// Get devuelve el listado si existe y no expiró. En un fallo devuelve la generación
// vigente, que hay que pasar a Set.
func (c *PropertyCache) Get(ownerID string) ([]*entity.PropertyDetails, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.generations[ownerID]
	if c.ttl <= 0 {
		return nil, gen, false
	}
	e, ok := c.entries[ownerID]
	if !ok {
		return nil, gen, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, ownerID)
		return nil, gen, false
	}
	return e.list, gen, true
}

// Set guarda el listado solo si no hubo Invalidate desde la generación gen.
func (c *PropertyCache) Set(ownerID string, list []*entity.PropertyDetails, gen uint64) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[ownerID] != gen {
		return false
	}
	c.entries[ownerID] = entry{list: list, expires: c.now().Add(c.ttl)}
	return true
}

// Invalidate descarta el listado del propietario y avanza su generación.
func (c *PropertyCache) Invalidate(ownerID string) {
	c.mu.Lock()
	delete(c.entries, ownerID)
	c.generations[ownerID]++
	c.mu.Unlock()
}
