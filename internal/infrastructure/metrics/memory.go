package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/braian-rent/braian-api/internal/application/ports"
)

var _ ports.MetricsSink = (*Memory)(nil)

// Memory implementación en memoria del puerto MetricsSink (contadores atómicos).
type Memory struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64

	reqTotal        atomic.Int64
	reqErrors       atomic.Int64
	reqClientErrors atomic.Int64
	reqNanos        atomic.Int64

	queries    atomic.Int64
	queryErrs  atomic.Int64
	queryNanos atomic.Int64
}

// NewMemory construye el sink vacío.
func NewMemory() *Memory {
	return &Memory{counters: make(map[string]*atomic.Int64)}
}

// Inc incrementa un contador con nombre.
func (m *Memory) Inc(name string) {
	m.counter(name).Add(1)
}

func (m *Memory) counter(name string) *atomic.Int64 {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()
	if ok {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.counters[name]; !ok {
		c = new(atomic.Int64)
		m.counters[name] = c
	}
	return c
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Memory) ObserveRequest(_ string, status int, d time.Duration) {
	m.reqTotal.Add(1)
	m.reqNanos.Add(int64(d))
	switch {
	case status >= 500:
		m.reqErrors.Add(1)
	case status >= 400:
		m.reqClientErrors.Add(1)
	}
}

// ObserveQuery registra una consulta SQL terminada.
func (m *Memory) ObserveQuery(d time.Duration, err error) {
	m.queries.Add(1)
	m.queryNanos.Add(int64(d))
	if err != nil {
		m.queryErrs.Add(1)
	}
}

// Snapshot copia los valores actuales.
func (m *Memory) Snapshot() ports.MetricsSnapshot {
	m.mu.RLock()
	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v.Load()
	}
	m.mu.RUnlock()

	return ports.MetricsSnapshot{
		Counters: counters,
		Requests: ports.RequestStats{
			Total:        m.reqTotal.Load(),
			Errors:       m.reqErrors.Load(),
			ClientErrors: m.reqClientErrors.Load(),
			AvgLatencyMs: avgMs(m.reqNanos.Load(), m.reqTotal.Load()),
		},
		Database: ports.QueryStats{
			Queries:      m.queries.Load(),
			Errors:       m.queryErrs.Load(),
			AvgLatencyMs: avgMs(m.queryNanos.Load(), m.queries.Load()),
		},
	}
}

func avgMs(totalNanos, n int64) float64 {
	if n == 0 {
		return 0
	}
	return float64(totalNanos) / float64(n) / float64(time.Millisecond)
}
