package ports

import "time"

// Contadores de negocio expuestos en /api/health.
const (
	MetricUserLogins        = "user_logins"
	MetricLoginFailures     = "login_failures"
	MetricRegistrations     = "registrations"
	MetricPropertiesCreated = "properties_created"
	MetricPropertiesUpdated = "properties_updated"
	MetricPropertiesDeleted = "properties_deleted"
	MetricPropertyCacheHits = "property_cache_hits"
	MetricPropertyCacheMiss = "property_cache_misses"
)

// MetricsSink define el puerto de salida para métricas de proceso.
// Siguiendo DIP, los casos de uso solo conocen este contrato; el adaptador en memoria
// (o cualquier otro backend) lo implementa. Los valores se pierden al reiniciar.
type MetricsSink interface {
	Inc(name string)
	ObserveRequest(method string, status int, d time.Duration)
	ObserveQuery(d time.Duration, err error)
	Snapshot() MetricsSnapshot
}

// MetricsSnapshot copia consistente de los contadores.
type MetricsSnapshot struct {
	Counters map[string]int64
	Requests RequestStats
	Database QueryStats
}

// RequestStats agregados de peticiones HTTP.
type RequestStats struct {
	Total        int64
	Errors       int64 // status >= 500
	ClientErrors int64 // 400..499
	AvgLatencyMs float64
}

// QueryStats agregados de consultas SQL.
type QueryStats struct {
	Queries      int64
	Errors       int64
	AvgLatencyMs float64
}

// Counter devuelve el valor de un contador (0 si no existe).
func (s MetricsSnapshot) Counter(name string) int64 {
	return s.Counters[name]
}
