package dto

import "time"

// HealthResponse sobre de /api/health.
type HealthResponse struct {
	Status      string          `json:"status"` // healthy | unhealthy
	Timestamp   time.Time       `json:"timestamp"`
	Version     string          `json:"version"`
	Environment string          `json:"environment"`
	Services    HealthServices  `json:"services"`
	Features    map[string]bool `json:"features"`
	Metrics     HealthMetrics   `json:"metrics"`
	Error       string          `json:"error,omitempty"`
}

// HealthServices estado por componente.
type HealthServices struct {
	Database      DatabaseHealth    `json:"database"`
	Application   ApplicationHealth `json:"application"`
	Configuration ComponentHealth   `json:"configuration"`
	Monitoring    MonitoringHealth  `json:"monitoring"`
}

// ComponentHealth estado simple.
type ComponentHealth struct {
	Status string `json:"status"`
}

// DatabaseHealth estado de la base de datos. ResponseTimeMs solo se informa si se hizo ping.
type DatabaseHealth struct {
	Status         string       `json:"status"`
	ResponseTimeMs *int64       `json:"responseTime,omitempty"`
	Metrics        QueryMetrics `json:"metrics"`
}

// QueryMetrics agregados de consultas.
type QueryMetrics struct {
	Queries      int64   `json:"queries"`
	Errors       int64   `json:"errors"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// ApplicationHealth datos del proceso.
type ApplicationHealth struct {
	Status        string        `json:"status"`
	UptimeSeconds int64         `json:"uptime"`
	Memory        MemoryStats   `json:"memory"`
	Metrics       RequestMetric `json:"metrics"`
}

// MemoryStats memoria del runtime en bytes.
type MemoryStats struct {
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapSys    uint64 `json:"heapSys"`
	Sys        uint64 `json:"sys"`
	Goroutines int    `json:"goroutines"`
}

// RequestMetric agregados de peticiones.
type RequestMetric struct {
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ClientErrors int64   `json:"clientErrors"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// MonitoringHealth qué integraciones de observabilidad están activas.
type MonitoringHealth struct {
	Status    string `json:"status"`
	Logging   bool   `json:"logging"`
	Sentry    bool   `json:"sentry"`
	Telemetry bool   `json:"telemetry"`
}

// HealthMetrics contadores de negocio y del sistema.
type HealthMetrics struct {
	Business BusinessMetrics `json:"business"`
	System   SystemMetrics   `json:"system"`
}

// BusinessMetrics contadores de negocio desde el arranque.
type BusinessMetrics struct {
	UserLogins        int64 `json:"userLogins"`
	PropertiesCreated int64 `json:"propertiesCreated"`
}

// SystemMetrics información del runtime.
type SystemMetrics struct {
	GoVersion string `json:"goVersion"`
	NumCPU    int    `json:"numCpu"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}
