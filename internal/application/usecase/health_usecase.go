package usecase

import (
	"context"
	"runtime"
	"time"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
)

// Estados del sobre de salud.
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
	HealthUnknown   = "unknown"
)

// Pinger comprueba la conexión con la base de datos (pgxpool.Pool lo cumple).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthInfo datos estáticos del despliegue.
type HealthInfo struct {
	Version     string
	Environment string
	Sentry      bool
	Telemetry   bool
	ConfigError error // nil si la configuración se validó al arrancar
}

// HealthUseCase arma el sobre de /api/health. Report no toca la base de datos;
// Ready además hace ping.
type HealthUseCase struct {
	db       Pinger
	metrics  ports.MetricsSink
	features *FeatureService
	info     HealthInfo
	started  time.Time
	now      func() time.Time
}

// NewHealthUseCase construye el caso de uso. db y metrics pueden ser nil.
func NewHealthUseCase(db Pinger, metrics ports.MetricsSink, features *FeatureService, info HealthInfo) *HealthUseCase {
	return &HealthUseCase{
		db:       db,
		metrics:  metrics,
		features: features,
		info:     info,
		started:  time.Now(),
		now:      time.Now,
	}
}

// Report estado sin dependencia de la base de datos.
func (uc *HealthUseCase) Report() dto.HealthResponse {
	return uc.build(dto.DatabaseHealth{Status: HealthUnknown})
}

// Ready estado con ping a la base de datos; Status unhealthy si el ping falla.
func (uc *HealthUseCase) Ready(ctx context.Context) dto.HealthResponse {
	db := dto.DatabaseHealth{Status: HealthUnhealthy}
	var pingErr error
	if uc.db != nil {
		start := time.Now()
		pingErr = uc.db.Ping(ctx)
		ms := time.Since(start).Milliseconds()
		db.ResponseTimeMs = &ms
		if pingErr == nil {
			db.Status = HealthHealthy
		}
	}
	resp := uc.build(db)
	if db.Status != HealthHealthy {
		resp.Status = HealthUnhealthy
		resp.Error = "Brak połączenia z bazą danych"
	}
	return resp
}

func (uc *HealthUseCase) build(db dto.DatabaseHealth) dto.HealthResponse {
	var snap ports.MetricsSnapshot
	if uc.metrics != nil {
		snap = uc.metrics.Snapshot()
	}
	db.Metrics = dto.QueryMetrics{
		Queries:      snap.Database.Queries,
		Errors:       snap.Database.Errors,
		AvgLatencyMs: snap.Database.AvgLatencyMs,
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := HealthHealthy
	configStatus := HealthHealthy
	if uc.info.ConfigError != nil {
		status = HealthUnhealthy
		configStatus = HealthUnhealthy
	}

	features := map[string]bool{}
	if uc.features != nil {
		features = uc.features.All()
	}

	now := uc.now()
	resp := dto.HealthResponse{
		Status:      status,
		Timestamp:   now.UTC(),
		Version:     uc.info.Version,
		Environment: uc.info.Environment,
		Services: dto.HealthServices{
			Database: db,
			Application: dto.ApplicationHealth{
				Status:        HealthHealthy,
				UptimeSeconds: int64(now.Sub(uc.started).Seconds()),
				Memory: dto.MemoryStats{
					HeapAlloc:  mem.HeapAlloc,
					HeapSys:    mem.HeapSys,
					Sys:        mem.Sys,
					Goroutines: runtime.NumGoroutine(),
				},
				Metrics: dto.RequestMetric{
					Requests:     snap.Requests.Total,
					Errors:       snap.Requests.Errors,
					ClientErrors: snap.Requests.ClientErrors,
					AvgLatencyMs: snap.Requests.AvgLatencyMs,
				},
			},
			Configuration: dto.ComponentHealth{Status: configStatus},
			Monitoring: dto.MonitoringHealth{
				Status:    HealthHealthy,
				Logging:   true,
				Sentry:    uc.info.Sentry,
				Telemetry: uc.info.Telemetry,
			},
		},
		Features: features,
		Metrics: dto.HealthMetrics{
			Business: dto.BusinessMetrics{
				UserLogins:        snap.Counter(ports.MetricUserLogins),
				PropertiesCreated: snap.Counter(ports.MetricPropertiesCreated),
			},
			System: dto.SystemMetrics{
				GoVersion: runtime.Version(),
				NumCPU:    runtime.NumCPU(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			},
		},
	}
	if uc.info.ConfigError != nil {
		resp.Error = uc.info.ConfigError.Error()
	}
	return resp
}
