package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig datos para inicializar el cliente de Sentry.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// Reporter envía errores internos a Sentry. El valor cero (o sin DSN) no hace nada.
type Reporter struct {
	enabled bool
}

// InitSentry inicializa el hub global. Sin DSN devuelve un Reporter inactivo.
func InitSentry(cfg SentryConfig) (*Reporter, error) {
	if cfg.DSN == "" {
		return &Reporter{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return &Reporter{}, err
	}
	return &Reporter{enabled: true}, nil
}

// Enabled informa si hay un cliente configurado.
func (r *Reporter) Enabled() bool { return r != nil && r.enabled }

// Capture reporta err con etiquetas opcionales (request_id, path, user_id...).
func (r *Reporter) Capture(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			if v != "" {
				scope.SetTag(k, v)
			}
		}
		sentry.CaptureException(err)
	})
}

// Flush espera a que se envíen los eventos pendientes.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
