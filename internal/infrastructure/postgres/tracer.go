package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/braian-rent/braian-api/internal/application/ports"
)

var _ pgx.QueryTracer = (*QueryTracer)(nil)

type traceKey struct{}

type traceData struct {
	start time.Time
	span  trace.Span
}

// QueryTracer alimenta las métricas de base de datos, abre un span por consulta y
// registra en debug las consultas fallidas (sin argumentos).
type QueryTracer struct {
	metrics ports.MetricsSink
	log     zerolog.Logger
	tracer  trace.Tracer
}

// NewQueryTracer construye el tracer. metrics puede ser nil.
func NewQueryTracer(metrics ports.MetricsSink, log zerolog.Logger) *QueryTracer {
	return &QueryTracer{
		metrics: metrics,
		log:     log,
		tracer:  otel.Tracer("github.com/braian-rent/braian-api/postgres"),
	}
}

// TraceQueryStart marca el inicio de la consulta.
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx, span := t.tracer.Start(ctx, "db.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemPostgreSQL,
			attribute.String("db.statement", truncate(data.SQL, 512)),
		),
	)
	return context.WithValue(ctx, traceKey{}, traceData{start: time.Now(), span: span})
}

// TraceQueryEnd registra duración y error.
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	td, ok := ctx.Value(traceKey{}).(traceData)
	if !ok {
		return
	}
	elapsed := time.Since(td.start)
	if t.metrics != nil {
		t.metrics.ObserveQuery(elapsed, data.Err)
	}
	if data.Err != nil {
		td.span.RecordError(data.Err)
		td.span.SetStatus(codes.Error, data.Err.Error())
		t.log.Debug().Err(data.Err).Str("command", data.CommandTag.String()).Dur("latency", elapsed).Msg("consulta fallida")
	}
	td.span.End()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
