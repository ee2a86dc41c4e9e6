package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/joho/godotenv"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/infrastructure/cache"
	"github.com/braian-rent/braian-api/internal/infrastructure/metrics"
	infrapdf "github.com/braian-rent/braian-api/internal/infrastructure/pdf"
	"github.com/braian-rent/braian-api/internal/infrastructure/postgres"
	httpRouter "github.com/braian-rent/braian-api/internal/interfaces/http"
	"github.com/braian-rent/braian-api/pkg/config"
	"github.com/braian-rent/braian-api/pkg/logger"
	"github.com/braian-rent/braian-api/pkg/monitoring"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Monitoring.LogLevel,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracer, err := monitoring.InitTracer(ctx, monitoring.TracerConfig{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Monitoring.OTLPEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}

	reporter, err := monitoring.InitSentry(monitoring.SentryConfig{
		DSN:         cfg.Monitoring.SentryDSN,
		Environment: cfg.Monitoring.SentryEnvironment,
		Release:     cfg.App.Version,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Sentry deshabilitado")
	}

	sink := metrics.NewMemory()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.NewQueryTracer(sink, log.Named("db").Zerolog()))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loc := cfg.App.Location()
	userRepo := postgres.NewUserRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool, loc)

	features := usecase.NewFeatureService(cfg.Features)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.Session.BcryptCost,
	}, sink, log.Named("auth").Zerolog())
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, usecase.PropertyDeps{
		Cache:        cache.NewPropertyCache(cfg.Cache.PropertyTTL),
		Metrics:      sink,
		Statements:   infrapdf.NewStatementGenerator(),
		Users:        userRepo,
		Leases:       postgres.NewLeaseRepository(pool),
		Location:     loc,
		DashboardURL: cfg.App.URL + "/dashboard",
	})
	configErr := cfg.RuntimeCheck()
	if configErr != nil {
		log.Warn().Err(configErr).Msg("configuración degradada")
	}
	healthUC := usecase.NewHealthUseCase(pool, sink, features, usecase.HealthInfo{
		Version:     cfg.App.Version,
		Environment: cfg.App.Env,
		Sentry:      reporter.Enabled(),
		Telemetry:   cfg.Monitoring.TelemetryEnabled(),
		ConfigError: configErr,
	})

	httpLog := log.Named("http").Zerolog()
	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:         cfg.App.Name,
		SessionSecret:   cfg.Session.Secret,
		AllowedOrigins:  cfg.Security.AllowedOrigins,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		Metrics:         sink,
		Log:             httpLog,
		Reporter:        reporter,
	})

	// Swagger UI: http://localhost:<port>/docs
	if features.Enabled(usecase.FeatureSwagger) {
		if _, err := os.Stat(swaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    cfg.App.Name + " API",
			}))
		} else {
			log.Warn().Str("file", swaggerFile).Msg("swagger habilitado pero sin especificación")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:       authUC,
		Properties: propertyUC,
		Health:     healthUC,
		Features:   features,
		Cookie: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
		Location: loc,
		Log:      httpLog,
		Reporter: reporter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	reporter.Flush(2 * time.Second)
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del tracer")
	}

	log.Info().Msg("aplicación detenida")
}
