// Package cli comandos de mantenimiento de braianctl: migraciones, datos de
// demostración, listado de usuarios y reportes de CI.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/braian-rent/braian-api/internal/application/seed"
	"github.com/braian-rent/braian-api/internal/domain/repository"
	"github.com/braian-rent/braian-api/internal/infrastructure/postgres"
	"github.com/braian-rent/braian-api/pkg/config"
	"github.com/braian-rent/braian-api/pkg/logger"
)

// ErrNoMigrator el backend no soporta migraciones (p. ej. almacenamiento en memoria).
var ErrNoMigrator = errors.New("migraciones disponibles solo con PostgreSQL")

// Migrator migraciones embebidas.
type Migrator interface {
	Up(ctx context.Context) ([]string, error)
	Status(ctx context.Context) ([]*postgres.Migration, error)
}

// Backend almacenamiento con el que trabajan los comandos.
type Backend struct {
	Users      repository.UserRepository
	Tx         seed.TxRunner
	Migrator   Migrator
	Location   *time.Location
	BcryptCost int
	Close      func()
}

// Opener abre el backend bajo demanda; solo los comandos que tocan datos lo invocan.
type Opener func(ctx context.Context) (*Backend, error)

// NewRootCmd arma el comando raíz con todos los subcomandos.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "braianctl",
		Short:         "Herramientas de mantenimiento de Braian.rent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		MigrateCmd(open),
		SeedCmd(open),
		UsersCmd(open),
		PropertyCmd(open),
		CIReportCmd(),
	)
	return root
}

// PostgresOpener abre un pool con la configuración de entorno. Solo exige DATABASE_URL.
func PostgresOpener() Opener {
	return func(ctx context.Context) (*Backend, error) {
		v := viper.New()
		v.AutomaticEnv()
		cfg := config.FromViper(v)
		if cfg.DB.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL es obligatorio")
		}

		log := logger.New(logger.Config{Env: "development", Level: cfg.Monitoring.LogLevel, Service: "braianctl"})
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.NewQueryTracer(nil, log.Named("db").Zerolog()))
		if err != nil {
			return nil, err
		}
		loc := cfg.App.Location()
		return &Backend{
			Users:      postgres.NewUserRepository(pool),
			Tx:         postgres.NewTxRunner(pool, loc),
			Migrator:   postgres.NewMigrator(pool),
			Location:   loc,
			BcryptCost: cfg.Session.BcryptCost,
			Close:      pool.Close,
		}, nil
	}
}

// withBackend abre el backend, ejecuta fn y lo cierra.
func withBackend(cmd *cobra.Command, open Opener, fn func(b *Backend) error) error {
	b, err := open(cmd.Context())
	if err != nil {
		return err
	}
	if b.Close != nil {
		defer b.Close()
	}
	return fn(b)
}

func cliLogger(cmd *cobra.Command) *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "info", Out: cmd.ErrOrStderr()})
}
