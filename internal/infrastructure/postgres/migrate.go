package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// Migration archivo SQL embebido.
type Migration struct {
	Version   string // nombre del archivo sin sufijo, p.ej. 0001_init
	SQL       string
	AppliedAt *time.Time
}

// Migrator aplica las migraciones embebidas en orden y las registra en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

// LoadMigrations lee las migraciones embebidas ordenadas por versión.
func LoadMigrations() ([]*Migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(names)
	out := make([]*Migration, 0, len(names))
	for _, name := range names {
		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".up.sql")
		out = append(out, &Migration{Version: version, SQL: string(body)})
	}
	return out, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

// Status devuelve todas las migraciones con su fecha de aplicación (nil si está pendiente).
func (m *Migrator) Status(ctx context.Context) ([]*Migration, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	migrations, err := LoadMigrations()
	if err != nil {
		return nil, err
	}
	rows, err := m.pool.Query(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Migration, error) {
		var mg Migration
		var at time.Time
		err := row.Scan(&mg.Version, &at)
		mg.AppliedAt = &at
		return mg, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan applied migrations: %w", err)
	}
	byVersion := make(map[string]*time.Time, len(applied))
	for _, a := range applied {
		byVersion[a.Version] = a.AppliedAt
	}
	for _, mg := range migrations {
		mg.AppliedAt = byVersion[mg.Version]
	}
	return migrations, nil
}

// Up aplica las migraciones pendientes, cada una en su transacción. Devuelve las versiones aplicadas.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	status, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	var done []string
	for _, mg := range status {
		if mg.AppliedAt != nil {
			continue
		}
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mg.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mg.Version)
			return err
		})
		if err != nil {
			return done, fmt.Errorf("migración %s: %w", mg.Version, err)
		}
		done = append(done, mg.Version)
	}
	return done, nil
}
