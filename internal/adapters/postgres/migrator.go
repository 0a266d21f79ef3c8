package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one schema file. Version is the file name without extension.
type Migration struct {
	Version string
	SQL     string
}

// LoadMigrations reads every .sql file of fsys, sorted by name.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(path.Base(name), ".sql"),
			SQL:     string(content),
		})
	}
	return migrations, nil
}

// Migrator applies pending migrations and records them in schema_migrations.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
}

func NewMigrator(pool *pgxpool.Pool, migrations []Migration) (*Migrator, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &Migrator{pool: pool, migrations: migrations}, nil
}

// Up applies every migration not yet recorded, each in its own transaction.
// It returns the versions it applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Migrator",
		"method":    "Up",
	})

	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range pending(m.migrations, applied) {
		logger.Info("Applying migration", port.Fields{"version": mig.Version})
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version)
			return err
		})
		if err != nil {
			logger.Error("Migration failed", err, port.Fields{"version": mig.Version})
			return done, fmt.Errorf("failed to apply migration %s: %w", mig.Version, err)
		}
		done = append(done, mig.Version)
	}

	logger.Info("Migrations up to date", port.Fields{"applied": len(done)})
	return done, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func pending(all []Migration, applied map[string]bool) []Migration {
	out := make([]Migration, 0, len(all))
	for _, mig := range all {
		if !applied[mig.Version] {
			out = append(out, mig)
		}
	}
	return out
}
