package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"exam-ingest/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFS embed.FS

// RunMigrations brings the schema of db up to date. SQLite and Postgres go through
// golang-migrate; Oracle runs the embedded scripts itself and records them in
// schema_migrations.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string, logger *zap.Logger) error {
	switch driver {
	case config.DriverSQLite, config.DriverPostgres:
		return runGolangMigrate(db, driver, logger)
	case config.DriverOracle:
		return runOracleScripts(ctx, db, logger)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func runGolangMigrate(db *sqlx.DB, driver string, logger *zap.Logger) error {
	src, err := iofs.New(migrationFS, path.Join("migrations", driver))
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	var target database.Driver
	switch driver {
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		target, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	}
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read schema version: %w", err)
	}
	logger.Info("Migrations completed", zap.String("driver", driver), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// runOracleScripts executes every *.up.sql file not yet listed in schema_migrations, one
// statement at a time, since go-ora cannot run several statements in one call.
func runOracleScripts(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE schema_migrations (version VARCHAR2(255) PRIMARY KEY)`); err != nil &&
		!strings.Contains(err.Error(), "ORA-00955") {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
		return fmt.Errorf("could not read schema_migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	files, err := fs.Glob(migrationFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")
		if done[version] {
			continue
		}

		content, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file, err)
			}
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, version); err != nil {
			return fmt.Errorf("could not record migration %s: %w", file, err)
		}
		logger.Info("Executed migration", zap.String("file", file))
	}

	logger.Info("Migrations completed", zap.String("driver", config.DriverOracle))
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops comment-only
// fragments.
func SplitStatements(script string) []string {
	var out []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			if stmt != "" {
				out = append(out, stmt)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
