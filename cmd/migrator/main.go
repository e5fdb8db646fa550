package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/fastprodman/TopupLedger/internal/infra/logging"
	"github.com/fastprodman/TopupLedger/pkg/envconf"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var baseFS embed.FS

//go:embed test_data/*.sql
var devFS embed.FS

// Dev seeds keep their own version table so their numbering never collides
// with schema migrations.
const seedMigrationsTable = "seed_migrations"

type migratorConfig struct {
	DSN      string `envconfig:"PG_DSN" required:"true"`
	LogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
	AppEnv   string `envconfig:"APP_ENV" default:"PROD"`
}

func main() {
	err := migrateAll()
	if err != nil {
		zap.L().Error("migration run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "migration run failed: %v\n", err)
		os.Exit(1)
	}

	zap.L().Info("migration run finished successfully")
}

func migrateAll() error {
	cfg := new(migratorConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flush, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer flush()

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	//nolint:errcheck
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	err = runMigrations(db, baseFS, "migrations", postgres.DefaultMigrationsTable)
	if err != nil {
		return fmt.Errorf("base migrations failed: %w", err)
	}

	zap.L().Info("base migrations applied")

	if cfg.AppEnv == "DEV" {
		err = runMigrations(db, devFS, "test_data", seedMigrationsTable)
		if err != nil {
			return fmt.Errorf("dev seed migrations failed: %w", err)
		}

		zap.L().Info("dev seed migrations applied")
	}

	return nil
}

func runMigrations(db *sql.DB, fsys embed.FS, dir, table string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: table})
	if err != nil {
		return fmt.Errorf("init postgres driver: %w", err)
	}

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}
