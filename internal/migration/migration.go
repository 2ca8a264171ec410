package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	contractdomain "github.com/smallbiznis/debitplan/internal/contract/domain"
	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"gorm.io/gorm"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies the embedded postgres schema.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	// migrator.Close would close the shared *sql.DB.
	return nil
}

// Models lists every persisted reference-data model.
func Models() []any {
	return []any{
		&holidaydomain.HolidayZone{},
		&holidaydomain.Holiday{},
		&cutoffdomain.CutoffConfig{},
		&cutoffdomain.CutoffWindow{},
		&debitdomain.DebitConfig{},
		&contractdomain.ContractRef{},
	}
}

// AutoMigrate creates the schema on engines golang-migrate is not set up for.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}
