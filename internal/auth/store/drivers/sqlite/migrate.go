package sqlite

import (
	"errors"

	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations applies any pending up migrations from the embedded
// migration files.
func (s *Store) ApplyMigrations() error {
	instance, err := s.migrator()
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// RollbackMigrations applies steps down migrations.
func (s *Store) RollbackMigrations(steps int) error {
	instance, err := s.migrator()
	if err != nil {
		return err
	}

	err = instance.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationVersion reports the current schema version. A database with no
// migrations applied reports version 0.
func (s *Store) MigrationVersion() (version uint, dirty bool, err error) {
	instance, err := s.migrator()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = instance.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// migrator wires the sqlite migration driver to the embedded files. The
// returned instance is never closed since that would close the shared *sql.DB.
func (s *Store) migrator() (*migrate.Migrate, error) {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, "sqlite", driver)
}
