// Package migrations holds the SQL schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
)

// MigrationsTable records the applied schema version.
const MigrationsTable = "schema_migrations"

//go:embed *.sql
var files embed.FS

// Up applies every pending migration. databaseURL is a postgres:// URL.
func Up(databaseURL string) error {
	m, db, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m, db)

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pkgerrors.Wrap(err, "apply migrations")
	}
	return nil
}

// Down rolls back every applied migration.
func Down(databaseURL string) error {
	m, db, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m, db)

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pkgerrors.Wrap(err, "roll back migrations")
	}
	return nil
}

func newMigrate(databaseURL string) (*migrate.Migrate, *sql.DB, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "open embedded migrations")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "open database")
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		_ = db.Close()
		return nil, nil, pkgerrors.Wrap(err, "connect migrator")
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		_ = db.Close()
		return nil, nil, pkgerrors.Wrap(err, "create migrator")
	}
	return m, db, nil
}

// closeMigrate releases the migrator; a driver built WithInstance leaves the
// *sql.DB to its owner.
func closeMigrate(m *migrate.Migrate, db *sql.DB) {
	_, _ = m.Close()
	_ = db.Close()
}
