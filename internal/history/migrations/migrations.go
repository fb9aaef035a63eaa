package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var migrationFiles embed.FS

var (
	// ErrDirty means an earlier migration of the history database failed
	// half way. The file has to be repaired or removed by hand.
	ErrDirty = errors.New("history database is in a dirty state")
	// ErrAhead means the database was written by a newer zero_pass.
	ErrAhead = errors.New("history database is newer than this binary")
)

// Migrate brings the history schema to the latest embedded version.
// A database already at that version is left alone.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}
	// The source is closed on its own; closing the migrate instance would
	// also close db, which belongs to the caller.
	defer src.Close()

	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("wrapping history database: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}

	err = m.Up()
	var dirty migrate.ErrDirty
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		return nil
	case errors.As(err, &dirty):
		return fmt.Errorf("%w at version %d", ErrDirty, dirty.Version)
	case errors.Is(err, fs.ErrNotExist):
		// The recorded version has no embedded file.
		return fmt.Errorf("%w: %w", ErrAhead, err)
	default:
		return fmt.Errorf("migration failed: %w", err)
	}
}

