// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection holding measurement history.
type DB struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time

	mu        sync.RWMutex
	schemaErr error
	schemaOK  bool
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the clock used to stamp recorded_at on insert.
func WithClock(now func() time.Time) Option {
	return func(d *DB) {
		d.now = now
	}
}

// New wraps an already-open database handle. EnsureSchema must be called
// before the store accepts reads or writes.
func New(db *sql.DB, opts ...Option) *DB {
	d := &DB{db: db, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open opens or creates a SQLite database at the given path and initializes
// its schema.
func Open(dbPath string, opts ...Option) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps every statement on a single serial session.
	db.SetMaxOpenConns(1)

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := New(db, opts...)
	d.dbPath = dbPath

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bmi")
}

// DefaultDBPath returns the default database path under XDG_DATA_HOME.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "bmi.db")
}

// Path returns the file path the store was opened from, if any.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single local writer.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// ready returns nil once the schema exists, or the error that blocks all
// further store operations.
func (d *DB) ready() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.schemaErr != nil {
		return d.schemaErr
	}
	if !d.schemaOK {
		return fmt.Errorf("%w: schema not initialized", ErrSchemaInitFailed)
	}
	return nil
}
