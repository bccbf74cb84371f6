// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the measurements table; creation is idempotent.
package storage

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS measurements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	weight REAL NOT NULL,
	height REAL NOT NULL,
	bmi REAL NOT NULL,
	category TEXT NOT NULL,
	recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_measurements_recorded ON measurements(recorded_at DESC, id DESC);
`

// EnsureSchema creates the measurements table if it is absent. It never drops
// or alters existing data and is safe to call on every start. A failure is
// sticky: the store rejects every later read and write.
func (d *DB) EnsureSchema(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.schemaErr != nil {
		return d.schemaErr
	}

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		d.schemaErr = fmt.Errorf("initialize schema: %w: %w", ErrSchemaInitFailed, err)
		return d.schemaErr
	}
	d.schemaOK = true
	return nil
}
