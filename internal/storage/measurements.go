// ABOUTME: Measurement append and list operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for BMI history.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/bmi/internal/bmi"
	"github.com/harperreed/bmi/internal/models"
)

// timeLayout is fixed width so recorded_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Append stores a new measurement stamped with the store's current time and
// returns its assigned ID.
func (d *DB) Append(ctx context.Context, c bmi.Computation) (int64, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if c.IsZero() {
		return 0, fmt.Errorf("append measurement: %w", ErrInvalidComputation)
	}
	return insertMeasurement(ctx, d.db, c, d.now())
}

func insertMeasurement(ctx context.Context, ex execer, c bmi.Computation, recordedAt time.Time) (int64, error) {
	query := `
		INSERT INTO measurements (weight, height, bmi, category, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := ex.ExecContext(ctx, query,
		c.Weight(),
		c.Height(),
		c.Value(),
		string(c.Category()),
		formatTime(recordedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("append measurement: %w: %w", ErrWriteFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append measurement: %w: %w", ErrWriteFailed, err)
	}
	return id, nil
}

// ListAll returns every measurement, most recent first. Ties on recorded_at
// are broken by descending ID. An empty table yields an empty, non-nil slice.
func (d *DB) ListAll(ctx context.Context) ([]models.Measurement, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	query := `
		SELECT id, weight, height, bmi, category, recorded_at
		FROM measurements
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w: %w", ErrReadFailed, err)
	}
	defer rows.Close()

	out, err := scanMeasurements(rows)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w: %w", ErrReadFailed, err)
	}
	return out, nil
}

// Count returns the number of stored measurements.
func (d *DB) Count(ctx context.Context) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}

	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n); err != nil {
		return 0, fmt.Errorf("count measurements: %w: %w", ErrReadFailed, err)
	}
	return n, nil
}

// scanMeasurements scans multiple rows into a slice of Measurements.
func scanMeasurements(rows *sql.Rows) ([]models.Measurement, error) {
	out := make([]models.Measurement, 0)

	for rows.Next() {
		var m models.Measurement
		var category, recordedAt string

		if err := rows.Scan(&m.ID, &m.Weight, &m.Height, &m.BMI, &category, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}

		t, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid recorded_at %q: %w", recordedAt, err)
		}
		m.Category = models.Category(category)
		m.RecordedAt = t

		out = append(out, m)
	}

	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
