// ABOUTME: Import of history from the legacy bmicalc table into measurements.
// ABOUTME: Every legacy row is recomputed through the BMI engine before insert.

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/harperreed/bmi/internal/bmi"
)

// unixEpochJulianDay is the Julian day number of 1970-01-01T00:00:00Z.
const unixEpochJulianDay = 2440587.5

// LegacySummary holds counts of imported and rejected legacy rows.
type LegacySummary struct {
	Imported int
	Skipped  int
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type legacyRow struct {
	id       int64
	weight   sql.NullString
	height   sql.NullString
	itemDate sql.NullFloat64
}

// OpenLegacy opens an existing legacy database file. It refuses to create one.
func OpenLegacy(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	return db, nil
}

// ImportLegacy copies rows from the legacy bmicalc table, oldest first.
// The stored results column is ignored: weight and height are re-validated and
// the BMI recomputed, and rows that fail validation are skipped. The legacy
// itemDate, which that store assigned at insertion, becomes recorded_at.
// With dryRun set nothing is written.
func (d *DB) ImportLegacy(ctx context.Context, legacy *sql.DB, dryRun bool) (*LegacySummary, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}

	rows, err := readLegacyRows(ctx, legacy)
	if err != nil {
		return nil, err
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("import legacy: %w: %w", ErrWriteFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	summary := &LegacySummary{}
	for _, r := range rows {
		c, err := bmi.ValidateAndCompute(r.weight.String, r.height.String)
		if err != nil {
			summary.Skipped++
			continue
		}

		recordedAt := d.now()
		if r.itemDate.Valid {
			recordedAt = julianToTime(r.itemDate.Float64)
		}

		if !dryRun {
			if _, err := insertMeasurement(ctx, tx, c, recordedAt); err != nil {
				return nil, fmt.Errorf("import legacy row %d: %w", r.id, err)
			}
		}
		summary.Imported++
	}

	if dryRun {
		return summary, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("import legacy: %w: %w", ErrWriteFailed, err)
	}
	return summary, nil
}

func readLegacyRows(ctx context.Context, legacy *sql.DB) ([]legacyRow, error) {
	rows, err := legacy.QueryContext(ctx, `
		SELECT id, weight, height, itemDate
		FROM bmicalc
		ORDER BY itemDate ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read legacy rows: %w: %w", ErrReadFailed, err)
	}
	defer rows.Close()

	var out []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.id, &r.weight, &r.height, &r.itemDate); err != nil {
			return nil, fmt.Errorf("scan legacy row: %w: %w", ErrReadFailed, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read legacy rows: %w: %w", ErrReadFailed, err)
	}
	return out, nil
}

func julianToTime(jd float64) time.Time {
	secs := (jd - unixEpochJulianDay) * 86400
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}
