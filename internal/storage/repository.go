// ABOUTME: Repository interface for BMI measurement storage.
// ABOUTME: Defines the append-only contract the async queue and export build on.
package storage

import (
	"context"
	"database/sql"

	"github.com/harperreed/bmi/internal/bmi"
	"github.com/harperreed/bmi/internal/models"
)

// Repository defines the storage interface for measurement history.
// Records are append-only: there is no update or delete.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, c bmi.Computation) (int64, error)
	ListAll(ctx context.Context) ([]models.Measurement, error)
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// LegacyImporter is implemented by repositories that can copy history in from
// a legacy bmicalc database.
type LegacyImporter interface {
	ImportLegacy(ctx context.Context, legacy *sql.DB, dryRun bool) (*LegacySummary, error)
}
