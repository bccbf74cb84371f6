// ABOUTME: CLI command for importing history from the legacy bmiDB.db file.
// ABOUTME: Recomputes every legacy row and skips the ones that fail validation.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import history from a legacy bmiDB.db file",
	Long: `Import BMI history from the database written by the older mobile app.

The legacy file keeps entries in a bmicalc table. Each entry is recomputed
from its weight and height so categories follow the current rules; the
stored result column is ignored. Entries with missing, non-numeric, or
non-positive inputs are skipped. Original dates are kept.

IMPORTANT:

  - The legacy file is only read, never written
  - Running twice imports the entries twice
  - Run with --dry-run first to see what would be imported

USAGE:

  bmi migrate --from bmiDB.db --dry-run   # Preview what would be imported
  bmi migrate --from bmiDB.db             # Perform the import`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
		}

		legacy, err := storage.OpenLegacy(migrateFrom)
		if err != nil {
			return err
		}
		defer legacy.Close()

		summary, err := store.ImportLegacy(cmd.Context(), legacy, migrateDryRun).Result()
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("legacy import", "from", migrateFrom, "imported", summary.Imported, "skipped", summary.Skipped, "dry_run", migrateDryRun)

		verb := "Imported"
		if migrateDryRun {
			verb = "Would import"
		}
		color.New(color.FgGreen).Fprintf(out, "✓ %s %d measurements\n", verb, summary.Imported)
		if summary.Skipped > 0 {
			fmt.Fprintln(out, faint.Sprintf("  skipped %d invalid entries", summary.Skipped))
		}

		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "path to the legacy bmiDB.db file")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(migrateCmd)
}
