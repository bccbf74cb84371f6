// ABOUTME: CLI command for exporting BMI history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export BMI history",
	Long: `Export BMI history in various formats.

FORMATS:

  json       Full JSON export (suitable for backup)
  yaml       YAML export grouped by category (human-readable)
  markdown   Markdown table (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (YYYY-MM-DD, markdown only)

EXAMPLES:

  bmi export json                        # Export all data as JSON
  bmi export json -o backup.json         # Save to file
  bmi export yaml                        # Export as YAML
  bmi export markdown --since 2024-01-01 # Export data from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := cmd.Context()

		measurements, err := store.ListAll(ctx).Wait(ctx)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		now := time.Now()

		var data []byte
		switch format {
		case "json":
			data, err = storage.ExportJSON(measurements, now)
		case "yaml":
			data, err = storage.ExportYAML(measurements, now)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := parseDate(exportSince)
				if err != nil {
					return err
				}
				since = &t
			}
			data = []byte(storage.ExportMarkdown(measurements, since, now))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported %d measurements to %s\n", len(measurements), exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
}
