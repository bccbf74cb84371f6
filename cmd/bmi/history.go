// ABOUTME: CLI command for listing recorded BMI measurements.
// ABOUTME: Prints the history view newest first, optionally with a category summary.
package main

import (
	"fmt"

	"github.com/harperreed/bmi/internal/history"
	"github.com/harperreed/bmi/internal/models"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historySummary bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls", "list", "h"},
	Short:   "List recorded BMI measurements",
	Long: `List recorded BMI measurements, most recent first.

OUTPUT FORMAT:

  Each line shows: DATE: BMI CATEGORY (W:WEIGHT H:HEIGHT)

  Weight is in pounds and height in inches, as entered.

EXAMPLES:

  bmi history             # Show all measurements (or history_limit from config)
  bmi history -n 5        # Show the last 5 measurements
  bmi history --summary   # Add a count per category`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		limit := historyLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.HistoryLimit
		}

		view := history.New(store, history.Limit(limit))
		if err := view.Load(ctx); err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := view.Render(out); err != nil {
			return err
		}

		total, err := store.Count(ctx).Wait(ctx)
		if err != nil {
			return fmt.Errorf("failed to count measurements: %w", err)
		}
		if total == 0 {
			fmt.Fprintln(out, "No measurements found.")
			return nil
		}
		if shown := len(view.Items()); shown < total {
			fmt.Fprintln(out, faint.Sprintf("showing %d of %d measurements", shown, total))
		}

		if historySummary {
			all, err := store.ListAll(ctx).Wait(ctx)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			counts := make(map[models.Category]int)
			for _, m := range all {
				counts[m.Category]++
			}
			fmt.Fprintln(out)
			for _, c := range models.AllCategories {
				fmt.Fprintf(out, "%s %d\n", categoryColor(c).Sprint(padRight(string(c), 12)), counts[c])
			}
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "max number of results (0 shows all)")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "print a count per category")
	rootCmd.AddCommand(historyCmd)
}
