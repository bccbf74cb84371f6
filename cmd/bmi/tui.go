// ABOUTME: CLI command for the interactive BMI form.
// ABOUTME: Also the default when bmi runs without a subcommand.
package main

import (
	"github.com/harperreed/bmi/internal/history"
	"github.com/harperreed/bmi/internal/session"
	"github.com/harperreed/bmi/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"form"},
	Short:   "Open the interactive BMI form",
	Long: `Open the interactive BMI form.

Enter weight in pounds and height in inches, then press enter on
Compute BMI. The result and your history update after each compute.

KEYS:

  tab / shift+tab   move between fields
  enter             compute (or next field from weight)
  pgup / pgdn       scroll history
  esc / ctrl+c      quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	view := history.New(store, history.Limit(cfg.HistoryLimit))
	return tui.Run(cmd.Context(), store, view, session.WithLogger(logger))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
