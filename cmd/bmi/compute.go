// ABOUTME: CLI command for computing and recording a BMI measurement.
// ABOUTME: Runs the session workflow once with the given weight and height.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/bmi/internal/session"
	"github.com/spf13/cobra"
)

var computeCmd = &cobra.Command{
	Use:     "compute <weight> <height>",
	Aliases: []string{"c", "add"},
	Short:   "Compute and record a BMI measurement",
	Long: `Compute Body Mass Index from weight in pounds and height in inches.

The result is classified and recorded in your history. Inputs that are
missing, not numbers, or not greater than zero are rejected and nothing
is recorded.

EXAMPLES:

  bmi compute 154 69      # Body Mass Index is 22.7 (Healthy)
  bmi compute 300 66      # Body Mass Index is 48.4 (Obese)
  bmi compute 154.5 69.25 # Decimals are accepted
  bmi compute -- -154 69  # Use -- before values that start with a dash`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var alert *session.Alert
		c := session.New(store,
			session.WithLogger(logger),
			session.WithAlerter(session.AlertFunc(func(a session.Alert) {
				alert = &a
			})),
		)

		c.SetWeight(args[0])
		c.SetHeight(args[1])

		result, err := c.Compute(cmd.Context())
		if err != nil {
			if alert != nil {
				return errors.New(alert.Message)
			}
			return err
		}

		style := categoryColor(c.Last().Category())
		style.Fprintln(cmd.OutOrStdout(), result)
		fmt.Fprintln(cmd.OutOrStdout(), faint.Sprintf("recorded #%d", c.LastRecordID()))
		return nil
	},
}

// negativeArgHint points at -- when a value such as -154 was read as a flag.
func negativeArgHint(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w (put -- before values that start with a dash: bmi compute -- -154 69)", err)
}

func init() {
	computeCmd.SetFlagErrorFunc(negativeArgHint)
	rootCmd.AddCommand(computeCmd)
}
