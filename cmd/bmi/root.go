// ABOUTME: Root Cobra command for bmi CLI.
// ABOUTME: Owns config, logger, and the measurement store via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/bmi/internal/config"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbFlag       string
	logLevelFlag string

	cfg    *config.Config
	logger *log.Logger
	db     *storage.DB
	store  *storage.Async
)

var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Body Mass Index calculator and tracker",
	Long: `BMI computes Body Mass Index from weight in pounds and height in inches,
classifies it, and keeps every result in a local history.

CATEGORIES:

  UnderWeight   below 18.5
  Healthy       18.5 to 24.9
  OverWeight    25.0 to 29.9
  Obese         30.0 and above

QUICK START:

  $ bmi                       # Open the interactive form
  $ bmi compute 154 69        # Compute and record from the command line
  $ bmi history               # See recorded measurements, newest first
  $ bmi export json -o b.json # Back up your history

MCP INTEGRATION:

  Run 'bmi mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "bmi": { "command": "bmi", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Measurements are stored in SQLite at ~/.local/share/bmi/bmi.db.
  Override with --db or data_dir in ~/.config/bmi/config.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	rootCmd.SetArgs(args)
	// PersistentPostRunE is skipped when RunE fails.
	defer closeStore()
	return rootCmd.Execute()
}

func openStore() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "bmi",
		Level:           level,
		ReportTimestamp: true,
	})

	db, err = cfg.OpenStorage(dbFlag)
	if err != nil {
		if errors.Is(err, storage.ErrSchemaInitFailed) {
			return fmt.Errorf("measurement database could not be initialized; no history can be saved: %w", err)
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("opened store", "path", db.Path())

	store = storage.NewAsync(db)
	return nil
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store, db = nil, nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (default: data_dir/bmi.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (default: warn)")
}
