// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands in-process against a temp database and checks their output.
package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default between in-process runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with --db pointing at dbPath and returns stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := execute(append([]string{"--db", dbPath}, args...))
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return filepath.Join(t.TempDir(), "bmi.db")
}

func TestComputeCommand(t *testing.T) {
	dbPath := setupEnv(t)

	out, err := run(t, dbPath, "compute", "154", "69")
	if err != nil {
		t.Fatalf("compute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Body Mass Index is 22.7\n(Healthy)") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "recorded #1") {
		t.Errorf("expected record id in output:\n%s", out)
	}
	if store != nil {
		t.Error("store should be closed after the command")
	}
}

func TestComputeCommandValidation(t *testing.T) {
	dbPath := setupEnv(t)

	tests := []struct {
		weight, height string
		want           string
	}{
		{"abc", "70", "Weight must be a number"},
		{"154", "0", "Height must be greater than zero"},
		{" ", "70", "Weight is a required field"},
		{"150", "1e-200", "Height is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			_, err := run(t, dbPath, "compute", tt.weight, tt.height)
			if err == nil || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}

	out, err := run(t, dbPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No measurements found.") {
		t.Errorf("failed computes should not be recorded:\n%s", out)
	}
}

func TestComputeCommandArgs(t *testing.T) {
	dbPath := setupEnv(t)

	if _, err := run(t, dbPath, "compute", "154"); err == nil {
		t.Error("expected error for missing height argument")
	}
}

func TestComputeCommandNegativeInput(t *testing.T) {
	dbPath := setupEnv(t)

	_, err := run(t, dbPath, "compute", "-154", "69")
	if err == nil || !strings.Contains(err.Error(), "bmi compute -- -154 69") {
		t.Errorf("expected a hint to use --, got %v", err)
	}

	_, err = run(t, dbPath, "compute", "--", "-154", "69")
	if err == nil || err.Error() != "Weight must be greater than zero" {
		t.Errorf("error = %v, want %q", err, "Weight must be greater than zero")
	}
}

func TestHistoryCommand(t *testing.T) {
	dbPath := setupEnv(t)

	for _, args := range [][]string{{"154", "69"}, {"300", "66"}, {"100", "70"}} {
		if out, err := run(t, dbPath, append([]string{"compute"}, args...)...); err != nil {
			t.Fatalf("compute %v failed: %v\n%s", args, err, out)
		}
	}

	out, err := run(t, dbPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "BMI History" {
		t.Fatalf("unexpected history output:\n%s", out)
	}
	if !strings.HasSuffix(lines[1], "14.3 UnderWeight (W:100 H:70)") {
		t.Errorf("expected newest first, got %q", lines[1])
	}

	out, err = run(t, dbPath, "history", "-n", "1", "--summary")
	if err != nil {
		t.Fatalf("history -n 1 failed: %v", err)
	}
	if !strings.Contains(out, "showing 1 of 3 measurements") {
		t.Errorf("expected truncation note:\n%s", out)
	}
	if !strings.Contains(out, "Obese"+strings.Repeat(" ", 8)+"1") {
		t.Errorf("expected category summary:\n%s", out)
	}
}

func TestHistoryUsesConfigLimit(t *testing.T) {
	dbPath := setupEnv(t)

	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "bmi")
	os.MkdirAll(cfgDir, 0750)
	os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(`{"history_limit": 1}`), 0600)

	run(t, dbPath, "compute", "154", "69")
	run(t, dbPath, "compute", "160", "70")

	out, err := run(t, dbPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "showing 1 of 2 measurements") {
		t.Errorf("expected config limit to apply:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dbPath := setupEnv(t)
	run(t, dbPath, "compute", "154", "69")

	outFile := filepath.Join(t.TempDir(), "backup.json")
	out, err := run(t, dbPath, "export", "json", "-o", outFile)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "✓ Exported 1 measurements") {
		t.Errorf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var export storage.ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(export.Measurements) != 1 || export.Measurements[0].Category != models.CategoryHealthy {
		t.Errorf("unexpected export: %+v", export.Measurements)
	}

	out, err = run(t, dbPath, "export", "markdown")
	if err != nil {
		t.Fatalf("markdown export failed: %v", err)
	}
	if !strings.Contains(out, "| 22.7 | Healthy | 154 | 69 |") {
		t.Errorf("unexpected markdown:\n%s", out)
	}

	if _, err := run(t, dbPath, "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := run(t, dbPath, "export", "markdown", "--since", "01/01/2024"); err == nil {
		t.Error("expected error for bad --since")
	}
}

func TestMigrateCommand(t *testing.T) {
	dbPath := setupEnv(t)

	legacyPath := filepath.Join(t.TempDir(), "bmiDB.db")
	legacy, err := sql.Open("sqlite", legacyPath)
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	for _, stmt := range []string{
		"create table bmicalc (id integer primary key not null, weight int, height int, results int, itemDate real)",
		"insert into bmicalc (weight, height, results, itemDate) values (154, 69, 0, julianday('2024-03-01 12:00:00'))",
		"insert into bmicalc (weight, height, results, itemDate) values ('x', 69, 0, julianday('2024-03-02 12:00:00'))",
	} {
		if _, err := legacy.Exec(stmt); err != nil {
			t.Fatalf("seed legacy: %v", err)
		}
	}
	legacy.Close()

	out, err := run(t, dbPath, "migrate", "--from", legacyPath, "--dry-run")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out, "Would import 1 measurements") || !strings.Contains(out, "skipped 1") {
		t.Errorf("unexpected dry run output:\n%s", out)
	}

	out, err = run(t, dbPath, "migrate", "--from", legacyPath)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "✓ Imported 1 measurements") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, _ = run(t, dbPath, "history")
	if !strings.Contains(out, "22.7 Healthy (W:154 H:69)") {
		t.Errorf("migrated row missing from history:\n%s", out)
	}

	if _, err := run(t, dbPath, "migrate"); err == nil {
		t.Error("expected error without --from")
	}
	if _, err := run(t, dbPath, "migrate", "--from", filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for missing legacy file")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	dbPath := setupEnv(t)

	if _, err := run(t, dbPath, "--log-level", "loud", "history"); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-06-15")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 || got.Location() != time.Local {
		t.Errorf("parseDate returned %v", got)
	}

	for _, bad := range []string{"", "15-06-2025", "not a date"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) expected error", bad)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "bmi" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "bmi")
	}
	for _, name := range []string{"db", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag", name)
		}
	}

	want := map[string]bool{"compute": false, "history": false, "export": false, "migrate": false, "mcp": false, "tui": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": false, "yaml": false, "markdown": false}
	for _, arg := range exportCmd.ValidArgs {
		expected[arg] = true
	}
	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}
}
