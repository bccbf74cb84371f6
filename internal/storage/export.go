// ABOUTME: Export functionality for BMI measurement history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/bmi/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for measurement history.
type ExportData struct {
	Version      string               `json:"version" yaml:"version"`
	ExportedAt   time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool         string               `json:"tool" yaml:"tool"`
	Measurements []models.Measurement `json:"measurements" yaml:"measurements"`
}

// NewExportData wraps measurements in the export envelope.
func NewExportData(measurements []models.Measurement, now time.Time) *ExportData {
	if measurements == nil {
		measurements = []models.Measurement{}
	}
	return &ExportData{
		Version:      ExportVersion,
		ExportedAt:   now,
		Tool:         "bmi",
		Measurements: measurements,
	}
}

// ExportJSON exports measurements as indented JSON.
func ExportJSON(measurements []models.Measurement, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewExportData(measurements, now), "", "  ")
}

// ExportYAML exports measurements as YAML grouped by category.
func ExportYAML(measurements []models.Measurement, now time.Time) ([]byte, error) {
	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Categories map[string][]yamlMeasure `yaml:"categories"`
	}{
		Version:    ExportVersion,
		ExportedAt: now.Format(time.RFC3339),
		Tool:       "bmi",
		Categories: make(map[string][]yamlMeasure),
	}

	for _, m := range measurements {
		c := string(m.Category)
		yamlData.Categories[c] = append(yamlData.Categories[c], yamlMeasure{
			ID:         m.ID,
			Weight:     m.Weight,
			Height:     m.Height,
			BMI:        m.BMI,
			RecordedAt: m.RecordedAt.Format(time.RFC3339),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlMeasure struct {
	ID         int64   `yaml:"id"`
	Weight     float64 `yaml:"weight"`
	Height     float64 `yaml:"height"`
	BMI        float64 `yaml:"bmi"`
	RecordedAt string  `yaml:"recorded_at"`
}

// ExportMarkdown exports measurements as a Markdown table, optionally only
// those recorded at or after since.
func ExportMarkdown(measurements []models.Measurement, since *time.Time, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# BMI Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString("| Date | BMI | Category | Weight (lb) | Height (in) |\n")
	sb.WriteString("|------|-----|----------|-------------|-------------|\n")

	for _, m := range measurements {
		if since != nil && m.RecordedAt.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			m.RecordedAt.Local().Format("2006-01-02 15:04"),
			models.FormatBMI(m.BMI),
			m.Category,
			models.FormatNumber(m.Weight),
			models.FormatNumber(m.Height)))
	}

	return sb.String()
}
