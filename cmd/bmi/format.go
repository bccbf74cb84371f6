// ABOUTME: Shared CLI output helpers.
// ABOUTME: Category colors, date flag parsing, and column padding.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/models"
)

var faint = color.New(color.Faint)

func categoryColor(c models.Category) *color.Color {
	switch c {
	case models.CategoryHealthy:
		return color.New(color.FgGreen, color.Bold)
	case models.CategoryUnderWeight:
		return color.New(color.FgBlue, color.Bold)
	case models.CategoryOverWeight:
		return color.New(color.FgYellow, color.Bold)
	case models.CategoryObese:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New()
	}
}

// parseDate parses a YYYY-MM-DD flag value as local midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
