// ABOUTME: Tests for Measurement model and Category.
// ABOUTME: Validates category constants and number formatting helpers.
package models

import (
	"testing"
)

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"UnderWeight", true},
		{"Healthy", true},
		{"OverWeight", true},
		{"Obese", true},
		{"healthy", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidCategory(tt.input); got != tt.want {
				t.Errorf("IsValidCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBMI(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{22.7, "22.7"},
		{30, "30.0"},
		{18.5, "18.5"},
	}

	for _, tt := range tests {
		if got := FormatBMI(tt.input); got != tt.want {
			t.Errorf("FormatBMI(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{154, "154"},
		{69.5, "69.5"},
		{0.25, "0.25"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.input); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
