// ABOUTME: Tests for BMI validation, computation, and classification.
// ABOUTME: Covers field-specific errors, rounding, and category boundaries.
package bmi

import (
	"errors"
	"math"
	"testing"

	"github.com/harperreed/bmi/internal/models"
)

func TestValidateAndCompute(t *testing.T) {
	tests := []struct {
		name         string
		weight       string
		height       string
		wantBMI      float64
		wantCategory models.Category
	}{
		{"healthy adult", "154", "69", 22.7, models.CategoryHealthy},
		{"obese", "300", "66", 48.4, models.CategoryObese},
		{"underweight", "100", "70", 14.3, models.CategoryUnderWeight},
		{"overweight", "200", "70", 28.7, models.CategoryOverWeight},
		{"surrounding whitespace", "  154 ", "\t69\n", 22.7, models.CategoryHealthy},
		{"decimal inputs", "154.0", "69.0", 22.7, models.CategoryHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ValidateAndCompute(tt.weight, tt.height)
			if err != nil {
				t.Fatalf("ValidateAndCompute(%q, %q) unexpected error: %v", tt.weight, tt.height, err)
			}
			if c.Value() != tt.wantBMI {
				t.Errorf("Value() = %v, want %v", c.Value(), tt.wantBMI)
			}
			if c.Category() != tt.wantCategory {
				t.Errorf("Category() = %s, want %s", c.Category(), tt.wantCategory)
			}
			if c.IsZero() {
				t.Error("expected non-zero computation")
			}
		})
	}
}

func TestValidateAndComputeErrors(t *testing.T) {
	tests := []struct {
		name      string
		weight    string
		height    string
		wantField Field
		wantKind  Kind
		sentinel  error
	}{
		{"empty weight", "", "70", FieldWeight, Missing, ErrMissing},
		{"whitespace weight", "   ", "70", FieldWeight, Missing, ErrMissing},
		{"empty height", "154", "", FieldHeight, Missing, ErrMissing},
		{"whitespace height", "154", " \t", FieldHeight, Missing, ErrMissing},
		{"both empty reports weight", "", "", FieldWeight, Missing, ErrMissing},
		{"missing height checked before bad weight", "abc", "", FieldHeight, Missing, ErrMissing},
		{"non-numeric weight", "abc", "70", FieldWeight, NotANumber, ErrNotANumber},
		{"non-numeric height", "154", "tall", FieldHeight, NotANumber, ErrNotANumber},
		{"both non-numeric reports weight", "abc", "xyz", FieldWeight, NotANumber, ErrNotANumber},
		{"NaN spelling rejected", "NaN", "70", FieldWeight, NotANumber, ErrNotANumber},
		{"Inf spelling rejected", "154", "Inf", FieldHeight, NotANumber, ErrNotANumber},
		{"overflow rejected", "1e400", "70", FieldWeight, NotANumber, ErrNotANumber},
		{"zero height", "154", "0", FieldHeight, NotPositive, ErrNotPositive},
		{"negative weight", "-154", "69", FieldWeight, NotPositive, ErrNotPositive},
		{"huge weight over tiny height", "1e300", "1e-300", FieldHeight, OutOfRange, ErrOutOfRange},
		{"height squared underflows", "150", "1e-200", FieldHeight, OutOfRange, ErrOutOfRange},
		{"weight overflows factor", "1e308", "1", FieldWeight, OutOfRange, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ValidateAndCompute(tt.weight, tt.height)
			if err == nil {
				t.Fatalf("expected error, got %+v", c)
			}
			if !c.IsZero() {
				t.Error("expected zero computation on error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", verr.Kind, tt.wantKind)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		value float64
		want  models.Category
	}{
		{0, models.CategoryUnderWeight},
		{18.4, models.CategoryUnderWeight},
		{18.5, models.CategoryHealthy},
		{24.9, models.CategoryHealthy},
		{25.0, models.CategoryOverWeight},
		{29.9, models.CategoryOverWeight},
		{30.0, models.CategoryObese},
		{48.4, models.CategoryObese},
	}

	for _, tt := range tests {
		if got := Classify(tt.value); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	rank := map[models.Category]int{}
	for i, c := range models.AllCategories {
		rank[c] = i
	}

	prev := Classify(0)
	for v := 0.0; v <= 60; v = Round1(v + 0.1) {
		got := Classify(v)
		if rank[got] < rank[prev] {
			t.Fatalf("Classify(%v) = %s after %s", v, got, prev)
		}
		prev = got
	}
}

func TestComputeMatchesFormula(t *testing.T) {
	for w := 50.0; w <= 400; w += 7.5 {
		for h := 40.0; h <= 90; h += 1.5 {
			want := math.Round(w/(h*h)*703*10) / 10
			if got := Compute(w, h); got != want {
				t.Fatalf("Compute(%v, %v) = %v, want %v", w, h, got, want)
			}
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{22.739, 22.7},
		{22.75, 22.8},
		{2.25, 2.3},
		{-2.25, -2.3},
		{48.0, 48.0},
	}

	for _, tt := range tests {
		if got := Round1(tt.input); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: FieldWeight, Kind: NotANumber, Input: "abc"}
	if got, want := err.Error(), `weight: not a number: "abc"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &ValidationError{Field: FieldHeight, Kind: Missing}
	if got, want := err.Error(), "height: missing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
