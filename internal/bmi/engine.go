// ABOUTME: Pure BMI computation from raw pounds/inches text input.
// ABOUTME: Validates tokens, computes weight/height²×703, and classifies the result.
package bmi

import (
	"math"
	"strconv"
	"strings"

	"github.com/harperreed/bmi/internal/models"
)

// imperialFactor converts lb/in² to kg/m².
const imperialFactor = 703

// Category thresholds, applied to the rounded value as half-open intervals.
const (
	healthyFloor    = 18.5
	overWeightFloor = 25.0
	obeseFloor      = 30.0
)

// Computation is the result of one successful validation and computation.
// Its fields are only set by ValidateAndCompute.
type Computation struct {
	weight   float64
	height   float64
	value    float64
	category models.Category
}

// Weight returns the validated weight in pounds.
func (c Computation) Weight() float64 { return c.weight }

// Height returns the validated height in inches.
func (c Computation) Height() float64 { return c.height }

// Value returns the BMI rounded to one decimal.
func (c Computation) Value() float64 { return c.value }

// Category returns the weight category of Value.
func (c Computation) Category() models.Category { return c.category }

// IsZero reports whether c was not produced by ValidateAndCompute.
func (c Computation) IsZero() bool { return c.category == "" }

// ValidateAndCompute parses the two raw tokens and computes the BMI.
//
// Both fields are checked for presence before either is parsed, and weight is
// checked before height at every step. Inputs whose BMI is not a finite
// number are rejected as OutOfRange.
func ValidateAndCompute(weightText, heightText string) (Computation, error) {
	weightText = strings.TrimSpace(weightText)
	heightText = strings.TrimSpace(heightText)

	if weightText == "" {
		return Computation{}, &ValidationError{Field: FieldWeight, Kind: Missing}
	}
	if heightText == "" {
		return Computation{}, &ValidationError{Field: FieldHeight, Kind: Missing}
	}

	weight, err := parseNumber(FieldWeight, weightText)
	if err != nil {
		return Computation{}, err
	}
	height, err := parseNumber(FieldHeight, heightText)
	if err != nil {
		return Computation{}, err
	}

	if weight <= 0 {
		return Computation{}, &ValidationError{Field: FieldWeight, Kind: NotPositive, Input: weightText}
	}
	if height <= 0 {
		return Computation{}, &ValidationError{Field: FieldHeight, Kind: NotPositive, Input: heightText}
	}

	value := Compute(weight, height)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		// Blame weight only when weight alone overflows the factor.
		field, input := FieldHeight, heightText
		if math.IsInf(weight*imperialFactor, 0) {
			field, input = FieldWeight, weightText
		}
		return Computation{}, &ValidationError{Field: field, Kind: OutOfRange, Input: input}
	}
	return Computation{
		weight:   weight,
		height:   height,
		value:    value,
		category: Classify(value),
	}, nil
}

// Compute returns round1(weight / height² × 703). Callers validate inputs.
func Compute(weight, height float64) float64 {
	return Round1(weight / (height * height) * imperialFactor)
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Classify maps a BMI value to its category.
func Classify(value float64) models.Category {
	switch {
	case value < healthyFloor:
		return models.CategoryUnderWeight
	case value < overWeightFloor:
		return models.CategoryHealthy
	case value < obeseFloor:
		return models.CategoryOverWeight
	default:
		return models.CategoryObese
	}
}

func parseNumber(field Field, text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Kind: NotANumber, Input: text}
	}
	return v, nil
}
