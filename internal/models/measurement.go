// ABOUTME: Measurement model and Category enum for BMI history.
// ABOUTME: Defines the four weight categories and the persisted record shape.
package models

import (
	"strconv"
	"time"
)

// Category is the weight category derived from a BMI value.
type Category string

const (
	CategoryUnderWeight Category = "UnderWeight"
	CategoryHealthy     Category = "Healthy"
	CategoryOverWeight  Category = "OverWeight"
	CategoryObese       Category = "Obese"
)

// AllCategories lists categories in ascending BMI order.
var AllCategories = []Category{
	CategoryUnderWeight,
	CategoryHealthy,
	CategoryOverWeight,
	CategoryObese,
}

// IsValidCategory checks if a string names a known category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Measurement is one persisted BMI computation.
// Weight is in pounds and Height in inches, exactly as entered.
type Measurement struct {
	ID         int64     `json:"id" yaml:"id"`
	Weight     float64   `json:"weight" yaml:"weight"`
	Height     float64   `json:"height" yaml:"height"`
	BMI        float64   `json:"bmi" yaml:"bmi"`
	Category   Category  `json:"category" yaml:"category"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// FormatBMI renders a BMI value with one fractional digit.
func FormatBMI(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatNumber renders a measurement input without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
