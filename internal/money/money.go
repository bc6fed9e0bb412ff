// Package money converts between integer minor currency units, the only
// representation ever persisted, and major units used at the API edges.
package money

import (
	"fmt"
	"math"
)

// ToMinor converts a major-unit amount to minor units, rounding half away
// from zero at the point of persistence.
func ToMinor(major float64) int64 {
	return int64(math.Round(major * 100))
}

// ToMajor converts minor units back to major units for display.
func ToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// FormatMajor renders a minor-unit amount as a two-decimal string.
func FormatMajor(minor int64) string {
	return fmt.Sprintf("%.2f", ToMajor(minor))
}
