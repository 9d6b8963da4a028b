// Package renderer turns report structs into markdown strings, ready for a
// terminal renderer or a file.
package renderer

import (
	"fmt"
	"math"
)

// na replaces values that could not be computed.
const na = "N/A"

// float formats a float with the given precision, N/A for NaN.
func float(v float64, decimals int) string {
	if math.IsNaN(v) {
		return na
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// ratio formats a fraction as a percentage, N/A for NaN.
func ratio(v float64, decimals int) string {
	if math.IsNaN(v) {
		return na
	}
	return fmt.Sprintf("%.*f%%", decimals, 100*v)
}

// volume formats a share volume as a whole number, N/A for NaN.
func volume(v float64) string {
	if math.IsNaN(v) {
		return na
	}
	return fmt.Sprintf("%d", int64(v))
}
