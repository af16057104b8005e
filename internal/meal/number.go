package meal

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds v to the given number of decimal places. Halfway cases are
// decided on the exact binary value and tie to even, so Round(2.675, 2)
// is 2.67 and Round(0.125, 2) is 0.12.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatNumber renders v as the shortest decimal that round-trips, always
// with a fractional part ("132.5", "100.0"). Very large and very small
// magnitudes switch to exponent notation ("1e+16", "1e-05").
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatRunningTotal renders a daily running total. A zero total prints
// as "0" rather than "0.0".
func FormatRunningTotal(v float64) string {
	if v == 0 {
		return "0"
	}
	return FormatNumber(Round(v, 2))
}
