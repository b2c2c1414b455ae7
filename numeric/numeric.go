// Package numeric holds the rounding and number formatting rules shared by the
// box, efficiency and interaction tables.
//
// Rounding is decimal and correctly rounded: the exact binary value is rounded
// to the requested number of places, ties going to even. 2.675 is stored as
// 2.67499999... and rounds to 2.67.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds v to the given number of decimal places.
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

// FormatFloat prints v the way a float is shown in result tables: the shortest
// representation that round-trips, always with a decimal point ("2.0", "0.317",
// "1e-05" stays in exponent form).
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}

	exp := decimalExponent(v)
	if v != 0 && (exp < -4 || exp >= 16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Significant formats v with the given number of significant digits, using
// fixed notation when the decimal exponent is in [-4, digits-1) and scientific
// notation otherwise. Trailing zeros are removed but fixed notation keeps at
// least one fractional digit: 2.0 -> "2.0", 3.456 -> "3.5", 12.3 -> "1.2e+01".
func Significant(v float64, digits int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if digits < 1 {
		digits = 1
	}

	// exponent after rounding to the requested precision
	e := strconv.FormatFloat(v, 'e', digits-1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])

	if v != 0 && (exp < -4 || exp >= digits-1) {
		mant, tail := e[:strings.IndexByte(e, 'e')], e[strings.IndexByte(e, 'e'):]
		return trimZeros(mant) + tail
	}

	s := strconv.FormatFloat(v, 'f', max(digits-1-exp, 0), 64)
	s = trimZeros(s)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func decimalExponent(v float64) int {
	if v == 0 {
		return 0
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	return exp
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
