package expr

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber formats v the way preview cells display numbers: the
// shortest decimal that round-trips, with no fraction for integral values
// and exponent notation below 1e-6 or from 1e21 in magnitude. Negative zero
// prints as 0.
func FormatNumber(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	// Go pads the exponent to two digits.
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}
