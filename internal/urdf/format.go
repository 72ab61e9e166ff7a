package urdf

import (
	"math"
	"strconv"
	"strings"

	"mobility-urdf/internal/mathutil"
)

// FormatFloat renders f in shortest round-trip form, positional for exponents
// in [-4, 16) with at least one fractional digit ("0.0", "-0.0",
// "1.5707963267948966"), scientific otherwise ("1e-05", "1e+16"). Non-finite
// values use the xs:double lexical forms "NaN", "INF" and "-INF".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatVec renders "x y z".
func FormatVec(v mathutil.Vec3) string {
	return FormatFloat(v[0]) + " " + FormatFloat(v[1]) + " " + FormatFloat(v[2])
}

// ParseVec reads "x y z" back.
func ParseVec(s string) (mathutil.Vec3, error) {
	var v mathutil.Vec3
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return v, strconv.ErrSyntax
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, err
		}
		v[i] = x
	}
	return v, nil
}
