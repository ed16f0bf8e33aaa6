package shared

import (
	"math"
	"strconv"
	"strings"
)

// SafeFloat normalizes NaN and infinite values to zero. Every numeric field
// read from an external source passes through here before aggregation, so a
// malformed value can never surface as NaN in a report.
func SafeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Number is a float64 that tolerates malformed JSON input. Non-numeric,
// non-finite, null and quoted values decode to zero instead of failing the
// whole document.
type Number float64

// UnmarshalJSON never returns an error: anything unparseable becomes zero.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(SafeFloat(v))
	return nil
}

// MarshalJSON renders the sanitized value as a plain JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(SafeFloat(float64(n)), 'f', -1, 64)), nil
}

// Float64 returns the sanitized numeric value.
func (n Number) Float64() float64 {
	return SafeFloat(float64(n))
}
