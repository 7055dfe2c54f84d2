package order

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount coerces a heterogeneous upstream money value into a finite float64.
// Finite numbers pass through, strings are stripped of currency noise and
// parsed, everything else is 0. It never fails.
func Amount(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case float32:
		return Amount(float64(t))
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		return parseAmount(t.String())
	case string:
		return parseAmount(t)
	default:
		return 0
	}
}

func parseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
