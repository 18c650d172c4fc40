package pool

import (
	"strconv"
	"strings"
)

// ParseSalary converts a cap-hit figure into millions of dollars.
// Accepts the display form "$12.5m" and raw dollar figures like
// "12500000" or "$12,500,000". Returns false for empty or unparseable
// values; those players are excluded from the pool.
func ParseSalary(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if strings.HasPrefix(s, "$") && strings.HasSuffix(s, "m") {
		millions, err := strconv.ParseFloat(s[1:len(s)-1], 64)
		if err != nil {
			return 0, false
		}
		return millions, true
	}

	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	dollars, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return dollars / 1e6, true
}

// ParseStatValue converts a raw stat value into a number. Percent
// strings are converted to fractions ("62.5%" -> 0.625) before any
// aggregation or modeling sees them. Returns false for missing or
// non-numeric values, which aggregation treats as absent.
func ParseStatValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if strings.HasSuffix(s, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return 0, false
			}
			return pct / 100, true
		}
		s = strings.ReplaceAll(s, ",", "")
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return val, true
	default:
		return 0, false
	}
}
