package qualification

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotANumber = errors.New("not a number")

// ComputePercentage returns obtained/total*100 rounded to two decimals.
// ok is false if either input is blank or not numeric, total <= 0, or
// the ratio does not fit in a float64.
func ComputePercentage(obtained, total string) (pct float64, ok bool) {
	o, err := parseNumber(obtained)
	if err != nil {
		return 0, false
	}
	t, err := parseNumber(total)
	if err != nil || t <= 0 {
		return 0, false
	}
	pct = round2(o / t * 100)
	if math.IsInf(pct, 0) || math.IsNaN(pct) {
		return 0, false
	}
	return pct, true
}

// FormatPercentage renders a percentage the way the form displays it.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotANumber
	}
	return v, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
