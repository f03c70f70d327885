package utils

import (
	"strconv"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Last6 returns the last six characters of an identifier, or the whole
// identifier when shorter.
func Last6(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// FirstNonEmpty returns the first non-empty string of its arguments.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseWeight parses weights like "1.0 lbs" into a float. Malformed values
// count as zero.
func ParseWeight(w string) float64 {
	w = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(w), "lbs"))
	f, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0
	}
	return f
}
