package models

import (
	"strconv"
	"strings"
)

// Unavailable is rendered in place of a missing value
const Unavailable = "None"

// FormatNumber renders v in its shortest form keeping at least one decimal,
// e.g. 0.0, 11.4, 12.35
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// FormatOptional renders v or Unavailable when v is nil
func FormatOptional(v *float64) string {
	if v == nil {
		return Unavailable
	}
	return FormatNumber(*v)
}
