// ABOUTME: Lenient numeric parsing for user-entered weight and rep fields.
// ABOUTME: Reads a leading numeric prefix and coerces anything else to zero.
package models

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseWeight reads a float from the leading numeric prefix of s.
// "60", "60.5" and "60kg" all read as 60-ish; ranges, blanks and junk read
// as 0. Set inputs are never rejected, so this must not fail.
func ParseWeight(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseReps reads an int from the leading numeric prefix of s.
// A free-form rep range like "8-10" reads as 8.
func ParseReps(s string) int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
