package models

import "time"

// Range selects how much daily history an analysis uses.
type Range string

const (
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
	Range5y  Range = "5y"
)

// IsValidRange returns true if r is a supported history range.
func IsValidRange(r Range) bool {
	switch r {
	case Range1mo, Range3mo, Range6mo, Range1y, Range2y, Range5y:
		return true
	default:
		return false
	}
}

// DefaultRange returns the default history range.
func DefaultRange() Range { return Range1y }

// NormalizeRange converts a raw string to a valid range (or default).
func NormalizeRange(s string) Range {
	if s == "" {
		return DefaultRange()
	}
	r := Range(s)
	if IsValidRange(r) {
		return r
	}
	return DefaultRange()
}

// Duration returns the calendar span covered by the range.
func (r Range) Duration() time.Duration {
	switch r {
	case Range1mo:
		return 30 * 24 * time.Hour
	case Range3mo:
		return 91 * 24 * time.Hour
	case Range6mo:
		return 182 * 24 * time.Hour
	case Range2y:
		return 2 * 365 * 24 * time.Hour
	case Range5y:
		return 5 * 365 * 24 * time.Hour
	default:
		return 365 * 24 * time.Hour
	}
}
