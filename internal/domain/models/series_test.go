package models

import (
	"testing"
	"time"
)

func dailySeries(n int, last time.Time) *PriceSeries {
	s := &PriceSeries{Symbol: "TEST", Currency: "USD", Bars: make([]Bar, n)}
	for i := 0; i < n; i++ {
		s.Bars[i] = Bar{
			Timestamp: last.AddDate(0, 0, -(n - 1 - i)),
			Close:     100 + float64(i),
		}
	}
	return s
}

func TestTrimToDropsBarsOutsideSpan(t *testing.T) {
	last := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	s := dailySeries(120, last) // ~4 months of daily bars

	trimmed := s.TrimTo(Range1mo)
	if trimmed.Len() >= s.Len() {
		t.Fatalf("expected fewer bars after trim, got %d of %d", trimmed.Len(), s.Len())
	}
	cutoff := last.Add(-Range1mo.Duration())
	for i, b := range trimmed.Bars {
		if b.Timestamp.Before(cutoff) {
			t.Fatalf("bar %d at %s precedes cutoff %s", i, b.Timestamp, cutoff)
		}
	}
	if got, _ := trimmed.LastClose(); got != 219 {
		t.Fatalf("last close changed by trim: got %v", got)
	}
}

func TestTrimToKeepsSeriesWithinSpan(t *testing.T) {
	last := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	s := dailySeries(20, last)

	trimmed := s.TrimTo(Range3mo)
	if trimmed.Len() != s.Len() {
		t.Fatalf("expected all %d bars kept, got %d", s.Len(), trimmed.Len())
	}
}

func TestTrimToEmptySeries(t *testing.T) {
	s := &PriceSeries{Symbol: "TEST"}
	if trimmed := s.TrimTo(Range1mo); trimmed.Len() != 0 {
		t.Fatalf("expected empty series, got %d bars", trimmed.Len())
	}
}
