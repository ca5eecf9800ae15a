package models

import (
	"fmt"
	"time"
)

// Bar represents a single OHLCV record in a daily price history.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is a chronologically ordered price history for one symbol.
// It is immutable once fetched; indicator code reads it, never mutates it.
type PriceSeries struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
	Bars     []Bar  `json:"bars"`
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume column.
func (s *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}

// LastClose returns the most recent close, or false when the series is empty.
func (s *PriceSeries) LastClose() (float64, bool) {
	if len(s.Bars) == 0 {
		return 0, false
	}
	return s.Bars[len(s.Bars)-1].Close, true
}

// TrimTo restricts the series to the span of r, measured back from the most
// recent bar. Chart providers sometimes return a wider window than requested.
func (s *PriceSeries) TrimTo(r Range) *PriceSeries {
	if len(s.Bars) == 0 {
		return s
	}
	cutoff := s.Bars[len(s.Bars)-1].Timestamp.Add(-r.Duration())
	i := 0
	for i < len(s.Bars) && s.Bars[i].Timestamp.Before(cutoff) {
		i++
	}
	if i == 0 {
		return s
	}
	return &PriceSeries{Symbol: s.Symbol, Currency: s.Currency, Bars: s.Bars[i:]}
}

// Validate checks ordering invariants: timestamps strictly increasing,
// no duplicates, all prices finite and non-negative highs/lows coherent.
func (s *PriceSeries) Validate() error {
	for i, b := range s.Bars {
		if i > 0 && !s.Bars[i-1].Timestamp.Before(b.Timestamp) {
			return fmt.Errorf("%w: bar %d timestamp %s not after %s",
				ErrInvalidInput, i, b.Timestamp.Format(time.RFC3339), s.Bars[i-1].Timestamp.Format(time.RFC3339))
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d high %.4f below low %.4f", ErrInvalidInput, i, b.High, b.Low)
		}
	}
	return nil
}
