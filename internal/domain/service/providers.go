package service

import (
	"context"

	"EquityLens/internal/domain/models"
)

// MarketDataProvider supplies price history and fundamentals for one symbol.
// Either call may fail or return partial data; the core treats that as
// "category unavailable", never as a zero score.
type MarketDataProvider interface {
	History(ctx context.Context, symbol string, rng models.Range) (*models.PriceSeries, error)
	Fundamentals(ctx context.Context, symbol string) (*models.FundamentalSnapshot, error)
}

// RateProvider supplies a display-only currency conversion rate.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (models.ExchangeRate, error)
}

// Metrics records operational counters for analyses.
type Metrics interface {
	RecordAnalysis(symbol string, action string)
	RecordError(kind string)
	RecordComposite(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}
