package scoring

import (
	"testing"
	"time"

	"EquityLens/internal/domain/models"
	"EquityLens/internal/services/indicators"
)

func trendingSeries(n int, step float64) *models.PriceSeries {
	bars := make([]models.Bar, n)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 300.0
	for i := range bars {
		price += step
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1_000_000,
		}
	}
	return &models.PriceSeries{Symbol: "TEST", Currency: "USD", Bars: bars}
}

func TestTechnicalCategoryUptrend(t *testing.T) {
	series := trendingSeries(260, 0.5)
	set, err := indicators.Compute(series, indicators.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, _ := series.LastClose()
	cs := TechnicalCategory(set, last)
	if !cs.Available {
		t.Fatal("technical category should be available with full history")
	}
	if cs.Score <= 50 {
		t.Fatalf("steady uptrend should score above neutral, got %.1f", cs.Score)
	}
}

func TestTechnicalCategoryNilSet(t *testing.T) {
	cs := TechnicalCategory(nil, 0)
	if cs.Available {
		t.Fatal("nil indicator set must yield unavailable category")
	}
}

func TestMomentumCategoryDowntrend(t *testing.T) {
	series := trendingSeries(260, -0.5)
	set, err := indicators.Compute(series, indicators.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := MomentumCategory(set, series.Closes())
	if !cs.Available {
		t.Fatal("momentum category should be available")
	}
	if cs.Score >= 50 {
		t.Fatalf("falling prices should score below neutral, got %.1f", cs.Score)
	}
}

func TestMomentumCategoryShortSeries(t *testing.T) {
	series := trendingSeries(5, 0.5)
	set, err := indicators.Compute(series, indicators.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := MomentumCategory(set, series.Closes())
	// 5 bars: no 20-day momentum, but range position still defined.
	if !cs.Available {
		t.Fatal("range position alone should keep momentum available")
	}
	if cs.Metrics != 1 {
		t.Fatalf("expected 1 metric, got %d", cs.Metrics)
	}
}
