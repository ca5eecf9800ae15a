package fundamentals

import (
	"testing"

	"EquityLens/internal/domain/models"
)

func TestMappingsStayBounded(t *testing.T) {
	mappings := map[string]Mapping{
		"pe":      ScoreTrailingPE,
		"pb":      ScorePriceToBook,
		"ps":      ScorePriceToSales,
		"margin":  ScoreProfitMargin,
		"roe":     ScoreROE,
		"de":      ScoreDebtToEquity,
		"current": ScoreCurrentRatio,
		"growth":  ScoreGrowth,
	}
	inputs := []float64{-1e6, -1, -0.01, 0, 0.01, 0.5, 1, 5, 50, 1e9}
	for name, m := range mappings {
		for _, x := range inputs {
			s := clamp(m(x))
			if s < 0 || s > 100 {
				t.Fatalf("%s(%f) out of range: %f", name, x, s)
			}
		}
	}
}

func TestFinancialHealthExcludesMissing(t *testing.T) {
	f := &models.FundamentalSnapshot{
		Symbol:       "TEST",
		ROE:          models.Float(0.18),
		DebtToEquity: models.Float(0.3),
	}
	cs := FinancialHealth(f)
	if !cs.Available {
		t.Fatal("expected category available with two metrics present")
	}
	if cs.Metrics != 2 {
		t.Fatalf("expected 2 metrics counted, got %d", cs.Metrics)
	}
	// ROE 0.18 scores 75, D/E 0.3 scores 80.
	want := (75.0 + 80.0) / 2
	if cs.Score != want {
		t.Fatalf("expected score %.1f, got %.1f", want, cs.Score)
	}
	if len(cs.Rationale) != 2 {
		t.Fatalf("expected 2 rationale lines, got %v", cs.Rationale)
	}
}

func TestEmptySnapshotIsUnavailable(t *testing.T) {
	for _, cs := range []models.CategoryScore{
		FinancialHealth(&models.FundamentalSnapshot{}),
		Valuation(&models.FundamentalSnapshot{}),
		Growth(&models.FundamentalSnapshot{}),
		FinancialHealth(nil),
	} {
		if cs.Available {
			t.Fatalf("category %s should be unavailable with no data", cs.Category)
		}
		if cs.Score != 0 || cs.Metrics != 0 {
			t.Fatalf("unavailable category must carry no score, got %+v", cs)
		}
	}
}

func TestValuationLowMultiplesScoreHigher(t *testing.T) {
	cheap := Valuation(&models.FundamentalSnapshot{
		TrailingPE:  models.Float(8),
		PriceToBook: models.Float(0.8),
	})
	rich := Valuation(&models.FundamentalSnapshot{
		TrailingPE:  models.Float(60),
		PriceToBook: models.Float(9),
	})
	if cheap.Score <= rich.Score {
		t.Fatalf("cheap stock should outscore rich one: %.1f vs %.1f", cheap.Score, rich.Score)
	}
}

func TestGrowthNegativeScoresLow(t *testing.T) {
	shrinking := Growth(&models.FundamentalSnapshot{
		RevenueGrowth:  models.Float(-0.10),
		EarningsGrowth: models.Float(-0.25),
	})
	if shrinking.Score >= 50 {
		t.Fatalf("negative growth should score below neutral, got %.1f", shrinking.Score)
	}
}
