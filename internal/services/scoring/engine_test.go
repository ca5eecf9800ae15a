package scoring

import (
	"errors"
	"math"
	"testing"

	"EquityLens/internal/domain/models"
)

func avail(score float64, cat models.Category) models.CategoryScore {
	return models.CategoryScore{Category: cat, Score: score, Metrics: 1, Available: true}
}

func fullScores(v float64) map[models.Category]models.CategoryScore {
	out := make(map[models.Category]models.CategoryScore)
	for _, cat := range models.Categories() {
		out[cat] = avail(v, cat)
	}
	return out
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultWeights(), DefaultThresholds())
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
	return e
}

func TestRenormalizeSumsToOne(t *testing.T) {
	w := DefaultWeights()
	cats := models.Categories()
	// Every non-empty subset of the five categories.
	for mask := 1; mask < 1<<len(cats); mask++ {
		available := make(map[models.Category]bool)
		for i, cat := range cats {
			if mask&(1<<i) != 0 {
				available[cat] = true
			}
		}
		rw := Renormalize(w, available)
		sum := 0.0
		for _, v := range rw {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("subset %05b: weights sum to %.12f", mask, sum)
		}
	}
}

func TestRenormalizePreservesRatios(t *testing.T) {
	available := map[models.Category]bool{
		models.CategoryFinancialHealth: true, // 0.25
		models.CategoryMomentum:        true, // 0.10
	}
	rw := Renormalize(DefaultWeights(), available)
	ratio := rw[models.CategoryFinancialHealth] / rw[models.CategoryMomentum]
	if math.Abs(ratio-2.5) > 1e-9 {
		t.Fatalf("expected ratio 2.5 preserved, got %f", ratio)
	}
}

func TestRenormalizeEmptySubset(t *testing.T) {
	rw := Renormalize(DefaultWeights(), map[models.Category]bool{})
	if len(rw) != 0 {
		t.Fatalf("expected empty weights, got %v", rw)
	}
}

func TestEvaluateNoDataIsUnavailable(t *testing.T) {
	e := newTestEngine(t)
	scores := map[models.Category]models.CategoryScore{
		models.CategoryValuation: {Category: models.CategoryValuation},
	}
	_, err := e.Evaluate("TEST", scores, false)
	if !errors.Is(err, models.ErrComputationUnavailable) {
		t.Fatalf("expected ErrComputationUnavailable, got %v", err)
	}
}

func TestEvaluateBoundaryInclusive(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		composite float64
		action    models.Action
	}{
		{85, models.ActionStrongBuy},
		{80, models.ActionStrongBuy},
		{60, models.ActionBuy},
		{59.999, models.ActionHold},
		{40, models.ActionHold},
		{20, models.ActionSell},
		{19.999, models.ActionStrongSell},
		{0, models.ActionStrongSell},
	}
	for _, tt := range tests {
		rec, err := e.Evaluate("TEST", fullScores(tt.composite), false)
		if err != nil {
			t.Fatalf("composite %.3f: unexpected error %v", tt.composite, err)
		}
		if math.Abs(rec.Composite-tt.composite) > 1e-9 {
			t.Fatalf("composite %.3f: got %.3f", tt.composite, rec.Composite)
		}
		if rec.Action != tt.action {
			t.Errorf("composite %.3f: expected %s, got %s", tt.composite, tt.action, rec.Action)
		}
	}
}

func TestEvaluateSimplifiedMode(t *testing.T) {
	e := newTestEngine(t)
	rec, err := e.Evaluate("TEST", fullScores(90), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action != models.ActionBuy {
		t.Fatalf("expected STRONG_BUY collapsed to BUY, got %s", rec.Action)
	}
	rec, err = e.Evaluate("TEST", fullScores(5), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action != models.ActionSell {
		t.Fatalf("expected STRONG_SELL collapsed to SELL, got %s", rec.Action)
	}
}

func TestEvaluateCompositeMonotone(t *testing.T) {
	e := newTestEngine(t)
	scores := fullScores(50)
	base, err := e.Evaluate("TEST", scores, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, cat := range models.Categories() {
		bumped := fullScores(50)
		bumped[cat] = avail(70, cat)
		rec, err := e.Evaluate("TEST", bumped, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Composite <= base.Composite {
			t.Errorf("raising %s lowered composite: %.3f <= %.3f", cat, rec.Composite, base.Composite)
		}
	}
}

func TestEvaluateSingleCategory(t *testing.T) {
	e := newTestEngine(t)
	// Financial health only, as from a snapshot with just ROE and D/E.
	scores := map[models.Category]models.CategoryScore{
		models.CategoryFinancialHealth: avail(77.5, models.CategoryFinancialHealth),
	}
	rec, err := e.Evaluate("TEST", scores, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := rec.Weights[models.CategoryFinancialHealth]; math.Abs(w-1.0) > 1e-9 {
		t.Fatalf("single category weight should renormalize to 1.0, got %f", w)
	}
	if math.Abs(rec.Composite-77.5) > 1e-9 {
		t.Fatalf("composite should equal the lone category score, got %f", rec.Composite)
	}

	full, err := e.Evaluate("TEST", fullScores(77.5), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Confidence >= full.Confidence {
		t.Fatalf("single-category confidence %.1f should be below full-data %.1f", rec.Confidence, full.Confidence)
	}
}

func TestConfidenceDropsWithDispersion(t *testing.T) {
	e := newTestEngine(t)
	agree, err := e.Evaluate("TEST", fullScores(60), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spread := fullScores(60)
	spread[models.CategoryTechnical] = avail(95, models.CategoryTechnical)
	spread[models.CategoryMomentum] = avail(10, models.CategoryMomentum)
	disagree, err := e.Evaluate("TEST", spread, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if disagree.Confidence >= agree.Confidence {
		t.Fatalf("dispersion should lower confidence: %.1f >= %.1f", disagree.Confidence, agree.Confidence)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := newTestEngine(t)
	scores := fullScores(63.7)
	a, _ := e.Evaluate("TEST", scores, false)
	b, _ := e.Evaluate("TEST", scores, false)
	if a.Composite != b.Composite || a.Action != b.Action || a.Confidence != b.Confidence {
		t.Fatal("identical inputs must produce identical recommendations")
	}
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	if _, err := NewEngine(Weights{models.CategoryTechnical: 0.5}, DefaultThresholds()); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
	bad := Thresholds{StrongBuy: 40, Buy: 60, Hold: 40, Sell: 20}
	if _, err := NewEngine(DefaultWeights(), bad); err == nil {
		t.Fatal("expected error for non-descending thresholds")
	}
}
