package scoring

import (
	"fmt"
	"math"
	"time"

	"EquityLens/internal/domain/models"
)

// Thresholds holds the inclusive lower bound of each action band. They are
// policy, not constants: the engine reads whatever the configuration says.
type Thresholds struct {
	StrongBuy float64 `yaml:"strong_buy"`
	Buy       float64 `yaml:"buy"`
	Hold      float64 `yaml:"hold"`
	Sell      float64 `yaml:"sell"`
}

// DefaultThresholds returns the standard five-band cut points:
// >=80 STRONG_BUY, >=60 BUY, >=40 HOLD, >=20 SELL, else STRONG_SELL.
func DefaultThresholds() Thresholds {
	return Thresholds{StrongBuy: 80, Buy: 60, Hold: 40, Sell: 20}
}

// Validate rejects non-descending or out-of-range cut points.
func (t Thresholds) Validate() error {
	if t.StrongBuy > 100 || t.Sell < 0 {
		return fmt.Errorf("thresholds out of [0,100]")
	}
	if !(t.StrongBuy > t.Buy && t.Buy > t.Hold && t.Hold > t.Sell) {
		return fmt.Errorf("thresholds must be strictly descending")
	}
	return nil
}

// Engine combines per-category scores into a recommendation. It is a
// stateless pure function over its inputs: identical inputs always produce
// identical output.
type Engine struct {
	weights    Weights
	thresholds Thresholds
}

// NewEngine builds an engine with the given weight and threshold policy.
func NewEngine(w Weights, t Thresholds) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, weight := range w {
		sum += weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("category weights must sum to 1.0, got %.4f", sum)
	}
	return &Engine{weights: w, thresholds: t}, nil
}

// Evaluate renormalizes weights over the available categories, computes the
// weighted composite, and maps it to an action band. Simplified mode
// collapses the five bands into BUY/HOLD/SELL.
// When no category has data it returns ErrComputationUnavailable so callers
// can distinguish "cannot say" from a genuine HOLD.
func (e *Engine) Evaluate(symbol string, scores map[models.Category]models.CategoryScore, simplified bool) (*models.Recommendation, error) {
	available := make(map[models.Category]bool, len(scores))
	for cat, cs := range scores {
		if cs.Available {
			available[cat] = true
		}
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: no category has data for %s", models.ErrComputationUnavailable, symbol)
	}

	weights := Renormalize(e.weights, available)

	composite := 0.0
	for cat, w := range weights {
		composite += w * scores[cat].Score
	}

	action := e.mapAction(composite)
	if simplified {
		action = action.Simplify()
	}

	return &models.Recommendation{
		Symbol:      symbol,
		Composite:   composite,
		Action:      action,
		Confidence:  e.confidence(scores, available),
		Categories:  scores,
		Weights:     weights,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// mapAction selects the band whose inclusive lower bound the composite meets.
func (e *Engine) mapAction(composite float64) models.Action {
	switch {
	case composite >= e.thresholds.StrongBuy:
		return models.ActionStrongBuy
	case composite >= e.thresholds.Buy:
		return models.ActionBuy
	case composite >= e.thresholds.Hold:
		return models.ActionHold
	case composite >= e.thresholds.Sell:
		return models.ActionSell
	default:
		return models.ActionStrongSell
	}
}

// confidence scales with the fraction of categories that had data and
// shrinks with disagreement among them: confidence = 100 * frac * (1 - s/100)
// where s is the population standard deviation of the available scores.
// A lone category gives low confidence even when its own score is extreme.
func (e *Engine) confidence(scores map[models.Category]models.CategoryScore, available map[models.Category]bool) float64 {
	frac := float64(len(available)) / float64(len(e.weights))

	mean := 0.0
	for cat := range available {
		mean += scores[cat].Score
	}
	mean /= float64(len(available))

	variance := 0.0
	for cat := range available {
		d := scores[cat].Score - mean
		variance += d * d
	}
	variance /= float64(len(available))
	dispersion := math.Sqrt(variance)

	conf := 100 * frac * (1 - dispersion/100)
	return math.Max(0, math.Min(100, conf))
}
