package scoring

import "EquityLens/internal/domain/models"

// Weights maps each category to its share of the composite score.
type Weights map[models.Category]float64

// DefaultWeights returns the fixed category weights. They sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		models.CategoryFinancialHealth: 0.25,
		models.CategoryValuation:       0.25,
		models.CategoryTechnical:       0.25,
		models.CategoryGrowth:          0.15,
		models.CategoryMomentum:        0.10,
	}
}

// CategoryFromString maps a config key to its category. Unknown keys pass
// through unchanged; they never become available, so renormalization drops
// them from every composite.
func CategoryFromString(s string) models.Category {
	for _, cat := range models.Categories() {
		if string(cat) == s {
			return cat
		}
	}
	return models.Category(s)
}

// Renormalize redistributes the weight of unavailable categories across the
// available ones, preserving their relative ratios. The result sums to 1.0
// for any non-empty available subset; an empty subset yields an empty map.
func Renormalize(w Weights, available map[models.Category]bool) Weights {
	total := 0.0
	for cat, weight := range w {
		if available[cat] {
			total += weight
		}
	}
	out := make(Weights, len(available))
	if total == 0 {
		return out
	}
	for cat, weight := range w {
		if available[cat] {
			out[cat] = weight / total
		}
	}
	return out
}
