package models

import "time"

// Category identifies one of the five scoring dimensions.
type Category string

const (
	CategoryFinancialHealth Category = "financial_health"
	CategoryValuation       Category = "valuation"
	CategoryTechnical       Category = "technical"
	CategoryGrowth          Category = "growth"
	CategoryMomentum        Category = "momentum"
)

// Categories lists all scoring categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryFinancialHealth,
		CategoryValuation,
		CategoryTechnical,
		CategoryGrowth,
		CategoryMomentum,
	}
}

// CategoryScore is the bounded sub-score for one category.
// Score is meaningful only when Available is true.
type CategoryScore struct {
	Category  Category `json:"category"`
	Score     float64  `json:"score"` // 0..100
	Metrics   int      `json:"metrics"`
	Rationale []string `json:"rationale,omitempty"`
	Available bool     `json:"available"`
}

// Action is the discrete recommendation band.
type Action string

const (
	ActionStrongSell Action = "STRONG_SELL"
	ActionSell       Action = "SELL"
	ActionHold       Action = "HOLD"
	ActionBuy        Action = "BUY"
	ActionStrongBuy  Action = "STRONG_BUY"
)

// Simplify collapses the five-band action into the reduced 3-way form.
func (a Action) Simplify() Action {
	switch a {
	case ActionStrongBuy:
		return ActionBuy
	case ActionStrongSell:
		return ActionSell
	default:
		return a
	}
}

// Recommendation is the composite result of one analysis run.
type Recommendation struct {
	Symbol      string                       `json:"symbol"`
	Composite   float64                      `json:"composite"` // 0..100
	Action      Action                       `json:"action"`
	Confidence  float64                      `json:"confidence"` // 0..100
	Categories  map[Category]CategoryScore   `json:"categories"`
	Weights     map[Category]float64         `json:"weights"` // renormalized, sums to 1
	GeneratedAt time.Time                    `json:"generated_at"`
}

// ExchangeRate is a display-only currency conversion rate.
type ExchangeRate struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
	Fallback  bool      `json:"fallback"` // true when served from the static table
}
