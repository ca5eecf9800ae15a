package scoring

import (
	"fmt"

	"EquityLens/internal/domain/models"
	"EquityLens/internal/services/indicators"
)

// TechnicalCategory derives the technical CategoryScore from the computed
// indicator set. Each constituent signal maps to a [0,100] sub-score and the
// category averages whatever could be computed; a nil or empty set yields an
// unavailable category.
func TechnicalCategory(set *indicators.Set, lastClose float64) models.CategoryScore {
	cs := models.CategoryScore{Category: models.CategoryTechnical}
	if set == nil {
		return cs
	}

	add := func(score float64, rationale string) {
		cs.Score += score
		cs.Metrics++
		cs.Rationale = append(cs.Rationale, rationale)
	}

	ma50, ok50 := set.SMA[50]
	ma200, ok200 := set.SMA[200]
	if ok50 && ok200 {
		switch {
		case ma50.Last() > ma200.Last():
			add(80, "MA50 above MA200 (bullish alignment)")
		case ma50.Last() < ma200.Last():
			add(30, "MA50 below MA200 (bearish alignment)")
		default:
			add(50, "MA50 equals MA200")
		}
	}

	if set.RSI != nil {
		switch rsi := set.RSI.Last(); {
		case rsi < 30:
			add(70, fmt.Sprintf("RSI %.0f oversold", rsi))
		case rsi > 70:
			add(30, fmt.Sprintf("RSI %.0f overbought", rsi))
		default:
			add(50, fmt.Sprintf("RSI %.0f neutral", rsi))
		}
	}

	if set.MACD != nil {
		if h := set.MACD.Histogram.Last(); h > 0 {
			add(70, "MACD histogram positive")
		} else if h < 0 {
			add(35, "MACD histogram negative")
		} else {
			add(50, "MACD histogram flat")
		}
	}

	if set.Bol != nil {
		switch {
		case lastClose < set.Bol.Lower.Last():
			add(70, "price below lower Bollinger band")
		case lastClose > set.Bol.Upper.Last():
			add(30, "price above upper Bollinger band")
		default:
			add(50, "price inside Bollinger bands")
		}
	}

	if cs.Metrics == 0 {
		return models.CategoryScore{Category: models.CategoryTechnical}
	}
	cs.Score /= float64(cs.Metrics)
	cs.Available = true
	return cs
}

// MomentumCategory derives the momentum CategoryScore from recent price
// change and the 52-week range position.
func MomentumCategory(set *indicators.Set, closes []float64) models.CategoryScore {
	cs := models.CategoryScore{Category: models.CategoryMomentum}
	if set == nil {
		return cs
	}

	add := func(score float64, rationale string) {
		cs.Score += score
		cs.Metrics++
		cs.Rationale = append(cs.Rationale, rationale)
	}

	if change, err := indicators.PriceMomentum(closes, 20); err == nil {
		switch {
		case change > 10:
			add(80, fmt.Sprintf("price up %.1f%% over 20 days", change))
		case change < -10:
			add(20, fmt.Sprintf("price down %.1f%% over 20 days", change))
		default:
			add(50, fmt.Sprintf("price changed %.1f%% over 20 days", change))
		}
	}

	if set.RangePos != nil {
		switch pos := *set.RangePos; {
		case pos >= 0.8:
			add(70, fmt.Sprintf("trading at %.0f%% of 52-week range", pos*100))
		case pos <= 0.2:
			add(30, fmt.Sprintf("trading at %.0f%% of 52-week range", pos*100))
		default:
			add(50, fmt.Sprintf("trading at %.0f%% of 52-week range", pos*100))
		}
	}

	if cs.Metrics == 0 {
		return models.CategoryScore{Category: models.CategoryMomentum}
	}
	cs.Score /= float64(cs.Metrics)
	cs.Available = true
	return cs
}
