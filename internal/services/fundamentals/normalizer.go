package fundamentals

import "math"

// Mapping converts one raw fundamental value to a bounded [0,100] sub-score.
// Every mapping is pure and total over finite inputs; extreme values clamp to
// the score range instead of extrapolating.
type Mapping func(x float64) float64

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// ScoreTrailingPE scores price-to-earnings: lower multiples score higher,
// negative earnings score poorly.
func ScoreTrailingPE(x float64) float64 {
	switch {
	case x <= 0:
		return 20
	case x < 10:
		return 90
	case x <= 20:
		return 75
	case x <= 35:
		return 55
	default:
		return 25
	}
}

// ScorePriceToBook scores the book-value multiple.
func ScorePriceToBook(x float64) float64 {
	switch {
	case x <= 0:
		return 20
	case x < 1:
		return 90
	case x <= 3:
		return 75
	case x <= 6:
		return 55
	default:
		return 30
	}
}

// ScorePriceToSales scores the revenue multiple.
func ScorePriceToSales(x float64) float64 {
	switch {
	case x <= 0:
		return 20
	case x < 1:
		return 85
	case x <= 5:
		return 60
	default:
		return 30
	}
}

// ScoreProfitMargin scores net margin as a ratio (0.15 = 15%).
func ScoreProfitMargin(x float64) float64 {
	switch {
	case x > 0.15:
		return 90
	case x > 0.10:
		return 75
	case x > 0.05:
		return 60
	case x > 0:
		return 45
	default:
		return 20
	}
}

// ScoreOperatingMargin scores operating margin.
func ScoreOperatingMargin(x float64) float64 {
	switch {
	case x > 0.20:
		return 90
	case x > 0.10:
		return 70
	case x > 0:
		return 50
	default:
		return 20
	}
}

// ScoreGrossMargin scores gross margin.
func ScoreGrossMargin(x float64) float64 {
	switch {
	case x > 0.50:
		return 85
	case x > 0.30:
		return 70
	case x > 0.15:
		return 55
	case x > 0:
		return 40
	default:
		return 20
	}
}

// ScoreROE scores return on equity.
func ScoreROE(x float64) float64 {
	switch {
	case x > 0.20:
		return 90
	case x > 0.15:
		return 75
	case x > 0.10:
		return 60
	case x > 0:
		return 45
	default:
		return 20
	}
}

// ScoreROA scores return on assets.
func ScoreROA(x float64) float64 {
	switch {
	case x > 0.10:
		return 90
	case x > 0.05:
		return 70
	case x > 0:
		return 50
	default:
		return 25
	}
}

// ScoreDebtToEquity scores leverage: lower is healthier.
func ScoreDebtToEquity(x float64) float64 {
	switch {
	case x < 0:
		return 20
	case x < 0.3:
		return 90
	case x < 0.5:
		return 80
	case x < 1.0:
		return 65
	case x < 2.0:
		return 45
	default:
		return 20
	}
}

// ScoreCurrentRatio scores short-term liquidity.
func ScoreCurrentRatio(x float64) float64 {
	switch {
	case x > 2.0:
		return 90
	case x > 1.5:
		return 75
	case x > 1.2:
		return 60
	case x > 1.0:
		return 45
	default:
		return 25
	}
}

// ScoreQuickRatio scores liquidity excluding inventory.
func ScoreQuickRatio(x float64) float64 {
	switch {
	case x > 1.5:
		return 85
	case x > 1.0:
		return 70
	case x > 0.8:
		return 50
	default:
		return 30
	}
}

// ScoreGrowth scores a year-over-year growth rate; shared by revenue and
// earnings growth.
func ScoreGrowth(x float64) float64 {
	switch {
	case x > 0.20:
		return 90
	case x > 0.10:
		return 75
	case x > 0.05:
		return 60
	case x >= 0:
		return 50
	default:
		return 25
	}
}
