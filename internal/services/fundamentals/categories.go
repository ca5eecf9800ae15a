package fundamentals

import (
	"fmt"

	"EquityLens/internal/domain/models"
)

// metric pairs an optional raw field with its normalization mapping.
type metric struct {
	name  string
	value *float64
	score Mapping
}

// scoreCategory averages the sub-scores of the present metrics. Absent
// fields are excluded; a category with no present metrics is returned with
// Available=false, never with a default score.
func scoreCategory(cat models.Category, metrics []metric) models.CategoryScore {
	cs := models.CategoryScore{Category: cat}
	sum := 0.0
	for _, m := range metrics {
		if m.value == nil {
			continue
		}
		s := clamp(m.score(*m.value))
		sum += s
		cs.Metrics++
		cs.Rationale = append(cs.Rationale, fmt.Sprintf("%s %.2f scores %.0f", m.name, *m.value, s))
	}
	if cs.Metrics == 0 {
		return cs
	}
	cs.Score = sum / float64(cs.Metrics)
	cs.Available = true
	return cs
}

// FinancialHealth scores profitability, leverage, and liquidity.
func FinancialHealth(f *models.FundamentalSnapshot) models.CategoryScore {
	if f == nil {
		return models.CategoryScore{Category: models.CategoryFinancialHealth}
	}
	return scoreCategory(models.CategoryFinancialHealth, []metric{
		{"profit margin", f.ProfitMargin, ScoreProfitMargin},
		{"operating margin", f.OperatingMargin, ScoreOperatingMargin},
		{"gross margin", f.GrossMargin, ScoreGrossMargin},
		{"ROE", f.ROE, ScoreROE},
		{"ROA", f.ROA, ScoreROA},
		{"debt/equity", f.DebtToEquity, ScoreDebtToEquity},
		{"current ratio", f.CurrentRatio, ScoreCurrentRatio},
		{"quick ratio", f.QuickRatio, ScoreQuickRatio},
	})
}

// Valuation scores the price multiples.
func Valuation(f *models.FundamentalSnapshot) models.CategoryScore {
	if f == nil {
		return models.CategoryScore{Category: models.CategoryValuation}
	}
	return scoreCategory(models.CategoryValuation, []metric{
		{"trailing P/E", f.TrailingPE, ScoreTrailingPE},
		{"forward P/E", f.ForwardPE, ScoreTrailingPE},
		{"price/book", f.PriceToBook, ScorePriceToBook},
		{"price/sales", f.PriceToSales, ScorePriceToSales},
	})
}

// Growth scores year-over-year revenue and earnings growth.
func Growth(f *models.FundamentalSnapshot) models.CategoryScore {
	if f == nil {
		return models.CategoryScore{Category: models.CategoryGrowth}
	}
	return scoreCategory(models.CategoryGrowth, []metric{
		{"revenue growth", f.RevenueGrowth, ScoreGrowth},
		{"earnings growth", f.EarningsGrowth, ScoreGrowth},
	})
}
