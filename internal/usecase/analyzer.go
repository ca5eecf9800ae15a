package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"EquityLens/internal/domain/models"
	domsvc "EquityLens/internal/domain/service"
	"EquityLens/internal/services/fundamentals"
	"EquityLens/internal/services/indicators"
	"EquityLens/internal/services/scoring"
	applogger "EquityLens/pkg/logger"
)

// Analyzer orchestrates one symbol analysis: fetch, indicators, normalization,
// scoring. It owns no state beyond its collaborators and is safe for
// concurrent use.
type Analyzer struct {
	provider domsvc.MarketDataProvider
	rates    domsvc.RateProvider
	engine   *scoring.Engine
	params   indicators.Params
	metrics  domsvc.Metrics
	log      *applogger.Logger
	timeout  time.Duration
}

// NewAnalyzer creates an analyzer use case.
func NewAnalyzer(
	provider domsvc.MarketDataProvider,
	rates domsvc.RateProvider,
	engine *scoring.Engine,
	params indicators.Params,
	metrics domsvc.Metrics,
	log *applogger.Logger,
) *Analyzer {
	return &Analyzer{
		provider: provider,
		rates:    rates,
		engine:   engine,
		params:   params,
		metrics:  metrics,
		log:      log,
		timeout:  15 * time.Second,
	}
}

// PriceView bundles the last traded price for display, optionally converted.
type PriceView struct {
	Last      float64  `json:"last"`
	Currency  string   `json:"currency"`
	Converted *float64 `json:"converted,omitempty"`
	DisplayIn string   `json:"display_in,omitempty"`
}

// AnalysisResult is the full payload for one analysis run.
type AnalysisResult struct {
	Recommendation *models.Recommendation `json:"recommendation"`
	Indicators     *indicators.Set        `json:"indicators,omitempty"`
	Price          *PriceView             `json:"price,omitempty"`
	Rate           *models.ExchangeRate   `json:"rate,omitempty"`
	Range          models.Range           `json:"range"`
	Warnings       map[string]string      `json:"warnings,omitempty"`
}

// Analyze runs the full pipeline for one symbol. Provider failures degrade to
// unavailable categories; only a run with zero usable data returns
// ErrComputationUnavailable.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*AnalysisResult, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", models.ErrInvalidInput)
	}
	rng := models.NormalizeRange(req.Range)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	}()

	series, snapshot, warnings := a.fetch(ctx, symbol, rng)

	scores := make(map[models.Category]models.CategoryScore, 5)

	var set *indicators.Set
	if series != nil {
		computed, err := indicators.Compute(series, a.params)
		if err != nil {
			warnings["indicators"] = err.Error()
		} else {
			set = computed
		}
	}
	lastClose := 0.0
	if series != nil {
		lastClose, _ = series.LastClose()
	}
	var closes []float64
	if series != nil {
		closes = series.Closes()
	}
	scores[models.CategoryTechnical] = scoring.TechnicalCategory(set, lastClose)
	scores[models.CategoryMomentum] = scoring.MomentumCategory(set, closes)

	scores[models.CategoryFinancialHealth] = fundamentals.FinancialHealth(snapshot)
	scores[models.CategoryValuation] = fundamentals.Valuation(snapshot)
	scores[models.CategoryGrowth] = fundamentals.Growth(snapshot)

	rec, err := a.engine.Evaluate(symbol, scores, req.Mode == "three")
	if err != nil {
		if errors.Is(err, models.ErrComputationUnavailable) {
			a.metrics.RecordError("computation_unavailable")
		}
		return nil, err
	}

	a.metrics.RecordAnalysis(symbol, string(rec.Action))
	a.metrics.RecordComposite(symbol, rec.Composite)

	result := &AnalysisResult{
		Recommendation: rec,
		Indicators:     set,
		Range:          rng,
	}
	if len(warnings) > 0 {
		result.Warnings = warnings
	}
	if series != nil && lastClose > 0 {
		result.Price = a.priceView(ctx, lastClose, series.Currency, req.Currency, result)
	}

	a.log.Info("analysis complete",
		applogger.String("symbol", symbol),
		applogger.String("action", string(rec.Action)),
		applogger.Float64("composite", rec.Composite),
		applogger.Float64("confidence", rec.Confidence),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return result, nil
}

// Indicators fetches history and returns the full derived series for charting.
func (a *Analyzer) Indicators(ctx context.Context, req models.IndicatorsRequest) (*indicators.Set, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", models.ErrInvalidInput)
	}
	rng := models.NormalizeRange(req.Range)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		a.metrics.RecordLatency("indicators", time.Since(start).Seconds())
	}()

	series, err := a.provider.History(ctx, symbol, rng)
	if err != nil {
		a.metrics.RecordError("history_fetch")
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	return indicators.Compute(series, a.params)
}

// fetch pulls history and fundamentals concurrently. Either may fail; the
// caller degrades the dependent categories instead of aborting.
func (a *Analyzer) fetch(ctx context.Context, symbol string, rng models.Range) (*models.PriceSeries, *models.FundamentalSnapshot, map[string]string) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		series   *models.PriceSeries
		snapshot *models.FundamentalSnapshot
	)
	warnings := make(map[string]string)

	wg.Add(1)
	go func() {
		defer wg.Done()
		s, err := a.provider.History(ctx, symbol, rng)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			a.metrics.RecordError("history_fetch")
			warnings["history"] = err.Error()
			a.log.Warn("history unavailable", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		series = s
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		f, err := a.provider.Fundamentals(ctx, symbol)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			a.metrics.RecordError("fundamentals_fetch")
			warnings["fundamentals"] = err.Error()
			a.log.Warn("fundamentals unavailable", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		snapshot = f
	}()

	wg.Wait()
	return series, snapshot, warnings
}

// priceView converts the last close for display when a different currency was
// requested. Conversion failures degrade to the native price.
func (a *Analyzer) priceView(ctx context.Context, last float64, native, requested string, result *AnalysisResult) *PriceView {
	view := &PriceView{Last: last, Currency: native}
	if requested == "" || strings.EqualFold(requested, native) {
		return view
	}

	rate, err := a.rates.Rate(ctx, native, requested)
	if err != nil {
		a.metrics.RecordError("rate_fetch")
		if result.Warnings == nil {
			result.Warnings = make(map[string]string)
		}
		result.Warnings["rate"] = err.Error()
		return view
	}

	converted, _ := decimal.NewFromFloat(last).
		Mul(decimal.NewFromFloat(rate.Rate)).
		Round(2).
		Float64()
	view.Converted = &converted
	view.DisplayIn = strings.ToUpper(requested)
	result.Rate = &rate
	return view
}
