package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"EquityLens/internal/domain/models"
	"EquityLens/internal/service/ratelimit"
	xhttp "EquityLens/pkg/http"
	applogger "EquityLens/pkg/logger"
	"EquityLens/pkg/util"
)

// ErrRateLimited signals the upstream quota is exhausted for now.
var ErrRateLimited = errors.New("marketdata: rate limited")

const limiterKey = "marketdata"

// Config holds upstream connection settings.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	RateCapacity float64
	RatePerSec   float64
}

// Client fetches daily history and fundamentals from a chart-style REST API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	log     *applogger.Logger
}

// New creates a market data client.
func New(cfg Config, limiter *ratelimit.Limiter, log *applogger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RateCapacity <= 0 {
		cfg.RateCapacity = 5
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	return &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		limiter: limiter,
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Symbol   string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches daily OHLCV bars for the requested range.
func (c *Client) History(ctx context.Context, symbol string, rng models.Range) (*models.PriceSeries, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", models.ErrInvalidInput)
	}
	if !c.limiter.Allow(limiterKey, c.cfg.RateCapacity, c.cfg.RatePerSec) {
		return nil, ErrRateLimited
	}

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.cfg.BaseURL, symbol),
		QueryParams: map[string][]string{
			"range":    {string(rng)},
			"interval": {"1d"},
		},
		Headers: c.headers(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", models.ErrMissingData, resp.Chart.Error.Description, symbol)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no chart result for %s", models.ErrMissingData, symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := &models.PriceSeries{
		Symbol:   symbol,
		Currency: currencyFor(symbol, result.Meta.Currency),
		Bars:     make([]models.Bar, 0, len(result.Timestamp)),
	}
	for i, ts := range result.Timestamp {
		// Providers report nulls on halted days; drop those bars.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := models.Bar{
			Timestamp: util.AlignToDay(time.Unix(ts, 0)),
			Close:     *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		series.Bars = append(series.Bars, bar)
	}

	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("%w: empty history for %s", models.ErrMissingData, symbol)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	series = series.TrimTo(rng)

	c.log.Debug("history fetched",
		applogger.String("symbol", symbol),
		applogger.String("range", string(rng)),
		applogger.Int("bars", series.Len()),
	)
	return series, nil
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail        map[string]rawValue `json:"summaryDetail"`
			FinancialData        map[string]rawValue `json:"financialData"`
			DefaultKeyStatistics map[string]rawValue `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// rawValue matches the provider's {"raw": n, "fmt": "..."} wrapper. Non-numeric
// entries (module flags, strings) simply leave Raw nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// Fundamentals fetches the raw fundamental snapshot for one symbol.
// Absent fields stay nil so scoring can exclude them.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*models.FundamentalSnapshot, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", models.ErrInvalidInput)
	}
	if !c.limiter.Allow(limiterKey, c.cfg.RateCapacity, c.cfg.RatePerSec) {
		return nil, ErrRateLimited
	}

	var resp summaryResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.cfg.BaseURL, symbol),
		QueryParams: map[string][]string{
			"modules": {"summaryDetail,financialData,defaultKeyStatistics"},
		},
		Headers: c.headers(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", models.ErrMissingData, resp.QuoteSummary.Error.Description, symbol)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no fundamentals for %s", models.ErrMissingData, symbol)
	}

	r := resp.QuoteSummary.Result[0]
	snap := &models.FundamentalSnapshot{
		Symbol: symbol,

		TrailingPE:   pick(r.SummaryDetail, "trailingPE"),
		ForwardPE:    pick(r.SummaryDetail, "forwardPE"),
		PriceToBook:  pick(r.DefaultKeyStatistics, "priceToBook"),
		PriceToSales: pick(r.SummaryDetail, "priceToSalesTrailing12Months"),

		ProfitMargin:    pick(r.FinancialData, "profitMargins"),
		OperatingMargin: pick(r.FinancialData, "operatingMargins"),
		GrossMargin:     pick(r.FinancialData, "grossMargins"),
		ROE:             pick(r.FinancialData, "returnOnEquity"),
		ROA:             pick(r.FinancialData, "returnOnAssets"),

		DebtToEquity: scaleDebtToEquity(pick(r.FinancialData, "debtToEquity")),
		CurrentRatio: pick(r.FinancialData, "currentRatio"),
		QuickRatio:   pick(r.FinancialData, "quickRatio"),

		RevenueGrowth:  pick(r.FinancialData, "revenueGrowth"),
		EarningsGrowth: pick(r.FinancialData, "earningsGrowth"),

		DividendYield: pick(r.SummaryDetail, "dividendYield"),
		PayoutRatio:   pick(r.SummaryDetail, "payoutRatio"),
		Beta:          pick(r.SummaryDetail, "beta"),
		MarketCap:     pick(r.SummaryDetail, "marketCap"),
	}

	c.log.Debug("fundamentals fetched",
		applogger.String("symbol", symbol),
		applogger.Bool("empty", snap.IsEmpty()),
	)
	return snap, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "equitylens/1.0",
	}
	if c.cfg.APIKey != "" {
		h["Authorization"] = "Bearer " + c.cfg.APIKey
	}
	return h
}

func pick(m map[string]rawValue, key string) *float64 {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v.Raw == nil {
		return nil
	}
	return v.Raw
}

// scaleDebtToEquity normalizes the provider's percent-style D/E (e.g. 41.3)
// down to a ratio (0.413). Values below 10 are assumed to be ratios already.
func scaleDebtToEquity(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v >= 10 {
		scaled := *v / 100
		return &scaled
	}
	return v
}

// currencyFor resolves display currency, with TSX/TSXV suffix handling when
// the provider omits meta currency.
func currencyFor(symbol, meta string) string {
	if meta != "" {
		return strings.ToUpper(meta)
	}
	up := strings.ToUpper(symbol)
	if strings.HasSuffix(up, ".TO") || strings.HasSuffix(up, ".V") {
		return "CAD"
	}
	return "USD"
}
