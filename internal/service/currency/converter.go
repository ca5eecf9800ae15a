package currency

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"EquityLens/internal/domain/models"
	"EquityLens/pkg/cache"
	xhttp "EquityLens/pkg/http"
	applogger "EquityLens/pkg/logger"
)

// Config holds rate provider settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Fallback maps "USD_CAD"-style pairs to static rates used when the
	// upstream is unreachable.
	Fallback map[string]float64
}

// Converter implements domain.service.RateProvider with a cached REST
// lookup and a static fallback table.
type Converter struct {
	cfg   Config
	http  *xhttp.Client
	cache cache.Service
	log   *applogger.Logger
}

// New creates a currency converter.
func New(cfg Config, c cache.Service, log *applogger.Logger) *Converter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Converter{
		cfg:   cfg,
		http:  xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		cache: c,
		log:   log,
	}
}

type rateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the conversion rate from one currency to another. Results are
// cached; when the upstream fails a static fallback rate is returned with the
// Fallback flag set, never an error for a known pair.
func (c *Converter) Rate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return models.ExchangeRate{From: from, To: to, Rate: 1, FetchedAt: time.Now().UTC()}, nil
	}

	key := cache.GenerateKeyWithParams("rate", from, to)
	if c.cache != nil {
		var cached models.ExchangeRate
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		c.log.Warn("rate fetch failed, using fallback",
			applogger.String("pair", from+"_"+to),
			applogger.Error(err),
		)
		return c.fallback(from, to, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, rate, c.cfg.CacheTTL); err != nil {
			c.log.Warn("rate cache write failed", applogger.Error(err))
		}
	}
	return rate, nil
}

// Convert applies the pair's rate to an amount using decimal arithmetic so
// display values round predictably.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, models.ExchangeRate, error) {
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, rate, err
	}
	converted := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate.Rate)).
		Round(4)
	f, _ := converted.Float64()
	return f, rate, nil
}

func (c *Converter) fetch(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	if c.cfg.BaseURL == "" {
		return models.ExchangeRate{}, fmt.Errorf("currency: no base url configured")
	}

	var resp rateResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/latest", c.cfg.BaseURL),
		QueryParams: map[string][]string{
			"base":    {from},
			"symbols": {to},
		},
	}, &resp)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("fetch rate %s/%s: %w", from, to, err)
	}

	r, ok := resp.Rates[to]
	if !ok || r <= 0 {
		return models.ExchangeRate{}, fmt.Errorf("%w: no rate %s/%s in response", models.ErrMissingData, from, to)
	}
	return models.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      r,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (c *Converter) fallback(from, to string, cause error) (models.ExchangeRate, error) {
	if r, ok := c.cfg.Fallback[from+"_"+to]; ok && r > 0 {
		return models.ExchangeRate{
			From:      from,
			To:        to,
			Rate:      r,
			FetchedAt: time.Now().UTC(),
			Fallback:  true,
		}, nil
	}
	// Derive from the inverse pair when only one direction is configured.
	if r, ok := c.cfg.Fallback[to+"_"+from]; ok && r > 0 {
		inv, _ := decimal.NewFromInt(1).Div(decimal.NewFromFloat(r)).Round(6).Float64()
		return models.ExchangeRate{
			From:      from,
			To:        to,
			Rate:      inv,
			FetchedAt: time.Now().UTC(),
			Fallback:  true,
		}, nil
	}
	return models.ExchangeRate{}, fmt.Errorf("rate %s/%s unavailable: %w", from, to, cause)
}
