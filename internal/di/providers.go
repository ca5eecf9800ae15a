package di

import (
	"fmt"

	domsvc "EquityLens/internal/domain/service"
	"EquityLens/internal/handler/api"
	icache "EquityLens/internal/service/cache"
	"EquityLens/internal/service/currency"
	"EquityLens/internal/service/marketdata"
	"EquityLens/internal/service/ratelimit"
	"EquityLens/internal/services/indicators"
	"EquityLens/internal/services/scoring"
	"EquityLens/internal/usecase"
	"EquityLens/pkg/cache"
	"EquityLens/pkg/config"
	xhttp "EquityLens/pkg/http"
	applogger "EquityLens/pkg/logger"
	pkgmetrics "EquityLens/pkg/metrics"
	"EquityLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return pkgmetrics.New()
}

// ProvideLimiter creates the shared token-bucket limiter for upstream calls.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMarketData creates the REST market data provider.
func ProvideMarketData(cfg *config.Config, limiter *ratelimit.Limiter, log *applogger.Logger) domsvc.MarketDataProvider {
	return marketdata.New(marketdata.Config{
		BaseURL:      cfg.MarketData.BaseURL,
		APIKey:       cfg.MarketData.APIKey,
		Timeout:      cfg.MarketData.Timeout,
		RateCapacity: cfg.MarketData.RateCapacity,
		RatePerSec:   cfg.MarketData.RatePerSec,
	}, limiter, log)
}

// ProvideRateCache selects the cache backend for currency rates: layered
// memory+redis when Redis is configured and reachable, plain memory otherwise.
func ProvideRateCache(cfg *config.Config, log *applogger.Logger) cache.Service {
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			log.Warn("redis unavailable, falling back to in-memory rate cache", applogger.Error(err))
			return cache.NewMemoryCache()
		}
		return cache.NewLayeredCache(redisCache)
	}
	return cache.NewMemoryCache()
}

// ProvideRateProvider creates the cached currency converter.
func ProvideRateProvider(cfg *config.Config, c cache.Service, log *applogger.Logger) domsvc.RateProvider {
	return currency.New(currency.Config{
		BaseURL:  cfg.Currency.BaseURL,
		Timeout:  cfg.Currency.Timeout,
		CacheTTL: cfg.Currency.CacheTTL,
		Fallback: cfg.Currency.Fallback,
	}, c, log)
}

// ProvideEngine builds the scoring engine from configured weights and
// thresholds, falling back to defaults when unset.
func ProvideEngine(cfg *config.Config) (*scoring.Engine, error) {
	weights := scoring.DefaultWeights()
	if len(cfg.Analysis.Weights) > 0 {
		weights = make(scoring.Weights, len(cfg.Analysis.Weights))
		for k, v := range cfg.Analysis.Weights {
			weights[scoring.CategoryFromString(k)] = v
		}
	}

	thresholds := scoring.DefaultThresholds()
	if cfg.Analysis.Thresholds.StrongBuy != 0 {
		thresholds = scoring.Thresholds{
			StrongBuy: cfg.Analysis.Thresholds.StrongBuy,
			Buy:       cfg.Analysis.Thresholds.Buy,
			Hold:      cfg.Analysis.Thresholds.Hold,
			Sell:      cfg.Analysis.Thresholds.Sell,
		}
	}

	return scoring.NewEngine(weights, thresholds)
}

// ProvideIndicatorParams builds indicator windows from config, defaulting each
// unset window.
func ProvideIndicatorParams(cfg *config.Config) indicators.Params {
	p := indicators.DefaultParams()
	ic := cfg.Analysis.Indicators
	if len(ic.MAWindows) > 0 {
		p.MAWindows = ic.MAWindows
	}
	if ic.RSIPeriod > 0 {
		p.RSIPeriod = ic.RSIPeriod
	}
	if ic.BollWindow > 0 {
		p.BollWindow = ic.BollWindow
	}
	if ic.BollK > 0 {
		p.BollK = ic.BollK
	}
	if ic.MACDFast > 0 && ic.MACDSlow > ic.MACDFast && ic.MACDSignal > 0 {
		p.MACDFast, p.MACDSlow, p.MACDSignal = ic.MACDFast, ic.MACDSlow, ic.MACDSignal
	}
	if ic.MomentumPeriod > 0 {
		p.MomentumPeriod = ic.MomentumPeriod
	}
	if ic.VolatilityWindow > 0 {
		p.VolatilityWindow = ic.VolatilityWindow
	}
	if ic.VolumeWindow > 0 {
		p.VolumeWindow = ic.VolumeWindow
	}
	if ic.RangeLookback > 0 {
		p.RangeLookback = ic.RangeLookback
	}
	return p
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(
	provider domsvc.MarketDataProvider,
	rates domsvc.RateProvider,
	engine *scoring.Engine,
	params indicators.Params,
	m domsvc.Metrics,
	log *applogger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(provider, rates, engine, params, m, log)
}

// ProvideRateLookup creates the rate endpoint use case.
func ProvideRateLookup(rates domsvc.RateProvider) *usecase.RateLookup {
	return usecase.NewRateLookup(rates)
}

// ProvideHandler creates the Echo API handler with a response cache, backed
// by Redis when one is configured.
func ProvideHandler(cfg *config.Config, log *applogger.Logger, analyzer *usecase.Analyzer, rates *usecase.RateLookup) xhttp.Handler {
	h := api.NewAnalysisHandler(log, analyzer, rates)
	if cfg.Redis.Enabled {
		h.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		h.SetCache(icache.NewTTLCache())
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
