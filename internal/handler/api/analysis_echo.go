package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"EquityLens/internal/domain/models"
	icache "EquityLens/internal/service/cache"
	"EquityLens/internal/service/metrics"
	"EquityLens/internal/service/ratelimit"
	"EquityLens/internal/usecase"
	xhttp "EquityLens/pkg/http"
	xlogger "EquityLens/pkg/logger"
)

// AnalysisHandler serves the analysis endpoints over Echo.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	rates    *usecase.RateLookup
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
}

func NewAnalysisHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer, rates *usecase.RateLookup) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{
		logger:   logger,
		analyzer: analyzer,
		rates:    rates,
		rl:       ratelimit.New(),
	}
}

// SetCache injects a response cache; nil disables caching.
func (h *AnalysisHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.GET("/indicators", h.Indicators)
	g.GET("/rate", h.Rate)

	e.GET("/healthz", h.Health)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	start := time.Now()
	endpoint := "analyze"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":analyze", 10, 2) {
		h.logger.Warn("analyze rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := "analyze:" + req.Symbol + ":" + req.Range + ":" + req.Mode + ":" + req.Currency
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("analyze usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return h.domainError(c, err)
	}

	h.store(endpoint, cacheKey, res, 5*time.Minute)
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	start := time.Now()
	endpoint := "indicators"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":indicators", 10, 2) {
		h.logger.Warn("indicators rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := "indicators:" + req.Symbol + ":" + req.Range
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	set, err := h.analyzer.Indicators(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("indicators usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return h.domainError(c, err)
	}

	h.store(endpoint, cacheKey, set, 5*time.Minute)
	return xhttp.SuccessResponse(c, set)
}

func (h *AnalysisHandler) Rate(c echo.Context) error {
	start := time.Now()
	endpoint := "rate"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.RateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rate, err := h.rates.Lookup(c.Request().Context(), req.From, req.To)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("rate usecase error", xlogger.Error(err))
		return h.domainError(c, err)
	}
	return xhttp.SuccessResponse(c, rate)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// domainError maps taxonomy errors to HTTP status codes: invalid input 400,
// computation unavailable 422, anything upstream 502.
func (h *AnalysisHandler) domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrComputationUnavailable):
		return xhttp.UnprocessableEntityResponse(c, err.Error())
	default:
		return xhttp.BadGatewayResponse(c, err.Error())
	}
}

func (h *AnalysisHandler) cached(endpoint, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.String("key", key), xlogger.Error(err))
		return nil, false
	}
	if ok {
		metrics.APICacheHits.WithLabelValues(endpoint).Inc()
	}
	return b, ok
}

func (h *AnalysisHandler) store(endpoint, key string, v interface{}, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    v,
	})
	if err != nil {
		h.logger.Warn("cache marshal error", xlogger.String("key", key), xlogger.Error(err))
		return
	}
	if err := h.cache.SetBytes(key, b, ttl); err != nil {
		h.logger.Warn("cache set error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
	}
}
