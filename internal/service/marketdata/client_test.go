package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"EquityLens/internal/domain/models"
	"EquityLens/internal/service/ratelimit"
	applogger "EquityLens/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "symbol": "TEST"},
      "timestamp": [1704207600, 1704294000, 1704380400, 1704466800],
      "indicators": {"quote": [{
        "open":   [99.5, 100.5, null, 102.5],
        "high":   [101.0, 102.0, null, 104.0],
        "low":    [99.0, 100.0, null, 102.0],
        "close":  [100.0, 101.0, null, 103.0],
        "volume": [1000000, 1100000, null, 1200000]
      }]}
    }],
    "error": null
  }
}`

func TestHistoryParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TEST" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		fmt.Fprint(w, chartBody)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RateCapacity: 100, RatePerSec: 100}, ratelimit.New(), testLogger(t))

	series, err := c.History(context.Background(), "TEST", models.Range1y)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// The null bar is dropped, not zero-filled.
	if series.Len() != 3 {
		t.Fatalf("bars = %d, want 3", series.Len())
	}
	if series.Currency != "USD" {
		t.Errorf("currency = %q, want USD", series.Currency)
	}
	last, ok := series.LastClose()
	if !ok || last != 103.0 {
		t.Errorf("last close = %v, want 103", last)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("parsed series invalid: %v", err)
	}
}

func TestHistoryProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RateCapacity: 100, RatePerSec: 100}, ratelimit.New(), testLogger(t))

	_, err := c.History(context.Background(), "NOPE", models.Range1y)
	if !errors.Is(err, models.ErrMissingData) {
		t.Fatalf("err = %v, want ErrMissingData", err)
	}
}

func TestHistoryEmptySymbol(t *testing.T) {
	c := New(Config{BaseURL: "http://unused"}, ratelimit.New(), testLogger(t))

	_, err := c.History(context.Background(), "", models.Range1y)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestHistoryRateLimited(t *testing.T) {
	c := New(Config{BaseURL: "http://unused", RateCapacity: 1, RatePerSec: 0.001}, ratelimit.New(), testLogger(t))

	// First call consumes the only token; upstream is unreachable so it errors,
	// but not with ErrRateLimited.
	if _, err := c.History(context.Background(), "TEST", models.Range1y); errors.Is(err, ErrRateLimited) {
		t.Fatal("first call should not be rate limited")
	}
	if _, err := c.History(context.Background(), "TEST", models.Range1y); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("second call err = %v, want ErrRateLimited", err)
	}
}

func TestFundamentalsMapsRawValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/TEST" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
		  "quoteSummary": {
		    "result": [{
		      "summaryDetail": {"trailingPE": {"raw": 18.4, "fmt": "18.40"}, "beta": {"raw": 1.1}},
		      "financialData": {
		        "returnOnEquity": {"raw": 0.21},
		        "debtToEquity": {"raw": 41.3},
		        "profitMargins": {"raw": 0.18},
		        "recommendationKey": {}
		      },
		      "defaultKeyStatistics": {"priceToBook": {"raw": 4.2}}
		    }],
		    "error": null
		  }
		}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RateCapacity: 100, RatePerSec: 100}, ratelimit.New(), testLogger(t))

	snap, err := c.Fundamentals(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("Fundamentals: %v", err)
	}
	if snap.TrailingPE == nil || *snap.TrailingPE != 18.4 {
		t.Errorf("TrailingPE = %v, want 18.4", snap.TrailingPE)
	}
	if snap.ROE == nil || *snap.ROE != 0.21 {
		t.Errorf("ROE = %v, want 0.21", snap.ROE)
	}
	// Percent-style D/E comes back scaled to a ratio.
	if snap.DebtToEquity == nil || math.Abs(*snap.DebtToEquity-0.413) > 1e-9 {
		t.Errorf("DebtToEquity = %v, want 0.413", snap.DebtToEquity)
	}
	// Fields absent upstream stay nil.
	if snap.ForwardPE != nil {
		t.Errorf("ForwardPE = %v, want nil", *snap.ForwardPE)
	}
	if snap.IsEmpty() {
		t.Error("snapshot should not be empty")
	}
}

func TestCurrencyForSuffix(t *testing.T) {
	cases := []struct {
		symbol, meta, want string
	}{
		{"SHOP.TO", "", "CAD"},
		{"XYZ.V", "", "CAD"},
		{"AAPL", "", "USD"},
		{"SHOP.TO", "cad", "CAD"},
		{"AAPL", "usd", "USD"},
	}
	for _, tc := range cases {
		if got := currencyFor(tc.symbol, tc.meta); got != tc.want {
			t.Errorf("currencyFor(%q, %q) = %q, want %q", tc.symbol, tc.meta, got, tc.want)
		}
	}
}
