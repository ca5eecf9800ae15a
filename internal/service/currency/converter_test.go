package currency

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"EquityLens/pkg/cache"
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

func TestRate_SamePairIsIdentity(t *testing.T) {
	c := New(Config{}, nil, testLogger(t))

	r, err := c.Rate(context.Background(), "usd", "USD")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if r.Rate != 1 {
		t.Fatalf("identity rate = %v, want 1", r.Rate)
	}
	if r.Fallback {
		t.Fatal("identity rate must not be marked fallback")
	}
}

func TestRate_FallbackWhenUpstreamUnavailable(t *testing.T) {
	c := New(Config{
		Fallback: map[string]float64{"USD_CAD": 1.35},
	}, nil, testLogger(t))

	r, err := c.Rate(context.Background(), "USD", "CAD")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if !r.Fallback {
		t.Fatal("expected fallback flag set")
	}
	if r.Rate != 1.35 {
		t.Fatalf("fallback rate = %v, want 1.35", r.Rate)
	}
}

func TestRate_InverseFallback(t *testing.T) {
	c := New(Config{
		Fallback: map[string]float64{"USD_CAD": 1.35},
	}, nil, testLogger(t))

	r, err := c.Rate(context.Background(), "CAD", "USD")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if !r.Fallback {
		t.Fatal("expected fallback flag set")
	}
	if math.Abs(r.Rate-1/1.35) > 1e-4 {
		t.Fatalf("inverse fallback rate = %v, want ~%v", r.Rate, 1/1.35)
	}
}

func TestRate_UnknownPairFails(t *testing.T) {
	c := New(Config{}, nil, testLogger(t))

	if _, err := c.Rate(context.Background(), "USD", "JPY"); err == nil {
		t.Fatal("expected error for unknown pair with no upstream")
	}
}

func TestRate_FetchAndCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("base = %q, want USD", got)
		}
		_ = json.NewEncoder(w).Encode(rateResponse{
			Base:  "USD",
			Rates: map[string]float64{"CAD": 1.3712},
		})
	}))
	defer srv.Close()

	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(10))
	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute}, mem, testLogger(t))

	for i := 0; i < 3; i++ {
		r, err := c.Rate(context.Background(), "USD", "CAD")
		if err != nil {
			t.Fatalf("Rate call %d: %v", i, err)
		}
		if r.Rate != 1.3712 {
			t.Fatalf("rate = %v, want 1.3712", r.Rate)
		}
		if r.Fallback {
			t.Fatal("live rate must not be marked fallback")
		}
	}
	if calls != 1 {
		t.Fatalf("upstream calls = %d, want 1 (cached)", calls)
	}
}

func TestConvert_UsesDecimalRounding(t *testing.T) {
	c := New(Config{
		Fallback: map[string]float64{"USD_CAD": 1.35},
	}, nil, testLogger(t))

	amount, rate, err := c.Convert(context.Background(), 100.10, "USD", "CAD")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !rate.Fallback {
		t.Fatal("expected fallback rate")
	}
	if amount != 135.135 {
		t.Fatalf("converted = %v, want 135.135", amount)
	}
}
