package di

import (
	"context"
	"testing"
	"time"

	"EquityLens/pkg/config"
	applogger "EquityLens/pkg/logger"
)

func quietLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestProvideRateCacheMemoryWhenRedisDisabled(t *testing.T) {
	cfg := &config.Config{}
	c := ProvideRateCache(cfg, quietLogger(t))
	if c == nil {
		t.Fatal("expected a cache service")
	}

	ctx := context.Background()
	if err := c.Set(ctx, "rate:USD:CAD", 1.35, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got float64
	if err := c.Get(ctx, "rate:USD:CAD", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 1.35 {
		t.Fatalf("got %v, want 1.35", got)
	}
}

func TestProvideRateCacheFallsBackWhenRedisUnreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Enabled = true
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1 // nothing listens here

	c := ProvideRateCache(cfg, quietLogger(t))
	if c == nil {
		t.Fatal("expected a fallback cache service")
	}

	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set on fallback cache: %v", err)
	}
	var got string
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get on fallback cache: %v", err)
	}
	if got != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}
