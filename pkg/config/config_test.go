package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s
logging:
  level: debug
  format: json
  output: stdout
marketdata:
  base_url: https://example.com
  timeout: 10s
currency:
  cache_ttl: 30m
  fallback:
    USD_CAD: 1.35
analysis:
  weights:
    financial_health: 0.25
    valuation: 0.25
    technical: 0.25
    growth: 0.15
    momentum: 0.10
  thresholds:
    strong_buy: 80
    buy: 60
    hold: 40
    sell: 20
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Currency.CacheTTL != 30*time.Minute {
		t.Errorf("cache_ttl = %v, want 30m", cfg.Currency.CacheTTL)
	}
	if cfg.Currency.Fallback["USD_CAD"] != 1.35 {
		t.Errorf("fallback = %v", cfg.Currency.Fallback)
	}
	if cfg.Analysis.Thresholds.Buy != 60 {
		t.Errorf("buy threshold = %v, want 60", cfg.Analysis.Thresholds.Buy)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("MARKETDATA_BASE_URL", "https://override.example.com")
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithEnv(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.MarketData.BaseURL != "https://override.example.com" {
		t.Errorf("base_url = %q", cfg.MarketData.BaseURL)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestValidateRejectsMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, `
server:
  port: 8080
marketdata:
  base_url: https://example.com
`))
	if err == nil {
		t.Fatal("expected error for missing environment")
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
server:
  port: 8080
marketdata:
  base_url: https://example.com
analysis:
  weights:
    financial_health: 0.9
    valuation: 0.9
`))
	if err == nil {
		t.Fatal("expected error for weights not summing to 1")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
server:
  port: 99999
marketdata:
  base_url: https://example.com
`))
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
