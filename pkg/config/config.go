package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	MarketData struct {
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		Timeout      time.Duration `yaml:"timeout"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
	} `yaml:"marketdata"`
	Currency struct {
		BaseURL  string             `yaml:"base_url"`
		Timeout  time.Duration      `yaml:"timeout"`
		CacheTTL time.Duration      `yaml:"cache_ttl"`
		Fallback map[string]float64 `yaml:"fallback"` // "USD_CAD" -> rate
	} `yaml:"currency"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Analysis struct {
		Indicators struct {
			MAWindows        []int   `yaml:"ma_windows"`
			RSIPeriod        int     `yaml:"rsi_period"`
			BollWindow       int     `yaml:"boll_window"`
			BollK            float64 `yaml:"boll_k"`
			MACDFast         int     `yaml:"macd_fast"`
			MACDSlow         int     `yaml:"macd_slow"`
			MACDSignal       int     `yaml:"macd_signal"`
			MomentumPeriod   int     `yaml:"momentum_period"`
			VolatilityWindow int     `yaml:"volatility_window"`
			VolumeWindow     int     `yaml:"volume_window"`
			RangeLookback    int     `yaml:"range_lookback"`
		} `yaml:"indicators"`
		Weights    map[string]float64 `yaml:"weights"` // category -> weight, must sum to 1.0
		Thresholds struct {
			StrongBuy float64 `yaml:"strong_buy"`
			Buy       float64 `yaml:"buy"`
			Hold      float64 `yaml:"hold"`
			Sell      float64 `yaml:"sell"`
		} `yaml:"thresholds"`
	} `yaml:"analysis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("MARKETDATA_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("CURRENCY_BASE_URL"); v != "" {
		c.Currency.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("marketdata.base_url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if len(c.Analysis.Weights) > 0 {
		sum := 0.0
		for _, w := range c.Analysis.Weights {
			if w < 0 {
				return fmt.Errorf("analysis.weights must be non-negative")
			}
			sum += w
		}
		if sum < 0.999 || sum > 1.001 {
			return fmt.Errorf("analysis.weights must sum to 1.0, got %.4f", sum)
		}
	}
	return nil
}
