package indicators

import (
	"fmt"

	"EquityLens/internal/domain/models"
)

// Params holds the lookback windows for the indicator pipeline.
type Params struct {
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
}

// DefaultParams returns the standard daily-chart configuration.
func DefaultParams() Params {
	return Params{
		MAWindows:        []int{20, 50, 200},
		RSIPeriod:        14,
		BollWindow:       20,
		BollK:            2.0,
		MACDFast:         12,
		MACDSlow:         26,
		MACDSignal:       9,
		MomentumPeriod:   10,
		VolatilityWindow: 30,
		VolumeWindow:     20,
		RangeLookback:    252,
	}
}

// Set bundles every derived series and summary for one price history.
// Nil members mean the series was too short for that indicator; Skipped lists
// what was left out so callers never mistake absence for zero.
type Set struct {
	Symbol string `json:"symbol"`

	SMA  map[int]Series `json:"sma,omitempty"`
	EMA  map[int]Series `json:"ema,omitempty"`
	RSI  *Series        `json:"rsi,omitempty"`
	Bol  *Bands         `json:"bollinger,omitempty"`
	MACD *MACDResult    `json:"macd,omitempty"`

	Trend       Trend       `json:"trend,omitempty"`
	Momentum    *float64    `json:"momentum,omitempty"`
	VolumeLevel VolumeLevel `json:"volume_level,omitempty"`
	VolumeRatio *float64    `json:"volume_ratio,omitempty"`
	Volatility  *float64    `json:"volatility,omitempty"`
	RangePos    *float64    `json:"range_position,omitempty"`
	Support     *float64    `json:"support,omitempty"`
	Resistance  *float64    `json:"resistance,omitempty"`

	Signals []string `json:"signals,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

// Compute runs the full indicator pipeline over one validated series.
// Individual indicators degrade by exclusion when history is short; the only
// hard errors are an empty or malformed series.
func Compute(series *models.PriceSeries, p Params) (*Set, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty price series", models.ErrMissingData)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	volumes := series.Volumes()
	set := &Set{Symbol: series.Symbol, SMA: map[int]Series{}, EMA: map[int]Series{}}

	for _, w := range p.MAWindows {
		if s, err := SMASeries(closes, w); err == nil {
			set.SMA[w] = s
		} else {
			set.skip(fmt.Sprintf("sma_%d", w))
		}
		if s, err := EMASeries(closes, w); err == nil {
			set.EMA[w] = s
		} else {
			set.skip(fmt.Sprintf("ema_%d", w))
		}
	}

	if s, err := RSISeries(closes, p.RSIPeriod); err == nil {
		set.RSI = &s
	} else {
		set.skip("rsi")
	}
	if b, err := Bollinger(closes, p.BollWindow, p.BollK); err == nil {
		set.Bol = &b
	} else {
		set.skip("bollinger")
	}
	if m, err := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal); err == nil {
		set.MACD = &m
	} else {
		set.skip("macd")
	}

	if t, err := AnalyzeTrend(closes, 20, 50); err == nil {
		set.Trend = t
	} else {
		set.skip("trend")
	}
	if m, err := PriceMomentum(closes, p.MomentumPeriod); err == nil {
		set.Momentum = &m
	} else {
		set.skip("momentum")
	}
	if lvl, ratio, err := VolumeAnalysis(volumes, p.VolumeWindow); err == nil {
		set.VolumeLevel = lvl
		set.VolumeRatio = &ratio
	} else {
		set.skip("volume")
	}
	if v, err := AnnualizedVolatility(closes, p.VolatilityWindow); err == nil {
		set.Volatility = &v
	} else {
		set.skip("volatility")
	}
	if pos, err := RangePosition(series.Bars, p.RangeLookback); err == nil {
		set.RangePos = &pos
	} else {
		set.skip("range_position")
	}
	if sup, res, err := SupportResistance(series.Bars, p.VolumeWindow); err == nil {
		set.Support = &sup
		set.Resistance = &res
	} else {
		set.skip("support_resistance")
	}

	set.Signals = buildSignals(closes, set)
	return set, nil
}

func (s *Set) skip(name string) { s.Skipped = append(s.Skipped, name) }

// buildSignals derives the human-readable observations the dashboard lists
// next to the chart.
func buildSignals(closes []float64, set *Set) []string {
	var out []string
	price := closes[len(closes)-1]

	if set.RSI != nil {
		switch rsi := set.RSI.Last(); {
		case rsi > 70:
			out = append(out, "RSI indicates overbought conditions")
		case rsi < 30:
			out = append(out, "RSI indicates oversold conditions")
		}
	}

	ma20, ok20 := set.SMA[20]
	ma50, ok50 := set.SMA[50]
	if ok20 && ok50 {
		if price > ma20.Last() && ma20.Last() > ma50.Last() {
			out = append(out, "Price above both short and long-term moving averages")
		} else if price < ma20.Last() && ma20.Last() < ma50.Last() {
			out = append(out, "Price below both short and long-term moving averages")
		}
	}

	if set.MACD != nil {
		if h := set.MACD.Histogram.Last(); h > 0 {
			out = append(out, "MACD histogram positive")
		} else if h < 0 {
			out = append(out, "MACD histogram negative")
		}
	}

	if set.Momentum != nil {
		if *set.Momentum > 5 {
			out = append(out, "Strong positive momentum")
		} else if *set.Momentum < -5 {
			out = append(out, "Strong negative momentum")
		}
	}

	if set.Bol != nil {
		if price > set.Bol.Upper.Last() {
			out = append(out, "Price above upper Bollinger band")
		} else if price < set.Bol.Lower.Last() {
			out = append(out, "Price below lower Bollinger band")
		}
	}

	return out
}
