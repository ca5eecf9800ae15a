package indicators

import (
	"fmt"
	"math"

	"EquityLens/internal/domain/models"
)

// Trend labels the current price structure relative to its moving averages.
type Trend string

const (
	TrendStrongUp   Trend = "strong_uptrend"
	TrendWeakUp     Trend = "weak_uptrend"
	TrendSideways   Trend = "sideways"
	TrendWeakDown   Trend = "weak_downtrend"
	TrendStrongDown Trend = "strong_downtrend"
)

// VolumeLevel classifies recent volume against its rolling average.
type VolumeLevel string

const (
	VolumeHigh    VolumeLevel = "high"
	VolumeAbove   VolumeLevel = "above_average"
	VolumeAverage VolumeLevel = "average"
	VolumeLow     VolumeLevel = "low"
)

// AnalyzeTrend compares the latest close against short and long moving
// averages and labels the alignment.
func AnalyzeTrend(closes []float64, short, long int) (Trend, error) {
	if err := requireHistory(len(closes), long, "trend"); err != nil {
		return "", err
	}
	shortMA, err := SMA(closes, short)
	if err != nil {
		return "", err
	}
	longMA, err := SMA(closes, long)
	if err != nil {
		return "", err
	}
	price := closes[len(closes)-1]

	switch {
	case price > shortMA && shortMA > longMA:
		return TrendStrongUp, nil
	case price > shortMA:
		return TrendWeakUp, nil
	case price < shortMA && shortMA < longMA:
		return TrendStrongDown, nil
	case price < shortMA:
		return TrendWeakDown, nil
	default:
		return TrendSideways, nil
	}
}

// PriceMomentum returns the percent change of the close over the lookback.
func PriceMomentum(closes []float64, period int) (float64, error) {
	if err := requireHistory(len(closes), period+1, "momentum"); err != nil {
		return 0, err
	}
	cur := closes[len(closes)-1]
	past := closes[len(closes)-1-period]
	if past == 0 {
		return 0, fmt.Errorf("%w: zero reference price", models.ErrInvalidInput)
	}
	return (cur - past) / past * 100.0, nil
}

// VolumeAnalysis compares the mean of the last five volumes to the rolling
// average over the window and classifies the ratio.
func VolumeAnalysis(volumes []float64, window int) (VolumeLevel, float64, error) {
	if err := requireHistory(len(volumes), window, "volume"); err != nil {
		return "", 0, err
	}
	avg, err := SMA(volumes, window)
	if err != nil {
		return "", 0, err
	}
	if avg == 0 {
		return VolumeLow, 0, nil
	}

	recentN := 5
	if recentN > len(volumes) {
		recentN = len(volumes)
	}
	recent := 0.0
	for _, v := range volumes[len(volumes)-recentN:] {
		recent += v
	}
	recent /= float64(recentN)

	ratio := recent / avg
	switch {
	case ratio > 1.5:
		return VolumeHigh, ratio, nil
	case ratio > 1.2:
		return VolumeAbove, ratio, nil
	case ratio < 0.8:
		return VolumeLow, ratio, nil
	default:
		return VolumeAverage, ratio, nil
	}
}

// AnnualizedVolatility computes the standard deviation of log returns over
// the window, annualized with 252 trading days.
func AnnualizedVolatility(closes []float64, window int) (float64, error) {
	if err := requireHistory(len(closes), window+1, "volatility"); err != nil {
		return 0, err
	}
	rets := make([]float64, 0, window)
	for i := len(closes) - window; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if prev <= 0 || cur <= 0 {
			rets = append(rets, 0)
			continue
		}
		rets = append(rets, math.Log(cur/prev))
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	variance := 0.0
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets) - 1)

	return math.Sqrt(variance * 252), nil
}

// RangePosition returns where the latest close sits inside the high/low
// envelope of the trailing lookback bars, from 0 (at the low) to 1 (at the
// high).
func RangePosition(bars []models.Bar, lookback int) (float64, error) {
	if err := requireHistory(len(bars), 2, "range position"); err != nil {
		return 0, err
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	hi := bars[start].High
	lo := bars[start].Low
	for _, b := range bars[start:] {
		if b.High > hi {
			hi = b.High
		}
		if b.Low < lo {
			lo = b.Low
		}
	}
	if hi == lo {
		return 0.5, nil
	}
	cur := bars[len(bars)-1].Close
	pos := (cur - lo) / (hi - lo)
	return math.Max(0, math.Min(1, pos)), nil
}

// SupportResistance estimates support and resistance from the rolling
// extremes of the trailing window.
func SupportResistance(bars []models.Bar, window int) (support, resistance float64, err error) {
	if err := requireHistory(len(bars), window, "support/resistance"); err != nil {
		return 0, 0, err
	}
	start := len(bars) - window
	support = bars[start].Low
	resistance = bars[start].High
	for _, b := range bars[start:] {
		if b.Low < support {
			support = b.Low
		}
		if b.High > resistance {
			resistance = b.High
		}
	}
	return support, resistance, nil
}
