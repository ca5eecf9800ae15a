package indicators

import "math"

// Bands holds the Bollinger Band envelope around a rolling SMA.
type Bands struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
	Width  Series `json:"width"`
}

// Bollinger computes a moving-average envelope at ±k population standard
// deviations over a rolling window. Width is (upper-lower)/middle, a relative
// volatility gauge.
func Bollinger(closes []float64, window int, k float64) (Bands, error) {
	if err := requireHistory(len(closes), window, "bollinger"); err != nil {
		return Bands{}, err
	}

	n := len(closes)
	upper := make([]float64, n)
	middle := make([]float64, n)
	lower := make([]float64, n)
	width := make([]float64, n)

	for i := window - 1; i < n; i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		mean := sum / float64(window)

		sq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - mean
			sq += d * d
		}
		sd := math.Sqrt(sq / float64(window))

		middle[i] = mean
		upper[i] = mean + k*sd
		lower[i] = mean - k*sd
		if mean != 0 {
			width[i] = (upper[i] - lower[i]) / mean
		}
	}

	first := window - 1
	return Bands{
		Upper:  Series{Values: upper, First: first},
		Middle: Series{Values: middle, First: first},
		Lower:  Series{Values: lower, First: first},
		Width:  Series{Values: width, First: first},
	}, nil
}
