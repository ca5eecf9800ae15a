package indicators

// SMASeries computes the simple moving average over a rolling window.
// Values are defined from index window-1 onward.
func SMASeries(closes []float64, window int) (Series, error) {
	if err := requireHistory(len(closes), window, "sma"); err != nil {
		return Series{}, err
	}
	out := make([]float64, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return Series{Values: out, First: window - 1}, nil
}

// SMA returns the latest simple moving average value.
func SMA(closes []float64, window int) (float64, error) {
	s, err := SMASeries(closes, window)
	if err != nil {
		return 0, err
	}
	return s.Last(), nil
}

// EMASeries computes the exponential moving average with multiplier
// 2/(window+1), seeded with the SMA of the first window closes.
func EMASeries(closes []float64, window int) (Series, error) {
	if err := requireHistory(len(closes), window, "ema"); err != nil {
		return Series{}, err
	}
	out := make([]float64, len(closes))
	seed := 0.0
	for i := 0; i < window; i++ {
		seed += closes[i]
	}
	out[window-1] = seed / float64(window)

	k := 2.0 / float64(window+1)
	for i := window; i < len(closes); i++ {
		out[i] = (closes[i]-out[i-1])*k + out[i-1]
	}
	return Series{Values: out, First: window - 1}, nil
}

// EMA returns the latest exponential moving average value.
func EMA(closes []float64, window int) (float64, error) {
	s, err := EMASeries(closes, window)
	if err != nil {
		return 0, err
	}
	return s.Last(), nil
}
