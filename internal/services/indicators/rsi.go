package indicators

// RSISeries computes the Wilder-smoothed Relative Strength Index.
// The seed average gain/loss covers the first `period` price changes; with
// exactly `period` closes the seed uses the period-1 changes available, so a
// series of all gains still yields RSI 100 rather than no value.
// Values are defined from index min(period, len-1) onward and always lie in
// [0, 100].
func RSISeries(closes []float64, period int) (Series, error) {
	if err := requireHistory(len(closes), period, "rsi"); err != nil {
		return Series{}, err
	}

	out := make([]float64, len(closes))
	seedEnd := period
	if seedEnd > len(closes)-1 {
		seedEnd = len(closes) - 1
	}

	var avgGain, avgLoss float64
	for i := 1; i <= seedEnd; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(seedEnd)
	avgLoss /= float64(seedEnd)
	out[seedEnd] = rsiValue(avgGain, avgLoss)

	for i := seedEnd + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return Series{Values: out, First: seedEnd}, nil
}

// RSI returns the latest Wilder-smoothed RSI value.
func RSI(closes []float64, period int) (float64, error) {
	s, err := RSISeries(closes, period)
	if err != nil {
		return 0, err
	}
	return s.Last(), nil
}

// rsiValue maps average gain/loss to the bounded oscillator. A zero average
// loss means pure gains, which pins RSI at 100 instead of dividing by zero.
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
