package indicators

// MACDResult holds the MACD line, its signal line, and their difference.
// Histogram values equal Line minus Signal exactly wherever both are defined.
type MACDResult struct {
	Line      Series `json:"line"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// MACD computes the Moving Average Convergence Divergence: the difference of
// a fast and slow EMA, with an EMA signal line over the MACD values.
// Requires slow+signalWindow-1 closes so the signal line has a full seed.
func MACD(closes []float64, fast, slow, signalWindow int) (MACDResult, error) {
	need := slow + signalWindow - 1
	if err := requireHistory(len(closes), need, "macd"); err != nil {
		return MACDResult{}, err
	}

	fastEMA, err := EMASeries(closes, fast)
	if err != nil {
		return MACDResult{}, err
	}
	slowEMA, err := EMASeries(closes, slow)
	if err != nil {
		return MACDResult{}, err
	}

	n := len(closes)
	lineFirst := slow - 1
	line := make([]float64, n)
	for i := lineFirst; i < n; i++ {
		line[i] = fastEMA.Values[i] - slowEMA.Values[i]
	}

	// Signal line: EMA over the defined MACD values, seeded with their SMA.
	sigFirst := lineFirst + signalWindow - 1
	signal := make([]float64, n)
	seed := 0.0
	for i := lineFirst; i <= sigFirst; i++ {
		seed += line[i]
	}
	signal[sigFirst] = seed / float64(signalWindow)
	k := 2.0 / float64(signalWindow+1)
	for i := sigFirst + 1; i < n; i++ {
		signal[i] = (line[i]-signal[i-1])*k + signal[i-1]
	}

	hist := make([]float64, n)
	for i := sigFirst; i < n; i++ {
		hist[i] = line[i] - signal[i]
	}

	return MACDResult{
		Line:      Series{Values: line, First: lineFirst},
		Signal:    Series{Values: signal, First: sigFirst},
		Histogram: Series{Values: hist, First: sigFirst},
	}, nil
}
