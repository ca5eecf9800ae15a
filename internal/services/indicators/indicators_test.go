package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"EquityLens/internal/domain/models"
)

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestSMASeries(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	s, err := SMASeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.First != 2 {
		t.Fatalf("expected first defined index 2, got %d", s.First)
	}
	if s.Values[2] != 2 || s.Values[4] != 4 {
		t.Fatalf("unexpected sma values: %v", s.Values)
	}
	if s.Last() != 4 {
		t.Fatalf("expected last sma 4, got %f", s.Last())
	}
}

func TestSMAInsufficientHistory(t *testing.T) {
	_, err := SMASeries([]float64{1, 2}, 3)
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestEMAConvergesToConstant(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 42
	}
	v, err := EMA(closes, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(v-42) > 1e-9 {
		t.Fatalf("expected ema 42 on constant series, got %f", v)
	}
}

func TestRSIBounds(t *testing.T) {
	// Alternating gains and losses of varying size.
	closes := make([]float64, 60)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] + float64(i%7)
		} else {
			closes[i] = closes[i-1] - float64(i%5)
		}
	}
	s, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := s.First; i < len(s.Values); i++ {
		if s.Values[i] < 0 || s.Values[i] > 100 {
			t.Fatalf("rsi out of bounds at %d: %f", i, s.Values[i])
		}
	}
}

func TestRSIAllGainsIs100(t *testing.T) {
	// Exactly 14 closes, every change positive: RSI must be 100, not an
	// error and not a division by zero.
	closes := linearCloses(14, 100, 1)
	v, err := RSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 100 {
		t.Fatalf("expected RSI 100 for all gains, got %f", v)
	}
}

func TestRSITooShort(t *testing.T) {
	_, err := RSI(linearCloses(10, 100, 1), 14)
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestBollingerEnvelope(t *testing.T) {
	closes := linearCloses(40, 50, 0.5)
	b, err := Bollinger(closes, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := b.Middle.First; i < len(closes); i++ {
		if b.Upper.Values[i] < b.Middle.Values[i] || b.Middle.Values[i] < b.Lower.Values[i] {
			t.Fatalf("band ordering violated at %d", i)
		}
	}
	// For constant series the bands collapse onto the mean.
	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 10
	}
	fb, err := Bollinger(flat, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Upper.Last() != 10 || fb.Lower.Last() != 10 {
		t.Fatalf("expected collapsed bands, got upper=%f lower=%f", fb.Upper.Last(), fb.Lower.Last())
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	closes := make([]float64, 80)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] + math.Sin(float64(i)/3)*2
	}
	m, err := MACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := m.Histogram.First; i < len(closes); i++ {
		want := m.Line.Values[i] - m.Signal.Values[i]
		if math.Abs(m.Histogram.Values[i]-want) > 1e-12 {
			t.Fatalf("histogram != line-signal at %d: %f vs %f", i, m.Histogram.Values[i], want)
		}
	}
}

func TestMACDTooShort(t *testing.T) {
	_, err := MACD(linearCloses(30, 100, 1), 12, 26, 9)
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestAnalyzeTrend(t *testing.T) {
	up := linearCloses(60, 100, 1)
	tr, err := AnalyzeTrend(up, 20, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != TrendStrongUp {
		t.Fatalf("expected strong uptrend, got %s", tr)
	}

	down := linearCloses(60, 200, -1)
	tr, err = AnalyzeTrend(down, 20, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != TrendStrongDown {
		t.Fatalf("expected strong downtrend, got %s", tr)
	}
}

func testSeries(n int) *models.PriceSeries {
	bars := make([]models.Bar, n)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := range bars {
		price += math.Sin(float64(i)/5) * 1.5
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price - 0.5,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1_000_000 + float64(i%7)*50_000,
		}
	}
	return &models.PriceSeries{Symbol: "TEST", Currency: "USD", Bars: bars}
}

func TestComputeDegradesOnShortSeries(t *testing.T) {
	set, err := Compute(testSeries(30), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set.SMA[200]; ok {
		t.Fatal("sma_200 should be unavailable for 30 bars")
	}
	if set.RSI == nil {
		t.Fatal("rsi should be available for 30 bars")
	}
	found := false
	for _, s := range set.Skipped {
		if s == "sma_200" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sma_200 in skipped list, got %v", set.Skipped)
	}
}

func TestComputeDeterministic(t *testing.T) {
	series := testSeries(300)
	a, err := Compute(series, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Compute(series, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.RSI.Last() != b.RSI.Last() || a.SMA[200].Last() != b.SMA[200].Last() {
		t.Fatal("identical inputs must produce identical outputs")
	}
}

func TestComputeRejectsUnorderedSeries(t *testing.T) {
	series := testSeries(30)
	series.Bars[5].Timestamp = series.Bars[4].Timestamp
	_, err := Compute(series, DefaultParams())
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestComputeEmptySeries(t *testing.T) {
	_, err := Compute(&models.PriceSeries{Symbol: "TEST"}, DefaultParams())
	if !errors.Is(err, models.ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got %v", err)
	}
}
