package models

// FundamentalSnapshot holds the raw fundamental fields for one symbol.
// Every field is a pointer: nil means the provider did not report it, and
// downstream scoring must exclude it rather than treat it as zero.
type FundamentalSnapshot struct {
	Symbol string `json:"symbol"`

	// Valuation
	TrailingPE   *float64 `json:"trailing_pe,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
	PriceToBook  *float64 `json:"price_to_book,omitempty"`
	PriceToSales *float64 `json:"price_to_sales,omitempty"`

	// Profitability
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`

	// Balance sheet
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`

	// Growth
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`

	// Dividends and market
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	PayoutRatio   *float64 `json:"payout_ratio,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
}

// IsEmpty reports whether no scoreable field is present.
func (f *FundamentalSnapshot) IsEmpty() bool {
	if f == nil {
		return true
	}
	for _, p := range []*float64{
		f.TrailingPE, f.ForwardPE, f.PriceToBook, f.PriceToSales,
		f.ProfitMargin, f.OperatingMargin, f.GrossMargin, f.ROE, f.ROA,
		f.DebtToEquity, f.CurrentRatio, f.QuickRatio,
		f.RevenueGrowth, f.EarningsGrowth,
	} {
		if p != nil {
			return false
		}
	}
	return true
}

// Float is a convenience constructor for optional fields in tests and adapters.
func Float(v float64) *float64 { return &v }
