package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Range    string `query:"range" json:"range" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
	Mode     string `query:"mode" json:"mode" default:"five" validate:"oneof=five three"`
	Currency string `query:"currency" json:"currency" validate:"omitempty,oneof=USD CAD"`
}

type IndicatorsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Range  string `query:"range" json:"range" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}

type RateRequest struct {
	From string `query:"from" json:"from" default:"USD" validate:"oneof=USD CAD EUR GBP"`
	To   string `query:"to" json:"to" default:"CAD" validate:"oneof=USD CAD EUR GBP"`
}
