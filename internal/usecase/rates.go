package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"EquityLens/internal/domain/models"
	domsvc "EquityLens/internal/domain/service"
)

// RateLookup exposes the currency rate for the display endpoint.
type RateLookup struct {
	rates   domsvc.RateProvider
	timeout time.Duration
}

func NewRateLookup(rates domsvc.RateProvider) *RateLookup {
	return &RateLookup{rates: rates, timeout: 5 * time.Second}
}

func (r *RateLookup) Lookup(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return models.ExchangeRate{}, fmt.Errorf("%w: from and to required", models.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.rates.Rate(ctx, from, to)
}
