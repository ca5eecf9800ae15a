//go:build wireinject
// +build wireinject

package di

import (
	"EquityLens/pkg/config"
	"EquityLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideLimiter,

		// External providers
		ProvideMarketData,
		ProvideRateCache,
		ProvideRateProvider,

		// Scoring policy
		ProvideEngine,
		ProvideIndicatorParams,

		// Use cases
		ProvideAnalyzer,
		ProvideRateLookup,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
