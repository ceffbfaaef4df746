//go:build wireinject
// +build wireinject

package di

import (
	"InflationPanel/pkg/config"
	"InflationPanel/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideViewCache,

		// Repositories
		ProvideDatasetSource,

		// Use cases
		ProvideDashboard,

		// Transport
		ProvideLimiter,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
