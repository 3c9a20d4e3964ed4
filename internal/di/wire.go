//go:build wireinject
// +build wireinject

package di

import (
	"PaisaPulse/pkg/config"
	"PaisaPulse/pkg/server"

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
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories (with business logic)
		ProvideLedger,
		ProvideAlertStore,
		ProvideNotifier,

		// Domain services
		ProvideFraudEngine,
		ProvideForecaster,

		// Use cases
		ProvideMessageIngestor,
		ProvideRiskAdvisor,
		ProvideAdviceAggregate,
		ProvideIncomeSeries,
		ProvideAlertLifecycle,
		ProvideKafkaMessagesHandler,
		ProvideMessageCollector,

		// HTTP surface
		ProvideEchoHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
