package services

import (
	"log/slog"

	"github.com/SscSPs/budget_engine/internal/core/conversion"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/SscSPs/budget_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Scenario and normalization services share one conversion registry so that a base currency
// change invalidates the caches the summaries read from.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, client portssvc.ConversionClient, telemetry portssvc.TelemetrySink, logger *slog.Logger) *portssvc.ServiceContainer {
	registry := conversion.NewRegistryWithTTL(client, logger, cfg.CollectionIdleTTL, conversion.WithTelemetry(telemetry))

	container := &portssvc.ServiceContainer{}
	container.Scenario = NewScenarioService(repos.ScenarioRepo, registry)
	container.Normalization = NewNormalizationService(
		repos.RecordRepo,
		repos.ScenarioRepo,
		registry,
		WithAggregator(NewAggregator(WithMemoTTL(cfg.TotalsMemoTTL))),
	)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	return container
}
