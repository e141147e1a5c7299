package services

import (
	"context"

	"github.com/SscSPs/budget_engine/internal/core/domain"
)

// NormalizationSvc exposes display-currency totals of a scenario's collections.
type NormalizationSvc interface {
	// DisplayContext builds the display-currency context of a scenario, applying override when non-empty.
	DisplayContext(ctx context.Context, scenarioID string, override string) (domain.DisplayCurrencyContext, error)

	// CollectionSummary converts and aggregates an income or expense collection.
	CollectionSummary(ctx context.Context, display domain.DisplayCurrencyContext, collection domain.CollectionDomain) (*domain.CollectionSummary, error)

	// SavingsSummary converts the saving collection and sums it as a stock.
	SavingsSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.SavingsSummary, error)

	// GoalSchedules computes the derived schedule figures of every goal in the scenario.
	GoalSchedules(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.GoalsSummary, error)

	// ScenarioSummary converts every collection concurrently and folds them into one summary.
	ScenarioSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.ScenarioSummary, error)
}

// ScenarioReaderSvc defines read operations for scenarios.
type ScenarioReaderSvc interface {
	GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)
}

// ScenarioWriterSvc defines write operations for scenarios.
type ScenarioWriterSvc interface {
	// UpdateBaseCurrency changes the scenario's base currency and invalidates its conversion caches.
	UpdateBaseCurrency(ctx context.Context, scenarioID string, currencyCode string, userID string) (*domain.Scenario, error)
}

// ScenarioSvcFacade combines all scenario-related service interfaces
type ScenarioSvcFacade interface {
	ScenarioReaderSvc
	ScenarioWriterSvc
}
