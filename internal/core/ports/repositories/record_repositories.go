package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
)

// RecordReader supplies the raw records of a scenario's collections.
// Create/update/delete happen elsewhere; the engine only consumes the resulting lists.
type RecordReader interface {
	// ListRecords returns the income, expense or saving records of a scenario.
	ListRecords(ctx context.Context, scenarioID string, collection domain.CollectionDomain) ([]domain.FinancialRecord, error)

	// ListGoals returns the goals of a scenario.
	ListGoals(ctx context.Context, scenarioID string) ([]domain.Goal, error)
}

// ScenarioReader defines read operations for scenarios
type ScenarioReader interface {
	FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error)
}

// ScenarioWriter defines write operations for scenarios
type ScenarioWriter interface {
	UpdateScenarioBaseCurrency(ctx context.Context, scenarioID string, code domain.CurrencyCode, userID string, at time.Time) error
}

// ScenarioRepositoryFacade combines all scenario-related repository interfaces
type ScenarioRepositoryFacade interface {
	ScenarioReader
	ScenarioWriter
}
