package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
)

// ScenarioService reads scenarios and changes their base currency.
type ScenarioService struct {
	BaseService
	repo     portsrepo.ScenarioRepositoryFacade
	registry *conversion.Registry
}

// NewScenarioService creates a new ScenarioService. registry holds the conversion caches
// that must be dropped when a scenario's base currency changes.
func NewScenarioService(repo portsrepo.ScenarioRepositoryFacade, registry *conversion.Registry) *ScenarioService {
	return &ScenarioService{repo: repo, registry: registry}
}

var _ portssvc.ScenarioSvcFacade = (*ScenarioService)(nil)

// GetScenario retrieves a scenario by ID.
func (s *ScenarioService) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, err := s.repo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find scenario", slog.String("scenario_id", scenarioID))
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	if scenario == nil {
		return nil, apperrors.NewNotFoundError("scenario '" + scenarioID + "' not found")
	}
	return scenario, nil
}

// UpdateBaseCurrency changes the scenario's base currency and invalidates every conversion cache of it.
func (s *ScenarioService) UpdateBaseCurrency(ctx context.Context, scenarioID string, currencyCode string, userID string) (*domain.Scenario, error) {
	code, err := domain.NormalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	scenario, err := s.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario.BaseCurrency == code {
		return scenario, nil
	}

	// stored with microsecond precision; the caches compare versions against it
	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := s.repo.UpdateScenarioBaseCurrency(ctx, scenarioID, code, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update base currency",
			slog.String("scenario_id", scenarioID),
			slog.String("base_currency", string(code)))
		return nil, fmt.Errorf("failed to update base currency: %w", err)
	}

	previous := scenario.BaseCurrency
	scenario.BaseCurrency = code
	scenario.LastUpdatedAt = now
	scenario.LastUpdatedBy = userID

	invalidated := s.registry.Rebind(*scenario)
	s.LogInfo(ctx, "Scenario base currency changed",
		slog.String("scenario_id", scenarioID),
		slog.String("from", string(previous)),
		slog.String("to", string(code)),
		slog.Int("caches_invalidated", invalidated))
	return scenario, nil
}
