package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// NormalizationService converts a scenario's collections into its display currency and aggregates them.
type NormalizationService struct {
	BaseService
	records    portsrepo.RecordReader
	scenarios  portsrepo.ScenarioReader
	registry   *conversion.Registry
	aggregator *Aggregator
	scheduler  *GoalScheduler
}

// NormalizationServiceOption is a functional option for configuring a NormalizationService
type NormalizationServiceOption func(*NormalizationService)

// WithAggregator replaces the default aggregator.
func WithAggregator(a *Aggregator) NormalizationServiceOption {
	return func(s *NormalizationService) {
		s.aggregator = a
	}
}

// WithGoalScheduler replaces the default goal scheduler.
func WithGoalScheduler(gs *GoalScheduler) NormalizationServiceOption {
	return func(s *NormalizationService) {
		s.scheduler = gs
	}
}

// NewNormalizationService creates a new NormalizationService.
func NewNormalizationService(records portsrepo.RecordReader, scenarios portsrepo.ScenarioReader, registry *conversion.Registry, options ...NormalizationServiceOption) *NormalizationService {
	s := &NormalizationService{
		records:   records,
		scenarios: scenarios,
		registry:  registry,
	}
	for _, option := range options {
		option(s)
	}
	if s.aggregator == nil {
		s.aggregator = NewAggregator()
	}
	if s.scheduler == nil {
		s.scheduler = NewGoalScheduler()
	}
	return s
}

var _ portssvc.NormalizationSvc = (*NormalizationService)(nil)

func (s *NormalizationService) loadScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, err := s.scenarios.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario '%s': %w", scenarioID, err)
	}
	if scenario == nil {
		return nil, apperrors.NewNotFoundError("scenario '" + scenarioID + "' not found")
	}
	return scenario, nil
}

// DisplayContext builds the display-currency context of a scenario.
func (s *NormalizationService) DisplayContext(ctx context.Context, scenarioID string, override string) (domain.DisplayCurrencyContext, error) {
	scenario, err := s.loadScenario(ctx, scenarioID)
	if err != nil {
		return domain.DisplayCurrencyContext{}, err
	}
	display := domain.NewDisplayCurrencyContext(*scenario)
	if override == "" {
		return display, nil
	}
	code, err := domain.NormalizeCurrencyCode(override)
	if err != nil {
		return domain.DisplayCurrencyContext{}, err
	}
	return display.WithOverride(code), nil
}

// refresh reloads the scenario and rebinds the context to it, dropping the override when the
// scenario's base currency changed since the context was built.
func (s *NormalizationService) refresh(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.Scenario, domain.DisplayCurrencyContext, error) {
	scenario, err := s.loadScenario(ctx, display.ScenarioID)
	if err != nil {
		return nil, display, err
	}
	fresh := display.ForScenario(*scenario)
	if fresh != display {
		s.LogInfo(ctx, "Display currency reset to scenario base",
			slog.String("scenario_id", scenario.ScenarioID),
			slog.String("base_currency", string(scenario.BaseCurrency)))
	}
	return scenario, fresh, nil
}

// ensure converts records of one collection into target and returns the collection's amount resolver.
func (s *NormalizationService) ensure(ctx context.Context, scenario domain.Scenario, d domain.CollectionDomain, records []domain.Convertible, target domain.CurrencyCode) (conversion.AmountResolver, error) {
	collection := s.registry.Collection(scenario, d)
	outcome, err := collection.Coordinator.EnsureConverted(ctx, records, target)
	if err != nil {
		return nil, err
	}
	if outcome.Failure != nil || len(outcome.Missing) > 0 {
		s.LogWarn(ctx, "Showing native amounts for unconverted records",
			slog.String("scenario_id", scenario.ScenarioID),
			slog.String("domain", string(d)),
			slog.String("target_currency", string(target)),
			slog.Int("missing", len(outcome.Missing)),
			slog.Bool("failed", outcome.Failure != nil))
	}
	stats := collection.Cache().Stats()
	s.LogDebug(ctx, "Collection converted",
		slog.String("scenario_id", scenario.ScenarioID),
		slog.String("domain", string(d)),
		slog.Int("dispatched", outcome.Dispatched),
		slog.Int("awaited", outcome.Awaited),
		slog.Int("cache_resolved", stats.Resolved),
		slog.Int("cache_pending", stats.Pending),
		slog.Uint64("cache_generation", stats.Generation))
	return collection.Cache().Resolver(target), nil
}

func (s *NormalizationService) listRecords(ctx context.Context, scenarioID string, d domain.CollectionDomain) ([]domain.FinancialRecord, error) {
	records, err := s.records.ListRecords(ctx, scenarioID, d)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records", slog.String("scenario_id", scenarioID), slog.String("domain", string(d)))
		return nil, fmt.Errorf("failed to list %s records: %w", d, err)
	}
	return records, nil
}

func (s *NormalizationService) collection(ctx context.Context, scenario domain.Scenario, d domain.CollectionDomain, target domain.CurrencyCode) (domain.CollectionSummary, error) {
	records, err := s.listRecords(ctx, scenario.ScenarioID, d)
	if err != nil {
		return domain.CollectionSummary{}, err
	}
	resolve, err := s.ensure(ctx, scenario, d, domain.Convertibles(records), target)
	if err != nil {
		return domain.CollectionSummary{}, err
	}
	return s.aggregator.Collection(d, records, target, resolve)
}

func (s *NormalizationService) savings(ctx context.Context, scenario domain.Scenario, target domain.CurrencyCode) (domain.SavingsSummary, error) {
	records, err := s.listRecords(ctx, scenario.ScenarioID, domain.DomainSaving)
	if err != nil {
		return domain.SavingsSummary{}, err
	}
	resolve, err := s.ensure(ctx, scenario, domain.DomainSaving, domain.Convertibles(records), target)
	if err != nil {
		return domain.SavingsSummary{}, err
	}
	return s.aggregator.Savings(records, target, resolve), nil
}

func (s *NormalizationService) goals(ctx context.Context, scenario domain.Scenario, target domain.CurrencyCode) (domain.GoalsSummary, error) {
	goals, err := s.records.ListGoals(ctx, scenario.ScenarioID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals", slog.String("scenario_id", scenario.ScenarioID))
		return domain.GoalsSummary{}, fmt.Errorf("failed to list goals: %w", err)
	}
	resolve, err := s.ensure(ctx, scenario, domain.DomainGoal, domain.GoalConvertibles(goals), target)
	if err != nil {
		return domain.GoalsSummary{}, err
	}
	return s.scheduler.Summarize(goals, target, resolve), nil
}

// CollectionSummary converts and aggregates an income or expense collection.
func (s *NormalizationService) CollectionSummary(ctx context.Context, display domain.DisplayCurrencyContext, d domain.CollectionDomain) (*domain.CollectionSummary, error) {
	if d != domain.DomainIncome && d != domain.DomainExpense {
		return nil, fmt.Errorf("%w: '%s' is not a frequency-normalized collection", apperrors.ErrValidation, d)
	}
	scenario, display, err := s.refresh(ctx, display)
	if err != nil {
		return nil, err
	}
	out, err := s.collection(ctx, *scenario, d, display.Effective())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SavingsSummary converts the saving collection and sums it as a stock.
func (s *NormalizationService) SavingsSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.SavingsSummary, error) {
	scenario, display, err := s.refresh(ctx, display)
	if err != nil {
		return nil, err
	}
	out, err := s.savings(ctx, *scenario, display.Effective())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GoalSchedules computes the derived schedule figures of every goal in the scenario.
func (s *NormalizationService) GoalSchedules(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.GoalsSummary, error) {
	scenario, display, err := s.refresh(ctx, display)
	if err != nil {
		return nil, err
	}
	out, err := s.goals(ctx, *scenario, display.Effective())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ScenarioSummary converts every collection concurrently, each through its own cache, and folds them.
func (s *NormalizationService) ScenarioSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.ScenarioSummary, error) {
	scenario, display, err := s.refresh(ctx, display)
	if err != nil {
		return nil, err
	}
	target := display.Effective()
	out := &domain.ScenarioSummary{ScenarioID: scenario.ScenarioID, Display: display}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Income, err = s.collection(gctx, *scenario, domain.DomainIncome, target)
		return err
	})
	g.Go(func() error {
		var err error
		out.Expenses, err = s.collection(gctx, *scenario, domain.DomainExpense, target)
		return err
	})
	g.Go(func() error {
		var err error
		out.Savings, err = s.savings(gctx, *scenario, target)
		return err
	})
	g.Go(func() error {
		var err error
		out.Goals, err = s.goals(gctx, *scenario, target)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Remainder = Remainder(out.Income, out.Expenses, out.Goals)
	return out, nil
}
