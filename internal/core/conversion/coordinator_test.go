package conversion_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CoordinatorTestSuite struct {
	suite.Suite
	client      *rateClient
	sink        *recordingSink
	cache       *conversion.Cache
	coordinator *conversion.Coordinator
}

func (suite *CoordinatorTestSuite) SetupTest() {
	suite.client = newRateClient(map[domain.CurrencyCode]string{"EUR": "1.1", "GBP": "1.25"})
	suite.sink = &recordingSink{}
	suite.cache = conversion.NewCache("sc-1", "USD")
	suite.coordinator = conversion.NewCoordinator(suite.cache, suite.client,
		conversion.WithTelemetry(suite.sink),
		conversion.WithLabel("sc-1/income"))
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_ResolvesInOneBatch() {
	ctx := context.Background()
	records := []domain.Convertible{
		record("salary", "1200", "EUR", domain.Annual),
		record("rent", "800", "GBP", domain.Monthly),
		record("bonus", "500", "USD", domain.OneTime),
	}

	out, err := suite.coordinator.EnsureConverted(ctx, records, "USD")

	suite.Require().NoError(err)
	suite.Equal(1, suite.client.batchCount())
	suite.Len(suite.client.batch(0), 2, "same-currency record is never dispatched")
	suite.Equal(3, out.Requested)
	suite.Equal(2, out.Dispatched)
	suite.Equal(2, out.Resolved)
	suite.Empty(out.Missing)
	suite.Nil(out.Failure)

	l := suite.cache.Get(records[0], "USD")
	suite.Equal(conversion.Resolved, l.State)
	suite.True(l.Amount.Equal(decimal.NewFromInt(1320)), l.Amount.String())
	suite.False(suite.cache.Contains("bonus", "USD"))
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_Idempotent() {
	ctx := context.Background()
	records := []domain.Convertible{record("salary", "1200", "EUR", domain.Annual)}

	_, err := suite.coordinator.EnsureConverted(ctx, records, "USD")
	suite.Require().NoError(err)
	out, err := suite.coordinator.EnsureConverted(ctx, records, "USD")
	suite.Require().NoError(err)

	suite.Equal(1, suite.client.batchCount())
	suite.Zero(out.Dispatched)
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_AllSameCurrency() {
	records := []domain.Convertible{record("a", "10", "USD", domain.Monthly)}

	out, err := suite.coordinator.EnsureConverted(context.Background(), records, "USD")

	suite.Require().NoError(err)
	suite.Zero(suite.client.batchCount())
	suite.Zero(out.Dispatched)
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_UnansweredRecordsStayPending() {
	ctx := context.Background()
	suite.client.skip = map[int]bool{1: true}
	records := []domain.Convertible{
		record("a", "100", "EUR", domain.Monthly),
		record("b", "100", "GBP", domain.Monthly),
	}

	out, err := suite.coordinator.EnsureConverted(ctx, records, "USD")

	suite.Require().NoError(err)
	suite.Equal(1, out.Resolved)
	suite.Equal([]string{"b"}, out.Missing)
	suite.Equal(conversion.Resolved, suite.cache.Get(records[0], "USD").State)
	suite.Equal(conversion.Pending, suite.cache.Get(records[1], "USD").State)
	suite.Equal(1, suite.cache.Stats().Unanswered)

	amount, ok := suite.cache.Amount(records[1], "USD")
	suite.False(ok)
	suite.True(amount.Equal(decimal.NewFromInt(100)), "unanswered record falls back to native")

	suite.client.skip = nil
	out, err = suite.coordinator.EnsureConverted(ctx, records, "USD")
	suite.Require().NoError(err)
	suite.Zero(out.Dispatched, "nothing changed, nothing dispatched")
	suite.Zero(out.Awaited)
	suite.Equal(1, suite.client.batchCount())

	// an edit of the record brings it back
	records[1] = record("b", "200", "GBP", domain.Monthly)
	out, err = suite.coordinator.EnsureConverted(ctx, records, "USD")
	suite.Require().NoError(err)
	suite.Equal(1, out.Dispatched)
	suite.Equal("GBP", string(suite.client.batch(1)[0].Currency))
	suite.Equal(conversion.Resolved, suite.cache.Get(records[1], "USD").State)
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_EditedRecordIsConvertedAgain() {
	ctx := context.Background()
	before := record("salary", "1200", "EUR", domain.Annual)

	_, err := suite.coordinator.EnsureConverted(ctx, []domain.Convertible{before}, "USD")
	suite.Require().NoError(err)

	after := record("salary", "2400", "GBP", domain.Annual)
	suite.Equal(conversion.Missing, suite.cache.Get(after, "USD").State)
	amount, ok := suite.cache.Amount(after, "USD")
	suite.False(ok)
	suite.True(amount.Equal(decimal.NewFromInt(2400)), "edited record shows its own native amount")

	out, err := suite.coordinator.EnsureConverted(ctx, []domain.Convertible{after}, "USD")
	suite.Require().NoError(err)
	suite.Equal(1, out.Dispatched)
	suite.Equal(2, suite.client.batchCount())

	amount, ok = suite.cache.Amount(after, "USD")
	suite.True(ok)
	suite.True(amount.Equal(decimal.NewFromInt(3000)), amount.String())
	suite.Equal(conversion.Missing, suite.cache.Get(before, "USD").State)
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_EditDuringFlightKeepsNewValue() {
	suite.client.gate = make(chan struct{})
	suite.client.entered = make(chan struct{}, 2)
	before := record("a", "100", "EUR", domain.Monthly)
	after := record("a", "200", "EUR", domain.Monthly)

	done := make(chan struct{}, 2)
	go func() {
		_, _ = suite.coordinator.EnsureConverted(context.Background(), []domain.Convertible{before}, "USD")
		done <- struct{}{}
	}()
	<-suite.client.entered
	go func() {
		_, _ = suite.coordinator.EnsureConverted(context.Background(), []domain.Convertible{after}, "USD")
		done <- struct{}{}
	}()
	<-suite.client.entered
	close(suite.client.gate)
	<-done
	<-done

	suite.Equal(2, suite.client.batchCount())
	l := suite.cache.Get(after, "USD")
	suite.Equal(conversion.Resolved, l.State)
	suite.True(l.Amount.Equal(decimal.NewFromInt(220)), l.Amount.String())
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_FailureFallsBackAndReports() {
	ctx := context.Background()
	suite.client.err = errors.New("service unavailable")
	records := []domain.Convertible{record("a", "100", "EUR", domain.Monthly)}

	out, err := suite.coordinator.EnsureConverted(ctx, records, "USD")

	suite.Require().NoError(err, "conversion failures are not surfaced to callers")
	suite.Require().NotNil(out.Failure)
	suite.ErrorIs(out.Failure, apperrors.ErrConversion)
	suite.ErrorIs(out.Failure, suite.client.err)
	suite.Equal(conversion.Missing, suite.cache.Get(records[0], "USD").State)

	suite.Require().Equal(1, suite.sink.count())
	report := suite.sink.reports[0]
	suite.Equal("convert_batch", report.Action)
	suite.Equal("service unavailable", report.Error)
	suite.Equal("USD", report.Context["target_currency"])
	suite.Equal(1, report.Context["item_count"])
	suite.Equal("sc-1/income", report.Context["collection"])
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_PanickingSinkIsContained() {
	suite.client.err = errors.New("boom")
	suite.sink.panics = true
	records := []domain.Convertible{record("a", "100", "EUR", domain.Monthly)}

	suite.NotPanics(func() {
		_, err := suite.coordinator.EnsureConverted(context.Background(), records, "USD")
		suite.NoError(err)
	})
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_CancelledIsNotReported() {
	suite.client.gate = make(chan struct{})
	suite.client.entered = make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	records := []domain.Convertible{record("a", "100", "EUR", domain.Monthly)}

	done := make(chan error, 1)
	go func() {
		_, err := suite.coordinator.EnsureConverted(ctx, records, "USD")
		done <- err
	}()
	<-suite.client.entered
	cancel()

	err := <-done
	suite.ErrorIs(err, context.Canceled)
	suite.Zero(suite.sink.count())
	suite.Equal(conversion.Missing, suite.cache.Get(records[0], "USD").State)
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_StaleResultsDiscarded() {
	suite.client.gate = make(chan struct{})
	suite.client.entered = make(chan struct{}, 1)
	records := []domain.Convertible{record("a", "100", "EUR", domain.Monthly)}

	done := make(chan conversion.BatchOutcome, 1)
	go func() {
		out, _ := suite.coordinator.EnsureConverted(context.Background(), records, "USD")
		done <- out
	}()
	<-suite.client.entered
	suite.cache.InvalidateAll()
	close(suite.client.gate)

	out := <-done
	suite.True(out.Stale)
	suite.False(suite.cache.Contains("a", "USD"))
}

func (suite *CoordinatorTestSuite) TestEnsureConverted_ConcurrentCallersShareBatch() {
	suite.client.gate = make(chan struct{})
	suite.client.entered = make(chan struct{}, 1)
	records := []domain.Convertible{
		record("a", "100", "EUR", domain.Monthly),
		record("b", "200", "GBP", domain.Monthly),
	}

	first := make(chan conversion.BatchOutcome, 1)
	go func() {
		out, _ := suite.coordinator.EnsureConverted(context.Background(), records, "USD")
		first <- out
	}()
	<-suite.client.entered

	var wg sync.WaitGroup
	outcomes := make([]conversion.BatchOutcome, 5)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], _ = suite.coordinator.EnsureConverted(context.Background(), records, "USD")
		}(i)
	}

	// followers must not return before the leader's batch settles
	time.Sleep(20 * time.Millisecond)
	close(suite.client.gate)
	wg.Wait()
	<-first

	suite.Equal(1, suite.client.batchCount())
	for _, out := range outcomes {
		suite.Zero(out.Dispatched)
		suite.LessOrEqual(out.Awaited, 1)
	}
	suite.Equal(conversion.Resolved, suite.cache.Get(records[0], "USD").State)
	suite.Equal(conversion.Resolved, suite.cache.Get(records[1], "USD").State)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func TestRegistry_ResetsOnBaseCurrencyChange(t *testing.T) {
	client := newRateClient(map[domain.CurrencyCode]string{"EUR": "1.1"})
	registry := conversion.NewRegistry(client, nil)
	scenario := domain.Scenario{ScenarioID: "sc-1", BaseCurrency: "USD"}
	rec := record("a", "100", "EUR", domain.Monthly)

	income := registry.Collection(scenario, domain.DomainIncome)
	_, err := income.Coordinator.EnsureConverted(context.Background(), []domain.Convertible{rec}, "USD")
	require.NoError(t, err)
	assert.True(t, income.Cache().Contains("a", "USD"))

	expenses := registry.Collection(scenario, domain.DomainExpense)
	assert.NotSame(t, income, expenses)
	assert.False(t, expenses.Cache().Contains("a", "USD"), "collections do not share caches")

	assert.Same(t, income, registry.Collection(scenario, domain.DomainIncome))
	assert.True(t, income.Cache().Contains("a", "USD"))

	scenario.BaseCurrency = "GBP"
	registry.Collection(scenario, domain.DomainIncome)
	assert.False(t, income.Cache().Contains("a", "USD"))
}

func TestRegistry_InvalidateScenario(t *testing.T) {
	client := newRateClient(map[domain.CurrencyCode]string{"EUR": "1.1"})
	registry := conversion.NewRegistry(client, nil)
	rec := record("a", "100", "EUR", domain.Monthly)

	for _, id := range []string{"sc-1", "sc-2"} {
		c := registry.Collection(domain.Scenario{ScenarioID: id, BaseCurrency: "USD"}, domain.DomainIncome)
		_, err := c.Coordinator.EnsureConverted(context.Background(), []domain.Convertible{rec}, "USD")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, registry.InvalidateScenario("sc-1"))
	assert.Zero(t, registry.Stats("sc-1")[domain.DomainIncome].Resolved)
	assert.Equal(t, 1, registry.Stats("sc-2")[domain.DomainIncome].Resolved)
}

func TestRegistry_OutdatedScenarioDoesNotResetCache(t *testing.T) {
	client := newRateClient(map[domain.CurrencyCode]string{"EUR": "1.1"})
	registry := conversion.NewRegistry(client, nil)
	rec := record("a", "100", "EUR", domain.Monthly)
	v1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v2 := v1.Add(time.Minute)

	stale := domain.Scenario{ScenarioID: "sc-1", BaseCurrency: "USD", AuditFields: domain.AuditFields{LastUpdatedAt: v1}}
	income := registry.Collection(stale, domain.DomainIncome)

	current := domain.Scenario{ScenarioID: "sc-1", BaseCurrency: "GBP", AuditFields: domain.AuditFields{LastUpdatedAt: v2}}
	assert.Equal(t, 1, registry.Rebind(current))
	_, err := income.Coordinator.EnsureConverted(context.Background(), []domain.Convertible{rec}, "GBP")
	require.NoError(t, err)
	require.True(t, income.Cache().Contains("a", "GBP"))

	// a request that loaded the scenario before the update still carries USD
	assert.Same(t, income, registry.Collection(stale, domain.DomainIncome))
	assert.True(t, income.Cache().Contains("a", "GBP"))
	assert.Equal(t, 1, client.batchCount())

	assert.Zero(t, registry.Rebind(current), "same base currency")
	assert.True(t, income.Cache().Contains("a", "GBP"))
}

func TestRegistry_ExpiresIdleCollections(t *testing.T) {
	client := newRateClient(map[domain.CurrencyCode]string{"EUR": "1.1"})
	registry := conversion.NewRegistryWithTTL(client, nil, 50*time.Millisecond)
	scenario := domain.Scenario{ScenarioID: "sc-1", BaseCurrency: "USD"}

	first := registry.Collection(scenario, domain.DomainIncome)
	registry.Collection(domain.Scenario{ScenarioID: "sc-2", BaseCurrency: "USD"}, domain.DomainIncome)
	assert.Equal(t, 2, registry.Len())

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, registry.Len())
	assert.Empty(t, registry.Stats("sc-1"))

	second := registry.Collection(scenario, domain.DomainIncome)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ZeroTTLNeverExpires(t *testing.T) {
	client := newRateClient(nil)
	registry := conversion.NewRegistryWithTTL(client, nil, 0)
	scenario := domain.Scenario{ScenarioID: "sc-1", BaseCurrency: "USD"}

	first := registry.Collection(scenario, domain.DomainIncome)
	time.Sleep(10 * time.Millisecond)
	assert.Same(t, first, registry.Collection(scenario, domain.DomainIncome))
}
