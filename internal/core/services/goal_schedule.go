package services

import (
	"math"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaysPerMonth is the average month length used to turn a date distance into months.
const DaysPerMonth = 30.44

// GoalScheduler derives months-left and monthly contributions of goals.
type GoalScheduler struct {
	now func() time.Time
}

// GoalSchedulerOption is a functional option for configuring a GoalScheduler
type GoalSchedulerOption func(*GoalScheduler)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) GoalSchedulerOption {
	return func(s *GoalScheduler) {
		s.now = now
	}
}

// NewGoalScheduler creates a scheduler reading the current date from the wall clock.
func NewGoalScheduler(options ...GoalSchedulerOption) *GoalScheduler {
	s := &GoalScheduler{now: time.Now}
	for _, option := range options {
		option(s)
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthsLeft returns max(1, ceil(days until target / 30.44)). due is true once target is today or earlier.
func (s *GoalScheduler) MonthsLeft(target time.Time) (months int, due bool) {
	today := dateOnly(s.now())
	end := dateOnly(target)
	if !end.After(today) {
		return 0, true
	}
	days := end.Sub(today).Hours() / 24
	months = int(math.Ceil(days / DaysPerMonth))
	if months < 1 {
		months = 1
	}
	return months, false
}

// MonthlyPayment returns (target - saved) / months, never negative.
func MonthlyPayment(target, saved decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	remaining := target.Sub(saved)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	return remaining.Div(decimal.NewFromInt(int64(months)))
}

// Schedule computes the derived figures of g. The display-currency payment is evaluated on the
// resolved display amounts of the goal's target and saved amounts.
func (s *GoalScheduler) Schedule(g domain.Goal, display domain.CurrencyCode, resolve conversion.AmountResolver) domain.GoalSchedule {
	sc := domain.GoalSchedule{
		Goal:                    g,
		DisplayCurrency:         display,
		MonthlyPayment:          decimal.Zero,
		MonthlyPaymentConverted: decimal.Zero,
	}

	targetDisplay, targetOK := resolve(g.Target())
	savedDisplay, savedOK := resolve(g.Saved())
	sc.Converted = targetOK && savedOK

	months, due := s.MonthsLeft(g.TargetDate)
	if due {
		sc.Due = true
		return sc
	}
	sc.MonthsLeft = months
	sc.MonthlyPayment = MonthlyPayment(g.TargetAmount, g.SavedAmount, months)
	sc.MonthlyPaymentConverted = MonthlyPayment(targetDisplay, savedDisplay, months)
	return sc
}

// Summarize schedules every goal and sums the display-currency payments of goals that are not due.
func (s *GoalScheduler) Summarize(goals []domain.Goal, display domain.CurrencyCode, resolve conversion.AmountResolver) domain.GoalsSummary {
	out := domain.GoalsSummary{
		DisplayCurrency:     display,
		Schedules:           make([]domain.GoalSchedule, 0, len(goals)),
		TotalMonthlyPayment: decimal.Zero,
	}
	for _, g := range goals {
		sc := s.Schedule(g, display, resolve)
		out.Schedules = append(out.Schedules, sc)
		if !sc.Due {
			out.TotalMonthlyPayment = out.TotalMonthlyPayment.Add(sc.MonthlyPaymentConverted)
		}
	}
	return out
}
