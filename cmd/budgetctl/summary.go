package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	convadapter "github.com/SscSPs/budget_engine/internal/adapters/conversion"
	"github.com/SscSPs/budget_engine/internal/adapters/telemetry"
	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/services"
	"github.com/SscSPs/budget_engine/internal/dto"
	"github.com/spf13/cobra"
)

type summaryOptions struct {
	currency string
	today    string
	asJSON   bool
}

func newSummaryCmd(root *rootOptions) *cobra.Command {
	opts := &summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print income, expense, savings and goal totals in one currency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := root.load()
			if err != nil {
				return err
			}
			return runSummary(cmd, b, opts, root.logger(cmd.ErrOrStderr()))
		},
	}
	cmd.Flags().StringVarP(&opts.currency, "currency", "c", "", "display currency (default: the scenario base currency)")
	cmd.Flags().StringVar(&opts.today, "today", "", "reference date for goal schedules, YYYY-MM-DD")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func runSummary(cmd *cobra.Command, b *budget, opts *summaryOptions, logger *slog.Logger) error {
	client, err := convadapter.NewStaticClient(b.pivot, b.rates)
	if err != nil {
		return err
	}

	var schedulerOpts []services.GoalSchedulerOption
	if opts.today != "" {
		today, err := time.Parse(fileDateFormat, opts.today)
		if err != nil {
			return fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
		}
		schedulerOpts = append(schedulerOpts, services.WithClock(func() time.Time { return today }))
	}

	registry := conversion.NewRegistry(client, logger, conversion.WithTelemetry(telemetry.NewLogSink(logger)))
	svc := services.NewNormalizationService(b, b, registry,
		services.WithGoalScheduler(services.NewGoalScheduler(schedulerOpts...)))

	ctx := cmd.Context()
	display, err := svc.DisplayContext(ctx, b.scenario.ScenarioID, opts.currency)
	if err != nil {
		return err
	}
	summary, err := svc.ScenarioSummary(ctx, display)
	if err != nil {
		return err
	}

	resp := dto.ToScenarioSummaryResponse(summary)
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printSummary(cmd.OutOrStdout(), b, resp)
}

func printSummary(out io.Writer, b *budget, s dto.ScenarioSummaryResponse) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	code := s.Display.Currency.CurrencyCode

	name := b.scenario.Name
	if name == "" {
		name = b.scenario.ScenarioID
	}
	fmt.Fprintf(w, "Scenario\t%s\t(base %s, shown in %s)\n", name, s.Display.BaseCurrency.CurrencyCode, code)
	fmt.Fprintln(w, "\tMonthly\tAnnual\tOne-time")
	fmt.Fprintf(w, "Income\t%s\t%s\t%s\n", s.Income.Totals.Monthly, s.Income.Totals.Annual, s.Income.Totals.Lifetime)
	fmt.Fprintf(w, "Expenses\t%s\t%s\t%s\n", s.Expenses.Totals.Monthly, s.Expenses.Totals.Annual, s.Expenses.Totals.Lifetime)
	fmt.Fprintf(w, "Savings\t%s\t\t\n", s.Savings.Total)
	fmt.Fprintf(w, "Goals\t%s\t\t\n", s.Goals.TotalMonthlyPayment)
	fmt.Fprintf(w, "Remainder\t%s\t\t\n", s.Remainder)

	if len(s.Goals.Goals) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Goal\tTarget\tMonths left\tMonthly\t"+code)
		for _, g := range s.Goals.Goals {
			months := fmt.Sprint(g.MonthsLeft)
			if g.Due {
				months = "due"
			}
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", g.ID, g.TargetAmount, g.Currency, months, g.MonthlyPayment, g.MonthlyPaymentConverted)
		}
	}

	if unconverted := s.Income.Unconverted + s.Expenses.Unconverted + s.Savings.Unconverted; unconverted > 0 {
		fmt.Fprintf(w, "\n%d record(s) have no rate to %s and are shown at their native amount\n", unconverted, code)
	}
	return w.Flush()
}
