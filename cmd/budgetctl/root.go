package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	file    string
	rates   map[string]string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Convert and aggregate multi-currency budgets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "budget.toml", "budget file")
	cmd.PersistentFlags().StringToStringVar(&opts.rates, "rate", nil, "override a rate of the file, e.g. --rate EUR=1.08")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log conversion batches")

	cmd.AddCommand(newSummaryCmd(opts), newConvertCmd(opts))
	return cmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// load reads the budget file and applies --rate overrides.
func (o *rootOptions) load() (*budget, error) {
	b, err := loadBudgetFile(o.file)
	if err != nil {
		return nil, err
	}
	for code, raw := range o.rates {
		if err := b.setRate(code, raw); err != nil {
			return nil, err
		}
	}
	return b, nil
}
