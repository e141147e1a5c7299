package main

import (
	"fmt"

	convadapter "github.com/SscSPs/budget_engine/internal/adapters/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newConvertCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "convert AMOUNT FROM TO",
		Short:   "Convert one amount with the file's rate table",
		Example: "  budgetctl convert 120 EUR USD --rate EUR=1.08",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			from, err := domain.NormalizeCurrencyCode(args[1])
			if err != nil {
				return err
			}
			to, err := domain.NormalizeCurrencyCode(args[2])
			if err != nil {
				return err
			}

			b, err := root.load()
			if err != nil {
				return err
			}
			client, err := convadapter.NewStaticClient(b.pivot, b.rates)
			if err != nil {
				return err
			}

			converted := amount
			if from != to {
				if converted, err = client.ConvertOne(cmd.Context(), amount, from, to); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
				utils.FormatAmount(amount, from), from, utils.FormatAmount(converted, to), to)
			return nil
		},
	}
}
