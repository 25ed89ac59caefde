package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/report"
)

func newInstallmentsCommand(g *globals) *cobra.Command {
	var firstDue string

	cmd := &cobra.Command{
		Use:   "installments <total> [count]",
		Short: "Split a total into equal monthly installments",
		Long: "Split a total into equal installments rounded to cents. The last\n" +
			"installment absorbs the remainder so the plan adds up exactly.\n" +
			"count defaults to cards.default_installments from the wallet config.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.optionalConfig()
			if err != nil {
				return err
			}
			total, err := parseMoney("total", args[0])
			if err != nil {
				return err
			}

			count := 1
			if cfg != nil && cfg.Cards.DefaultInstallments > 0 {
				count = cfg.Cards.DefaultInstallments
			}
			if len(args) == 2 {
				count, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("count %q is not a whole number", args[1])
				}
			}

			plan, err := finance.SplitInstallments(total, count)
			if err != nil {
				return err
			}
			due, err := parseDate(firstDue)
			if err != nil {
				return err
			}
			opts, err := reportOptions(cfg)
			if err != nil {
				return err
			}
			report.RenderInstallments(cmd.OutOrStdout(), finance.Schedule(plan, due), opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&firstDue, "first-due", "", "first due date as YYYY-MM-DD (default today)")
	return cmd
}

func newCreditCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "credit <limit> <spend>",
		Short: "Show available credit and percentage used",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.optionalConfig()
			if err != nil {
				return err
			}
			limit, err := parseMoney("limit", args[0])
			if err != nil {
				return err
			}
			spend, err := parseMoney("spend", args[1])
			if err != nil {
				return err
			}
			opts, err := reportOptions(cfg)
			if err != nil {
				return err
			}
			report.RenderCredit(cmd.OutOrStdout(), finance.Utilization(limit, spend), opts)
			return nil
		},
	}
}
