package commands

import (
	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/report"
)

func newSummaryCommand(g *globals) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses, balance and card utilization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			period, err := parseMonth(month)
			if err != nil {
				return err
			}
			opts, err := reportOptions(w.cfg)
			if err != nil {
				return err
			}
			wal, err := w.store.LoadWallet(cmd.Context())
			if err != nil {
				return err
			}
			s := finance.Summarize(wal.Incomes, wal.Expenses, wal.Cards, wal.Accounts, period)
			report.RenderSummary(cmd.OutOrStdout(), s, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "summarize YYYY-MM only (default all time)")
	return cmd
}
