package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/report"
)

func newExportCommand(g *globals) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the summary, incomes and expenses to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
				return fmt.Errorf("export file %q must end in .xlsx", path)
			}
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			period, err := parseMonth(month)
			if err != nil {
				return err
			}
			wal, err := w.store.LoadWallet(cmd.Context())
			if err != nil {
				return err
			}

			s := finance.Summarize(wal.Incomes, wal.Expenses, wal.Cards, wal.Accounts, period)
			if err := report.WriteXLSX(path, s, wal.Incomes, wal.Expenses); err != nil {
				return err
			}
			w.record(activitylog.ActionExported, "file", filepath.Base(path), report.PeriodLabel(period))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", report.PeriodLabel(period), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "export YYYY-MM only (default all time)")
	return cmd
}
