package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/report"
)

// entryFlags are the flags shared by income and expense add.
type entryFlags struct {
	date        string
	description string
	category    string
	value       string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&f.description, "desc", "d", "", "description (required)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category")
	cmd.Flags().StringVar(&f.value, "value", "", "amount, e.g. 12.50 or 12,50 (required)")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("value")
}

func newIncomeCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage incomes",
	}
	cmd.AddCommand(newIncomeAddCommand(g), newIncomeListCommand(g), newIncomeRemoveCommand(g))
	return cmd
}

func newIncomeAddCommand(g *globals) *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			date, err := parseDate(f.date)
			if err != nil {
				return err
			}
			value, err := parseMoney("value", f.value)
			if err != nil {
				return err
			}

			id, err := w.store.AddIncome(model.Income{
				Date:        date,
				Description: f.description,
				Category:    f.category,
				Value:       value,
			})
			if err != nil {
				return err
			}
			w.record(activitylog.ActionAdded, "income", id, fmt.Sprintf("%s %s", f.description, value.StringFixed(2)))
			fmt.Fprintf(cmd.OutOrStdout(), "Added income %s\n", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newIncomeListCommand(g *globals) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incomes",
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

			incomes, err := w.store.Incomes()
			if err != nil {
				return err
			}
			shown := inPeriod(incomes, period, func(i model.Income) time.Time { return i.Date })
			report.RenderIncomes(cmd.OutOrStdout(), shown, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only show YYYY-MM")
	return cmd
}

func newIncomeRemoveCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an income by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			incomes, err := w.store.Incomes()
			if err != nil {
				return err
			}
			ids := make([]string, len(incomes))
			for i, in := range incomes {
				ids[i] = in.ID
			}
			id, err := resolveID(ids, args[0])
			if err != nil {
				return err
			}
			if err := w.store.DeleteIncome(id); err != nil {
				return err
			}
			w.record(activitylog.ActionDeleted, "income", id, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted income %s\n", id)
			return nil
		},
	}
}
