package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/report"
)

func newExpenseCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
	}
	cmd.AddCommand(newExpenseAddCommand(g), newExpenseListCommand(g), newExpenseRemoveCommand(g))
	return cmd
}

func newExpenseAddCommand(g *globals) *cobra.Command {
	var f entryFlags
	var card string
	var installments int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense, optionally charged to a card in installments",
		Long: "Record an expense. With --card and --installments N the value is split\n" +
			"into N monthly expenses on the card; the last one absorbs the rounding\n" +
			"remainder so the parts add up to the value exactly.",
		Args: cobra.NoArgs,
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

			var cardID string
			if card != "" {
				cards, err := w.store.Cards()
				if err != nil {
					return err
				}
				c, err := resolveCard(cards, card)
				if err != nil {
					return err
				}
				cardID = c.ID
			}

			if !cmd.Flags().Changed("installments") {
				installments = 1
				if cardID != "" && w.cfg.Cards.DefaultInstallments > 0 {
					installments = w.cfg.Cards.DefaultInstallments
				}
			}
			if installments > 1 && cardID == "" {
				return errors.New("--installments needs --card")
			}
			plan, err := finance.SplitInstallments(value, installments)
			if err != nil {
				return err
			}

			if plan.Count > 1 && (!plan.InstallmentAmount.IsPositive() || !plan.LastInstallmentAmount.IsPositive()) {
				return fmt.Errorf("value %s is too small to split into %d installments", value.StringFixed(2), plan.Count)
			}

			schedule := finance.Schedule(plan, date)
			parts := make([]model.Expense, len(schedule))
			for i, in := range schedule {
				desc := f.description
				if plan.Count > 1 {
					desc = fmt.Sprintf("%s (%d/%d)", f.description, in.Number, plan.Count)
				}
				parts[i] = model.Expense{
					Date:        in.Due,
					Description: desc,
					Category:    f.category,
					Value:       in.Amount,
					CardID:      cardID,
				}
			}
			ids, err := w.store.AddExpenses(parts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, id := range ids {
				w.record(activitylog.ActionAdded, "expense", id, fmt.Sprintf("%s %s", parts[i].Description, parts[i].Value.StringFixed(2)))
				fmt.Fprintf(out, "Added expense %s\n", id)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&card, "card", "", "card ID, ID prefix or name")
	cmd.Flags().IntVarP(&installments, "installments", "n", 1, "split into N monthly installments (needs --card)")
	return cmd
}

func newExpenseListCommand(g *globals) *cobra.Command {
	var month, card string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
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

			expenses, err := w.store.Expenses()
			if err != nil {
				return err
			}
			cards, err := w.store.Cards()
			if err != nil {
				return err
			}
			names := make(map[string]string, len(cards))
			for _, c := range cards {
				names[c.ID] = c.Name
			}

			var cardID string
			if card != "" {
				c, err := resolveCard(cards, card)
				if err != nil {
					return err
				}
				cardID = c.ID
			}

			var shown []model.Expense
			for _, e := range expenses {
				if !period.Contains(e.Date) || (cardID != "" && e.CardID != cardID) {
					continue
				}
				shown = append(shown, e)
			}
			report.RenderExpenses(cmd.OutOrStdout(), shown, names, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only show YYYY-MM")
	cmd.Flags().StringVar(&card, "card", "", "only show expenses on this card")
	return cmd
}

func newExpenseRemoveCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			expenses, err := w.store.Expenses()
			if err != nil {
				return err
			}
			ids := make([]string, len(expenses))
			for i, e := range expenses {
				ids[i] = e.ID
			}
			id, err := resolveID(ids, args[0])
			if err != nil {
				return err
			}
			if err := w.store.DeleteExpense(id); err != nil {
				return err
			}
			w.record(activitylog.ActionDeleted, "expense", id, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s\n", id)
			return nil
		},
	}
}
