package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/report"
)

func newCardCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage credit cards",
	}
	cmd.AddCommand(newCardAddCommand(g), newCardListCommand(g))
	return cmd
}

func newCardAddCommand(g *globals) *cobra.Command {
	var name, lastFour, limit string
	var closingDay, dueDay int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a credit card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			lim, err := parseMoney("limit", limit)
			if err != nil {
				return err
			}
			id, err := w.store.AddCard(model.CreditCard{
				Name:       name,
				LastFour:   lastFour,
				Limit:      lim,
				ClosingDay: closingDay,
				DueDay:     dueDay,
			})
			if err != nil {
				return err
			}
			w.record(activitylog.ActionAdded, "card", id, name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "card name (required)")
	cmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits")
	cmd.Flags().StringVar(&limit, "limit", "0", "credit limit")
	cmd.Flags().IntVar(&closingDay, "closing-day", 1, "statement closing day of month")
	cmd.Flags().IntVar(&dueDay, "due-day", 10, "payment due day of month")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCardListCommand(g *globals) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards with spend and available credit",
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
			s := finance.Summarize(nil, wal.Expenses, wal.Cards, nil, period)
			report.RenderCards(cmd.OutOrStdout(), s.Cards, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only count spend in YYYY-MM")
	return cmd
}
