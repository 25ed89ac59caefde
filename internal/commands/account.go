package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/report"
)

func newAccountCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage bank accounts",
	}
	cmd.AddCommand(newAccountAddCommand(g), newAccountListCommand(g))
	return cmd
}

func newAccountAddCommand(g *globals) *cobra.Command {
	var name, institution, accountType, balance string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			bal, err := parseMoney("balance", balance)
			if err != nil {
				return err
			}
			id, err := w.store.AddAccount(model.BankAccount{
				Name:        name,
				Institution: institution,
				Type:        model.AccountType(accountType),
				Balance:     bal,
			})
			if err != nil {
				return err
			}
			w.record(activitylog.ActionAdded, "account", id, name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&institution, "institution", "", "bank or institution")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "checking, savings, investment or cash")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAccountListCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			opts, err := reportOptions(w.cfg)
			if err != nil {
				return err
			}
			accounts, err := w.store.Accounts()
			if err != nil {
				return err
			}
			report.RenderAccounts(cmd.OutOrStdout(), accounts, opts)
			return nil
		},
	}
}
