package commands

import (
	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "walletguard",
		Short:   "Personal finance tracker for incomes, expenses, cards and accounts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.opened != nil {
				g.opened.commit()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.walletDir, "wallet", "w", ".", "wallet directory")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(
		newInitCommand(g),
		newIncomeCommand(g),
		newExpenseCommand(g),
		newCardCommand(g),
		newAccountCommand(g),
		newSummaryCommand(g),
		newInstallmentsCommand(g),
		newCreditCommand(g),
		newImportCommand(g),
		newExportCommand(g),
		newLogCommand(g),
	)

	return rootCmd
}
