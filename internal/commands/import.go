package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/importer"
	"github.com/walletguard/walletguard/internal/logging"
	"github.com/walletguard/walletguard/internal/model"
)

func newImportCommand(g *globals) *cobra.Command {
	var format, category string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement CSVs as incomes and expenses",
		Long: "Import bank statement CSVs. With no arguments every CSV in the wallet's\n" +
			"import/ directory is imported and moved to import/processed/.\n" +
			"Rows already in the wallet are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			reg := importer.DefaultRegistry()
			p := reg.Get(format)
			if p == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(reg.Formats(), ", "))
			}

			if len(args) > 0 {
				for _, path := range args {
					txns, err := parseFile(path, p)
					if err != nil {
						return err
					}
					if err := w.importTransactions(cmd, filepath.Base(path), txns, category); err != nil {
						return err
					}
				}
				return nil
			}

			inbox := importer.NewInbox(w.root)
			names, err := inbox.Pending()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}
			for _, name := range names {
				txns, err := inbox.Parse(name, p)
				if err != nil {
					return err
				}
				if err := w.importTransactions(cmd, name, txns, category); err != nil {
					return err
				}
				if err := inbox.Archive(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category for imported records")
	return cmd
}

func parseFile(path string, p importer.Parser) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, p.Format(), err)
	}
	return txns, nil
}

func (w *wallet) importTransactions(cmd *cobra.Command, source string, txns []model.BankTransaction, category string) error {
	wal, err := w.store.LoadWallet(cmd.Context())
	if err != nil {
		return err
	}
	batch := importer.Convert(txns, category, importer.Existing{
		Incomes:  wal.Incomes,
		Expenses: wal.Expenses,
	})

	if err := validateBatch(batch); err != nil {
		return fmt.Errorf("importing %s: %w", source, err)
	}
	if _, err := w.store.AddIncomes(batch.Incomes); err != nil {
		return fmt.Errorf("importing %s: %w", source, err)
	}
	if _, err := w.store.AddExpenses(batch.Expenses); err != nil {
		return fmt.Errorf("importing %s: %w", source, err)
	}

	details := fmt.Sprintf("%d incomes, %d expenses, %d skipped", len(batch.Incomes), len(batch.Expenses), batch.Skipped)
	w.record(activitylog.ActionImported, "file", source, details)
	w.log.Info("imported file", logging.FieldFile, source, "incomes", len(batch.Incomes), "expenses", len(batch.Expenses))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", source, details)
	return nil
}

// validateBatch checks the whole batch so a bad row leaves the wallet untouched.
func validateBatch(b importer.Batch) error {
	for _, in := range b.Incomes {
		if err := in.Validate(); err != nil {
			return err
		}
	}
	for _, e := range b.Expenses {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
