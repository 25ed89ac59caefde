package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/config"
	"github.com/walletguard/walletguard/internal/gitops"
	"github.com/walletguard/walletguard/internal/importer"
	"github.com/walletguard/walletguard/internal/money"
	"github.com/walletguard/walletguard/internal/store"
)

func newInitCommand(g *globals) *cobra.Command {
	var owner, email, currency, locale string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := g.walletDir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(owner)
			cfg.Owner.Email = email
			cfg.Currency.Code = currency
			cfg.Currency.Locale = locale
			if _, err := money.NewFormatter(currency, locale); err != nil {
				return err
			}

			if err := runInit(absDir, cfg); err != nil {
				return err
			}
			if useGit {
				if err := gitops.Init(absDir); err != nil {
					return err
				}
				if _, err := gitops.CommitAll(absDir, "walletguard: init wallet for "+owner, author(cfg)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized wallet at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "wallet owner name (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&email, "email", "", "wallet owner email")
	cmd.Flags().BoolVar(&useGit, "git", false, "keep wallet history in a git repository")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale used to format amounts")

	return cmd
}

func runInit(dir string, cfg *config.Config) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("wallet already initialized at %s", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	for _, d := range []string{"logs", importer.InboxDir, importer.ArchiveDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := store.NewService(dir, nil).Init(); err != nil {
		return fmt.Errorf("creating data files: %w", err)
	}

	gitignore := ".env\nexports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
