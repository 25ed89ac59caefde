package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/config"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/gitops"
	"github.com/walletguard/walletguard/internal/logging"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
	"github.com/walletguard/walletguard/internal/report"
	"github.com/walletguard/walletguard/internal/store"
)

const dateFormat = "2006-01-02"

// globals holds persistent flag values shared by all subcommands.
type globals struct {
	walletDir string
	verbose   bool

	opened *wallet
}

// wallet is an opened wallet directory with its services.
type wallet struct {
	root    string
	cfg     *config.Config
	store   *store.Service
	log     *slog.Logger
	changes []string
}

func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), g.verbose)
}

// open loads the wallet config and store. The wallet must be initialized.
func (g *globals) open(cmd *cobra.Command) (*wallet, error) {
	root, err := filepath.Abs(g.walletDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadWallet(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no wallet at %s (run `walletguard init` first)", root)
		}
		return nil, err
	}
	base := g.logger(cmd)
	log := logging.WithComponent(base, logging.ComponentCLI)
	log.Debug("opened wallet", "root", root, "currency", cfg.Currency.Code)
	g.opened = &wallet{root: root, cfg: cfg, store: store.NewService(root, base), log: log}
	return g.opened, nil
}

// reportOptions builds report options from the wallet config, or from
// defaults when no wallet is open.
func reportOptions(cfg *config.Config) (report.Options, error) {
	if cfg == nil {
		cfg = config.Default("")
	}
	f, err := money.NewFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	if err != nil {
		return report.Options{}, fmt.Errorf("currency: %w", err)
	}
	return report.Options{
		Currency:         f,
		AlertUtilization: decimal.NewFromFloat(cfg.Summary.AlertUtilization),
	}, nil
}

// optionalConfig returns the wallet config, or nil when the directory holds
// no wallet. Commands that only compute use it for display settings.
func (g *globals) optionalConfig() (*config.Config, error) {
	root, err := filepath.Abs(g.walletDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadWallet(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return cfg, err
}

func (w *wallet) record(action activitylog.Action, kind, id, details string) {
	err := activitylog.Append(w.root, activitylog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Kind:      kind,
		RecordID:  id,
		Details:   details,
	})
	if err != nil {
		w.log.Warn("failed to write activity log", logging.FieldError, err)
	}
	w.changes = append(w.changes, fmt.Sprintf("%s %s %s", action, kind, shortRef(id)))
}

// commit records the command's changes in the wallet's git history, if the
// wallet is a git repository.
func (w *wallet) commit() {
	if len(w.changes) == 0 || !gitops.IsRepo(w.root) {
		return
	}
	msg := "walletguard: " + w.changes[0]
	if n := len(w.changes) - 1; n > 0 {
		msg += fmt.Sprintf(" (+%d more)", n)
	}
	hash, err := gitops.CommitAll(w.root, msg, author(w.cfg))
	if err != nil {
		w.log.Warn("failed to commit wallet changes", logging.FieldError, err)
		return
	}
	w.log.Debug("committed wallet changes", "commit", hash)
}

func author(cfg *config.Config) gitops.Author {
	a := gitops.Author{Name: cfg.Owner.Name, Email: cfg.Owner.Email}
	if a.Email == "" {
		a.Email = "walletguard@localhost"
	}
	return a
}

func shortRef(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// parseMonth reads a YYYY-MM flag. Empty means all time.
func parseMonth(s string) (finance.Period, error) {
	if s == "" {
		return finance.Period{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return finance.Period{}, fmt.Errorf("month %q must be YYYY-MM", s)
	}
	return finance.Period{Year: t.Year(), Month: int(t.Month())}, nil
}

func inPeriod[T any](items []T, p finance.Period, date func(T) time.Time) []T {
	var out []T
	for _, it := range items {
		if p.Contains(date(it)) {
			out = append(out, it)
		}
	}
	return out
}

func parseMoney(name, s string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// resolveCard finds a card by ID, ID prefix or case-insensitive name.
func resolveCard(cards []model.CreditCard, ref string) (model.CreditCard, error) {
	var matches []model.CreditCard
	for _, c := range cards {
		if c.ID == ref {
			return c, nil
		}
		if strings.EqualFold(c.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(c.ID, ref)) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return model.CreditCard{}, fmt.Errorf("card %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return model.CreditCard{}, fmt.Errorf("card %q is ambiguous (%d matches)", ref, len(matches))
}

// resolveID expands an ID prefix against the IDs of existing records.
func resolveID(ids []string, ref string) (string, error) {
	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("id %q: %w", ref, store.ErrNotFound)
	}
	return match, nil
}
