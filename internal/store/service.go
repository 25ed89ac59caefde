// Package store keeps a wallet's records as CSV files in a directory.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/walletguard/walletguard/internal/logging"
	"github.com/walletguard/walletguard/internal/model"
)

// DataDir is the wallet subdirectory holding record files.
const DataDir = "data"

const (
	incomesFile  = "incomes.csv"
	expensesFile = "expenses.csv"
	cardsFile    = "cards.csv"
	accountsFile = "accounts.csv"
)

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("record not found")

// Wallet is every record of a wallet, loaded at once.
type Wallet struct {
	Incomes  []model.Income
	Expenses []model.Expense
	Cards    []model.CreditCard
	Accounts []model.BankAccount
}

// Service reads and appends wallet records under a root directory.
type Service struct {
	root string
	log  *slog.Logger
	mu   sync.Mutex
}

// NewService creates a Service for the wallet at root.
func NewService(root string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{root: root, log: logging.WithComponent(log, logging.ComponentStore)}
}

// Root returns the wallet directory.
func (s *Service) Root() string { return s.root }

// Init creates the data directory with empty record files. Existing files
// are left alone.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	for file, header := range map[string]string{
		incomesFile:  IncomeHeader,
		expensesFile: ExpenseHeader,
		cardsFile:    CardHeader,
		accountsFile: AccountHeader,
	} {
		path := s.path(file)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
	}
	return nil
}

// AddIncome validates in, assigns it an ID and appends it. Returns the ID.
func (s *Service) AddIncome(in model.Income) (string, error) {
	ids, err := s.AddIncomes([]model.Income{in})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// AddIncomes validates every income before writing any of them, then appends
// them all in one write. Returns the IDs in order.
func (s *Service) AddIncomes(incomes []model.Income) ([]string, error) {
	for i, in := range incomes {
		if err := in.Validate(); err != nil {
			return nil, batchError(len(incomes), i, err)
		}
	}

	ids := make([]string, len(incomes))
	rows := make([][]string, len(incomes))
	for i, in := range incomes {
		in.ID = newID(in.ID)
		ids[i] = in.ID
		rows[i] = MarshalIncome(in)
	}
	if err := s.appendRows(incomesFile, IncomeHeader, rows...); err != nil {
		return nil, err
	}
	for i, in := range incomes {
		s.log.Debug("added income", "id", ids[i], "value", in.Value.String())
	}
	return ids, nil
}

// AddExpense validates e, checks that its card exists, assigns it an ID and
// appends it. Returns the ID.
func (s *Service) AddExpense(e model.Expense) (string, error) {
	ids, err := s.AddExpenses([]model.Expense{e})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// AddExpenses validates every expense and its card before writing any of
// them, then appends them all in one write. Returns the IDs in order.
func (s *Service) AddExpenses(expenses []model.Expense) ([]string, error) {
	var cards []model.CreditCard
	cardsLoaded := false
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, batchError(len(expenses), i, err)
		}
		if e.CardID == "" {
			continue
		}
		if !cardsLoaded {
			var err error
			if cards, err = s.Cards(); err != nil {
				return nil, err
			}
			cardsLoaded = true
		}
		if !hasCard(cards, e.CardID) {
			return nil, batchError(len(expenses), i, fmt.Errorf("expense card: card %s: %w", e.CardID, ErrNotFound))
		}
	}

	ids := make([]string, len(expenses))
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		e.ID = newID(e.ID)
		ids[i] = e.ID
		rows[i] = MarshalExpense(e)
	}
	if err := s.appendRows(expensesFile, ExpenseHeader, rows...); err != nil {
		return nil, err
	}
	for i, e := range expenses {
		s.log.Debug("added expense", "id", ids[i], "value", e.Value.String(), "card", e.CardID)
	}
	return ids, nil
}

// AddCard validates c, assigns it an ID and appends it. Returns the ID.
func (s *Service) AddCard(c model.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = newID(c.ID)
	if err := s.appendRow(cardsFile, CardHeader, MarshalCard(c)); err != nil {
		return "", err
	}
	s.log.Debug("added card", "id", c.ID, "limit", c.Limit.String())
	return c.ID, nil
}

// AddAccount validates a, assigns it an ID and appends it. Returns the ID.
func (s *Service) AddAccount(a model.BankAccount) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	a.ID = newID(a.ID)
	if err := s.appendRow(accountsFile, AccountHeader, MarshalAccount(a)); err != nil {
		return "", err
	}
	s.log.Debug("added account", "id", a.ID)
	return a.ID, nil
}

// Incomes returns all incomes in file order.
func (s *Service) Incomes() ([]model.Income, error) {
	return readFile(s, incomesFile, ReadIncomes)
}

// Expenses returns all expenses in file order.
func (s *Service) Expenses() ([]model.Expense, error) {
	return readFile(s, expensesFile, ReadExpenses)
}

// Cards returns all credit cards in file order.
func (s *Service) Cards() ([]model.CreditCard, error) {
	return readFile(s, cardsFile, ReadCards)
}

// Accounts returns all bank accounts in file order.
func (s *Service) Accounts() ([]model.BankAccount, error) {
	return readFile(s, accountsFile, ReadAccounts)
}

// Card returns the card with the given ID, or ErrNotFound.
func (s *Service) Card(id string) (model.CreditCard, error) {
	cards, err := s.Cards()
	if err != nil {
		return model.CreditCard{}, err
	}
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
	}
	return model.CreditCard{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
}

// DeleteIncome removes the income with the given ID.
func (s *Service) DeleteIncome(id string) error {
	incomes, err := s.Incomes()
	if err != nil {
		return err
	}
	kept, ok := without(incomes, func(i model.Income) bool { return i.ID == id })
	if !ok {
		return fmt.Errorf("income %s: %w", id, ErrNotFound)
	}
	return s.rewrite(incomesFile, func(w io.Writer) error { return WriteIncomes(w, kept) })
}

// DeleteExpense removes the expense with the given ID.
func (s *Service) DeleteExpense(id string) error {
	expenses, err := s.Expenses()
	if err != nil {
		return err
	}
	kept, ok := without(expenses, func(e model.Expense) bool { return e.ID == id })
	if !ok {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	return s.rewrite(expensesFile, func(w io.Writer) error { return WriteExpenses(w, kept) })
}

// LoadWallet reads all record files concurrently.
func (s *Service) LoadWallet(ctx context.Context) (*Wallet, error) {
	var w Wallet
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { w.Incomes, err = readFileContext(ctx, s, incomesFile, ReadIncomes); return })
	g.Go(func() (err error) { w.Expenses, err = readFileContext(ctx, s, expensesFile, ReadExpenses); return })
	g.Go(func() (err error) { w.Cards, err = readFileContext(ctx, s, cardsFile, ReadCards); return })
	g.Go(func() (err error) { w.Accounts, err = readFileContext(ctx, s, accountsFile, ReadAccounts); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading wallet: %w", err)
	}
	s.log.Debug("loaded wallet",
		"incomes", len(w.Incomes), "expenses", len(w.Expenses),
		"cards", len(w.Cards), "accounts", len(w.Accounts))
	return &w, nil
}

// readFileContext is readFile that gives up once ctx is done.
func readFileContext[T any](ctx context.Context, s *Service, file string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readFile(s, file, read)
}

func readFile[T any](s *Service, file string, read func(io.Reader) ([]T, error)) ([]T, error) {
	path := s.path(file)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

func (s *Service) appendRow(file, header string, row []string) error {
	return s.appendRows(file, header, row)
}

// appendRows appends rows in one write, creating the file and header if
// needed. Nothing is written when rows is empty.
func (s *Service) appendRows(file, header string, rows ...[]string) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := s.path(file)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := appendRecords(f, rows); err != nil {
		return fmt.Errorf("appending to %s: %w", file, err)
	}
	return nil
}

// rewrite replaces a file atomically via a temp file in the same directory.
func (s *Service) rewrite(file string, write func(io.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dataDir(), strings.TrimSuffix(file, ".csv")+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(file)); err != nil {
		return fmt.Errorf("replacing %s: %w", file, err)
	}
	return nil
}

func (s *Service) dataDir() string {
	return filepath.Join(s.root, DataDir)
}

func (s *Service) path(file string) string {
	return filepath.Join(s.dataDir(), file)
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func hasCard(cards []model.CreditCard, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// batchError points at the failing record when more than one was submitted.
func batchError(n, i int, err error) error {
	if n == 1 {
		return err
	}
	return fmt.Errorf("record %d of %d: %w", i+1, n, err)
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	kept := make([]T, 0, len(items))
	found := false
	for _, it := range items {
		if match(it) {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	return kept, found
}
