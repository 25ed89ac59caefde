// Package importer turns bank statement exports into wallet incomes and
// expenses.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/walletguard/walletguard/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered formats in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&SimpleParser{})
	return r
}

// InboxDir is the wallet subdirectory where statements are dropped for import.
const InboxDir = "import"

// ArchiveDir is where imported statements are moved.
var ArchiveDir = filepath.Join(InboxDir, "processed")

// Inbox is the import directory of a wallet.
type Inbox struct {
	root string
}

// NewInbox returns the inbox of the wallet at walletRoot.
func NewInbox(walletRoot string) Inbox {
	return Inbox{root: walletRoot}
}

// Pending returns the names of CSV files waiting in the inbox, sorted.
func (in Inbox) Pending() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(in.root, InboxDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Parse reads a pending file with the given parser.
func (in Inbox) Parse(name string, p Parser) ([]model.BankTransaction, error) {
	f, err := os.Open(filepath.Join(in.root, InboxDir, name))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", name, p.Format(), err)
	}
	return txns, nil
}

// Archive moves a file from the inbox to the archive directory.
func (in Inbox) Archive(name string) error {
	dstDir := filepath.Join(in.root, ArchiveDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating archive dir: %w", err)
	}

	src := filepath.Join(in.root, InboxDir, name)
	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return fmt.Errorf("archiving %s: %w", name, err)
	}
	return nil
}
