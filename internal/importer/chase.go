package importer

import (
	"io"

	"github.com/walletguard/walletguard/internal/model"
)

// ChaseParser reads Chase CSV exports. Checking exports date rows by
// "Posting Date"; card exports carry "Transaction Date" and "Post Date", and
// the post date is used.
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

var (
	chaseDate   = column{"posting date", "post date", "transaction date"}
	chaseDesc   = column{"description"}
	chaseAmount = column{"amount"}
	chaseType   = column{"type"}
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	return readTable(r, "chase", []column{chaseDate, chaseDesc, chaseAmount}, func(rw row) (model.BankTransaction, error) {
		line := statementLine{
			date:        rw.get(chaseDate),
			description: rw.get(chaseDesc),
			amount:      rw.get(chaseAmount),
			kind:        rw.get(chaseType),
		}
		return line.transaction(p.Format(), chaseDateFormat)
	})
}
