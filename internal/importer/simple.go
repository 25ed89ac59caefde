package importer

import (
	"io"

	"github.com/walletguard/walletguard/internal/model"
)

// SimpleParser reads a minimal "date,description,amount" CSV with ISO dates,
// the shape most banks and spreadsheets can export. Amounts may use a comma
// decimal separator.
type SimpleParser struct{}

var (
	simpleDate   = column{"date"}
	simpleDesc   = column{"description"}
	simpleAmount = column{"amount"}
)

// Format returns the parser name.
func (p *SimpleParser) Format() string { return "simple" }

// Parse reads the CSV and returns BankTransactions. The first row is a header.
func (p *SimpleParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	return readTable(r, "simple", []column{simpleDate, simpleDesc, simpleAmount}, func(rw row) (model.BankTransaction, error) {
		line := statementLine{
			date:        rw.get(simpleDate),
			description: rw.get(simpleDesc),
			amount:      rw.get(simpleAmount),
		}
		return line.transaction(p.Format(), "2006-01-02")
	})
}
