package importer

import (
	"strings"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// Batch is the result of converting bank transactions.
type Batch struct {
	Incomes  []model.Income
	Expenses []model.Expense
	Skipped  int // zero amounts and duplicates
}

// Existing is what a wallet already holds, used to skip re-imported rows.
type Existing struct {
	Incomes  []model.Income
	Expenses []model.Expense
}

// Convert turns credits into incomes and debits into expenses, rounding to
// cents. Rows already present in existing (same date, description and amount)
// are skipped, as are zero-amount rows.
func Convert(txns []model.BankTransaction, category string, existing Existing) Batch {
	seen := make(map[string]bool, len(existing.Incomes)+len(existing.Expenses))
	for _, i := range existing.Incomes {
		seen[dedupKey("in", i.Date.Format("20060102"), i.Description, i.Value.StringFixed(money.Places))] = true
	}
	for _, e := range existing.Expenses {
		seen[dedupKey("out", e.Date.Format("20060102"), e.Description, e.Value.StringFixed(money.Places))] = true
	}

	var b Batch
	for _, t := range txns {
		amount := money.Round(t.Amount)
		if amount.IsZero() {
			b.Skipped++
			continue
		}

		dir := "in"
		if amount.IsNegative() {
			dir = "out"
			amount = amount.Neg()
		}
		key := dedupKey(dir, t.Date.Format("20060102"), t.Description, amount.StringFixed(money.Places))
		if seen[key] {
			b.Skipped++
			continue
		}
		seen[key] = true

		if dir == "in" {
			b.Incomes = append(b.Incomes, model.Income{
				Date:        t.Date,
				Description: t.Description,
				Category:    category,
				Value:       amount,
			})
		} else {
			b.Expenses = append(b.Expenses, model.Expense{
				Date:        t.Date,
				Description: t.Description,
				Category:    category,
				Value:       amount,
			})
		}
	}
	return b
}

func dedupKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}
