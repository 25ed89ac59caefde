// Package report renders wallet data as terminal tables and spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

const dateFormat = "2006-01-02"

// Options controls table rendering.
type Options struct {
	Currency money.Formatter
	// AlertUtilization flags cards whose usage is at or above this percent.
	// Zero disables the flag.
	AlertUtilization decimal.Decimal
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func rightAlign(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{Number: c, Align: text.AlignRight, AlignFooter: text.AlignRight}
	}
	return cfgs
}

// PeriodLabel names a period for headings.
func PeriodLabel(p finance.Period) string {
	if p.IsZero() {
		return "all time"
	}
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// RenderSummary prints totals, the category breakdown and card utilization.
func RenderSummary(w io.Writer, s finance.Summary, opts Options) {
	f := opts.Currency
	fmt.Fprintf(w, "Summary for %s\n\n", PeriodLabel(s.Period))

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Amount"})
	t.AppendRow(table.Row{"Income", f.Format(s.TotalIncome)})
	t.AppendRow(table.Row{"Expenses", f.Format(s.TotalExpense)})
	t.AppendSeparator()
	t.AppendRow(table.Row{text.Bold.Sprint("Balance"), colorSigned(s.Balance, f.Format(s.Balance))})
	t.AppendRow(table.Row{"Bank accounts", f.Format(s.AccountsTotal)})
	t.SetColumnConfigs(rightAlign(2))
	t.Render()

	if len(s.ExpenseByCategory) > 0 || len(s.IncomeByCategory) > 0 {
		fmt.Fprintln(w)
		t = newTable(w)
		t.AppendHeader(table.Row{"Type", "Category", "Amount", "Share"})
		for _, c := range s.IncomeByCategory {
			t.AppendRow(table.Row{"income", c.Category, f.Format(c.Total), money.FormatPercent(finance.PercentageUsed(c.Total, s.TotalIncome))})
		}
		for _, c := range s.ExpenseByCategory {
			t.AppendRow(table.Row{"expense", c.Category, f.Format(c.Total), money.FormatPercent(finance.PercentageUsed(c.Total, s.TotalExpense))})
		}
		t.SetColumnConfigs(rightAlign(3, 4))
		t.Render()
	}

	if len(s.Cards) > 0 {
		fmt.Fprintln(w)
		RenderCards(w, s.Cards, opts)
	}
}

// RenderCards prints each card's limit, spend and utilization.
func RenderCards(w io.Writer, cards []finance.CardSummary, opts Options) {
	f := opts.Currency
	t := newTable(w)
	t.AppendHeader(table.Row{"Card", "Limit", "Spent", "Available", "Used"})
	for _, c := range cards {
		u := c.Utilization
		name := c.Card.Name
		if c.Card.LastFour != "" {
			name += " *" + c.Card.LastFour
		}
		t.AppendRow(table.Row{
			name,
			f.Format(u.Limit),
			f.Format(u.Spend),
			colorSigned(u.AvailableCredit, f.Format(u.AvailableCredit)),
			usage(u, opts.AlertUtilization),
		})
	}
	t.SetColumnConfigs(rightAlign(2, 3, 4, 5))
	t.Render()
}

// RenderCredit prints a single utilization snapshot.
func RenderCredit(w io.Writer, u finance.CreditUtilization, opts Options) {
	RenderCards(w, []finance.CardSummary{{Card: model.CreditCard{Name: "-"}, Utilization: u}}, opts)
}

// RenderInstallments prints a dated installment schedule with its total.
func RenderInstallments(w io.Writer, schedule []finance.Installment, opts Options) {
	f := opts.Currency
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Due", "Amount"})
	total := decimal.Zero
	for _, in := range schedule {
		t.AppendRow(table.Row{in.Number, in.Due.Format(dateFormat), f.Format(in.Amount)})
		total = total.Add(in.Amount)
	}
	t.AppendFooter(table.Row{"", text.Bold.Sprint("Total"), text.Bold.Sprint(f.Format(total))})
	t.SetColumnConfigs(rightAlign(1, 3))
	t.Render()
}

// RenderIncomes lists incomes with a total footer.
func RenderIncomes(w io.Writer, incomes []model.Income, opts Options) {
	f := opts.Currency
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Description", "Category", "Value"})
	for _, i := range incomes {
		t.AppendRow(table.Row{shortID(i.ID), i.Date.Format(dateFormat), i.Description, i.Category, f.Format(i.Value)})
	}
	total := money.Round(finance.Sum(model.Incomes(incomes)))
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Total"), text.Bold.Sprint(f.Format(total))})
	t.SetColumnConfigs(rightAlign(5))
	t.Render()
}

// RenderExpenses lists expenses with a total footer. cardNames maps card IDs
// to display names.
func RenderExpenses(w io.Writer, expenses []model.Expense, cardNames map[string]string, opts Options) {
	f := opts.Currency
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Description", "Category", "Card", "Value"})
	for _, e := range expenses {
		card := cardNames[e.CardID]
		if card == "" && e.CardID != "" {
			card = shortID(e.CardID)
		}
		t.AppendRow(table.Row{shortID(e.ID), e.Date.Format(dateFormat), e.Description, e.Category, card, f.Format(e.Value)})
	}
	total := money.Round(finance.Sum(model.Expenses(expenses)))
	t.AppendFooter(table.Row{"", "", "", "", text.Bold.Sprint("Total"), text.Bold.Sprint(f.Format(total))})
	t.SetColumnConfigs(rightAlign(6))
	t.Render()
}

// RenderAccounts lists bank accounts with their combined balance.
func RenderAccounts(w io.Writer, accounts []model.BankAccount, opts Options) {
	f := opts.Currency
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Institution", "Type", "Balance"})
	total := decimal.Zero
	for _, a := range accounts {
		t.AppendRow(table.Row{shortID(a.ID), a.Name, a.Institution, string(a.Type), colorSigned(a.Balance, f.Format(a.Balance))})
		total = total.Add(a.Balance)
	}
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Total"), text.Bold.Sprint(f.Format(total))})
	t.SetColumnConfigs(rightAlign(5))
	t.Render()
}

// RenderActivity lists activity log entries in local time.
func RenderActivity(w io.Writer, entries []activitylog.Entry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Time", "Action", "Kind", "Record", "Details"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Timestamp.Local().Format("2006-01-02 15:04"), string(e.Action), e.Kind, shortID(e.RecordID), e.Details})
	}
	t.Render()
}

func usage(u finance.CreditUtilization, alert decimal.Decimal) string {
	s := money.FormatPercent(u.PercentageUsed)
	switch {
	case u.OverLimit:
		return text.FgRed.Sprint(s + " OVER")
	case alert.IsPositive() && u.PercentageUsed.GreaterThanOrEqual(alert):
		return text.FgYellow.Sprint(s)
	}
	return s
}

func colorSigned(d decimal.Decimal, s string) string {
	if d.IsNegative() {
		return text.FgRed.Sprint(s)
	}
	return s
}

// shortID trims UUIDs to their first block for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
