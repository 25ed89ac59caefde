package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// Sheet names in exported workbooks.
const (
	SheetSummary  = "Summary"
	SheetIncomes  = "Incomes"
	SheetExpenses = "Expenses"
	SheetCards    = "Cards"
)

// WriteXLSX saves a workbook with the summary, the period's incomes and
// expenses, and card utilization. Amounts are written as numbers rounded to
// cents so spreadsheet formulas keep working.
func WriteXLSX(path string, s finance.Summary, incomes []model.Income, expenses []model.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	summaryRows := [][]any{
		{"Period", PeriodLabel(s.Period)},
		{"Income", cents(s.TotalIncome)},
		{"Expenses", cents(s.TotalExpense)},
		{"Balance", cents(s.Balance)},
		{"Bank accounts", cents(s.AccountsTotal)},
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return err
	}

	incomeRows := [][]any{{"ID", "Date", "Description", "Category", "Value"}}
	for _, i := range incomes {
		if s.Period.Contains(i.Date) {
			incomeRows = append(incomeRows, []any{i.ID, i.Date.Format(dateFormat), i.Description, i.Category, cents(i.Value)})
		}
	}
	if err := writeSheet(f, SheetIncomes, incomeRows); err != nil {
		return err
	}

	expenseRows := [][]any{{"ID", "Date", "Description", "Category", "Card", "Value"}}
	for _, e := range expenses {
		if s.Period.Contains(e.Date) {
			expenseRows = append(expenseRows, []any{e.ID, e.Date.Format(dateFormat), e.Description, e.Category, e.CardID, cents(e.Value)})
		}
	}
	if err := writeSheet(f, SheetExpenses, expenseRows); err != nil {
		return err
	}

	cardRows := [][]any{{"Card", "Limit", "Spent", "Available", "Used %"}}
	for _, c := range s.Cards {
		u := c.Utilization
		cardRows = append(cardRows, []any{c.Card.Name, cents(u.Limit), cents(u.Spend), cents(u.AvailableCredit), cents(u.PercentageUsed)})
	}
	if err := writeSheet(f, SheetCards, cardRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func cents(d decimal.Decimal) float64 {
	return money.Round(d).InexactFloat64()
}
