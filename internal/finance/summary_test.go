package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletguard/walletguard/internal/model"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sampleWallet() ([]model.Income, []model.Expense, []model.CreditCard, []model.BankAccount) {
	incomes := []model.Income{
		{ID: "i1", Date: day(2025, 1, 5), Description: "Salary", Category: "salary", Value: dec("3000")},
		{ID: "i2", Date: day(2025, 1, 20), Description: "Freelance", Category: "freelance", Value: dec("500")},
		{ID: "i3", Date: day(2025, 2, 5), Description: "Salary", Category: "salary", Value: dec("3000")},
	}
	expenses := []model.Expense{
		{ID: "e1", Date: day(2025, 1, 7), Description: "Rent", Category: "housing", Value: dec("800")},
		{ID: "e2", Date: day(2025, 1, 9), Description: "Groceries", Category: "food", Value: dec("150.25"), CardID: "c1"},
		{ID: "e3", Date: day(2025, 1, 12), Description: "Dinner", Value: dec("49.75"), CardID: "c1"},
		{ID: "e4", Date: day(2025, 2, 1), Description: "Laptop", Category: "tech", Value: dec("5200"), CardID: "c1"},
	}
	cards := []model.CreditCard{
		{ID: "c1", Name: "Visa", Limit: dec("5000"), ClosingDay: 1, DueDay: 10},
		{ID: "c2", Name: "Store card", Limit: dec("0"), ClosingDay: 1, DueDay: 10},
	}
	accounts := []model.BankAccount{
		{ID: "a1", Name: "Checking", Type: model.AccountTypeChecking, Balance: dec("1200.10")},
		{ID: "a2", Name: "Savings", Type: model.AccountTypeSavings, Balance: dec("-0.10")},
	}
	return incomes, expenses, cards, accounts
}

func TestSummarize_Month(t *testing.T) {
	inc, exp, cards, accts := sampleWallet()
	s := Summarize(inc, exp, cards, accts, Period{Year: 2025, Month: 1})

	assertDec(t, "3500", s.TotalIncome)
	assertDec(t, "1000", s.TotalExpense)
	assertDec(t, "2500", s.Balance)
	assertDec(t, "1200", s.AccountsTotal)

	require.Len(t, s.ExpenseByCategory, 3)
	assert.Equal(t, "housing", s.ExpenseByCategory[0].Category)
	assert.Equal(t, "food", s.ExpenseByCategory[1].Category)
	assert.Equal(t, "uncategorized", s.ExpenseByCategory[2].Category)

	require.Len(t, s.IncomeByCategory, 2)
	assert.Equal(t, "salary", s.IncomeByCategory[0].Category)

	require.Len(t, s.Cards, 2)
	assertDec(t, "200", s.Cards[0].Utilization.Spend)
	assertDec(t, "4800", s.Cards[0].Utilization.AvailableCredit)
	assertDec(t, "4", s.Cards[0].Utilization.PercentageUsed)
	assertDec(t, "0", s.Cards[1].Utilization.PercentageUsed)
}

func TestSummarize_OverLimitMonth(t *testing.T) {
	inc, exp, cards, accts := sampleWallet()
	s := Summarize(inc, exp, cards, accts, Period{Year: 2025, Month: 2})

	assertDec(t, "-2200", s.Balance)
	require.NotEmpty(t, s.Cards)
	assert.True(t, s.Cards[0].Utilization.OverLimit)
	assertDec(t, "-200", s.Cards[0].Utilization.AvailableCredit)
	assertDec(t, "104", s.Cards[0].Utilization.PercentageUsed)
}

func TestSummarize_AllTime(t *testing.T) {
	inc, exp, cards, accts := sampleWallet()
	s := Summarize(inc, exp, cards, accts, Period{})

	assert.True(t, s.Period.IsZero())
	assertDec(t, "6500", s.TotalIncome)
	assertDec(t, "6200", s.TotalExpense)
	assertDec(t, "300", s.Balance)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, nil, Period{Year: 2025, Month: 3})
	assertDec(t, "0", s.TotalIncome)
	assertDec(t, "0", s.Balance)
	assert.Empty(t, s.Cards)
	assert.Empty(t, s.ExpenseByCategory)
}

func TestPeriodContains(t *testing.T) {
	p := Period{Year: 2025, Month: 1}
	assert.True(t, p.Contains(day(2025, 1, 31)))
	assert.False(t, p.Contains(day(2025, 2, 1)))
	assert.False(t, p.Contains(day(2024, 1, 15)))
	assert.True(t, Period{}.Contains(day(1999, 12, 31)))
}
