package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// Period selects a calendar month. The zero Period covers all time.
type Period struct {
	Year  int
	Month int // 1-12
}

// IsZero reports whether p covers all time.
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Contains reports whether t falls inside p.
func (p Period) Contains(t time.Time) bool {
	if p.IsZero() {
		return true
	}
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// CategoryTotal is the amount spent or earned in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CardSummary is the utilization of one card over the period.
type CardSummary struct {
	Card        model.CreditCard
	Utilization CreditUtilization
}

// Summary is the overview shown for a wallet.
type Summary struct {
	Period            Period
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	IncomeByCategory  []CategoryTotal
	ExpenseByCategory []CategoryTotal
	Cards             []CardSummary
	AccountsTotal     decimal.Decimal
}

// Summarize totals the records that fall in period. Card spend is the sum of
// the period's expenses charged to each card. Account balances are current
// values and are not filtered by period.
func Summarize(incomes []model.Income, expenses []model.Expense, cards []model.CreditCard, accounts []model.BankAccount, period Period) Summary {
	var inc []model.Income
	for _, i := range incomes {
		if period.Contains(i.Date) {
			inc = append(inc, i)
		}
	}
	var exp []model.Expense
	spendByCard := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if !period.Contains(e.Date) {
			continue
		}
		exp = append(exp, e)
		if e.CardID != "" {
			spendByCard[e.CardID] = spendByCard[e.CardID].Add(e.Value)
		}
	}

	totalIncome := money.Round(Sum(model.Incomes(inc)))
	totalExpense := money.Round(Sum(model.Expenses(exp)))

	s := Summary{
		Period:            period,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		Balance:           Balance(totalIncome, totalExpense),
		IncomeByCategory:  byCategory(model.Incomes(inc), func(i int) string { return inc[i].Category }),
		ExpenseByCategory: byCategory(model.Expenses(exp), func(i int) string { return exp[i].Category }),
		AccountsTotal:     decimal.Zero,
	}

	for _, c := range cards {
		s.Cards = append(s.Cards, CardSummary{
			Card:        c,
			Utilization: Utilization(c.Limit, money.Round(spendByCard[c.ID])),
		})
	}

	for _, a := range accounts {
		s.AccountsTotal = s.AccountsTotal.Add(a.Balance)
	}
	s.AccountsTotal = money.Round(s.AccountsTotal)

	return s
}

// byCategory groups items by category and orders them by descending total,
// then name. Items without a category are grouped as "uncategorized".
func byCategory(items []model.LineItem, category func(int) string) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for i, it := range items {
		c := category(i)
		if c == "" {
			c = "uncategorized"
		}
		totals[c] = totals[c].Add(it.Amount())
	}

	out := make([]CategoryTotal, 0, len(totals))
	for c, t := range totals {
		out = append(out, CategoryTotal{Category: c, Total: money.Round(t)})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Total.Cmp(out[j].Total); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
