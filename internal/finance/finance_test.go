package finance

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
}

func TestSum(t *testing.T) {
	items := model.Incomes([]model.Income{{Value: dec("3000")}, {Value: dec("500")}})
	assertDec(t, "3500", Sum(items))
}

func TestSum_Empty(t *testing.T) {
	assertDec(t, "0", Sum(nil))
	assertDec(t, "0", Sum([]model.LineItem{}))
}

func TestSum_NoRounding(t *testing.T) {
	items := model.Expenses([]model.Expense{{Value: dec("0.001")}, {Value: dec("0.002")}})
	assertDec(t, "0.003", Sum(items))
}

func TestSum_MatchesManualTotal(t *testing.T) {
	values := []string{"19.99", "0.01", "1200.50", "7.25", "-3.10"}
	var items []model.LineItem
	want := decimal.Zero
	for _, v := range values {
		items = append(items, model.Expense{Value: dec(v)})
		want = want.Add(dec(v))
	}
	assert.True(t, want.Equal(Sum(items)))
}

func TestSumValues(t *testing.T) {
	got, err := SumValues([]string{"3000", "500,00", " 0.5 "})
	require.NoError(t, err)
	assertDec(t, "3500.5", got)

	got, err = SumValues(nil)
	require.NoError(t, err)
	assertDec(t, "0", got)
}

func TestSumValues_NotANumber(t *testing.T) {
	_, err := SumValues([]string{"10", "ten"})
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrNotANumber)
	assert.Contains(t, err.Error(), "value 1")
}

func TestBalance(t *testing.T) {
	tests := []struct {
		income, expense, want string
	}{
		{"3500", "1000", "2500"},
		{"1000", "1200.50", "-200.5"},
		{"0.005", "0", "0.01"},
		{"10.004", "0.001", "10"},
		{"0", "0", "0"},
	}
	for _, tt := range tests {
		got := Balance(dec(tt.income), dec(tt.expense))
		assertDec(t, tt.want, got, "Balance(%s, %s)", tt.income, tt.expense)
		assert.True(t, money.Round(dec(tt.income).Sub(dec(tt.expense))).Equal(got))
	}
}
