// Package finance derives totals, balances, installment plans and credit
// utilization from wallet records. Every function is pure and safe for
// concurrent use.
package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// ErrInvalidArgument is returned for inputs a computation is undefined for.
var ErrInvalidArgument = errors.New("invalid argument")

// Sum adds the amounts of items. It does not round; an empty slice sums to 0.
func Sum(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// SumValues adds amounts that arrive as text. The first value that is not a
// number stops the sum with an error wrapping money.ErrNotANumber.
func SumValues(values []string) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, v := range values {
		d, err := money.Parse(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value %d: %w", i, err)
		}
		total = total.Add(d)
	}
	return total, nil
}

// Balance returns income minus expense in cents. A negative balance means
// overspending.
func Balance(totalIncome, totalExpense decimal.Decimal) decimal.Decimal {
	return money.Round(totalIncome.Sub(totalExpense))
}
