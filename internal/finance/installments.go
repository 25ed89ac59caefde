package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/money"
)

// InstallmentPlan splits a total into Count payments. The first Count-1
// payments are InstallmentAmount; the last absorbs the rounding remainder.
type InstallmentPlan struct {
	Count                 int
	InstallmentAmount     decimal.Decimal
	LastInstallmentAmount decimal.Decimal
}

// Installment is one dated payment of a plan.
type Installment struct {
	Number int // 1-based
	Due    time.Time
	Amount decimal.Decimal
}

// SplitInstallments divides total into count installments so that
// InstallmentAmount*(count-1) + LastInstallmentAmount equals total rounded to
// cents.
// A count below 1 is rejected with ErrInvalidArgument.
func SplitInstallments(total decimal.Decimal, count int) (InstallmentPlan, error) {
	if count < 1 {
		return InstallmentPlan{}, fmt.Errorf("%w: installment count must be at least 1, got %d", ErrInvalidArgument, count)
	}

	// Work from the total in cents so the remainder is a whole number of cents.
	total = money.Round(total)
	n := decimal.NewFromInt(int64(count))
	amount := total.DivRound(n, money.Places)
	distributed := amount.Mul(n)
	remainder := money.Round(total.Sub(distributed))

	return InstallmentPlan{
		Count:                 count,
		InstallmentAmount:     amount,
		LastInstallmentAmount: amount.Add(remainder),
	}, nil
}

// Amounts expands the plan into one amount per installment.
func (p InstallmentPlan) Amounts() []decimal.Decimal {
	if p.Count < 1 {
		return nil
	}
	out := make([]decimal.Decimal, p.Count)
	for i := range out {
		out[i] = p.InstallmentAmount
	}
	out[p.Count-1] = p.LastInstallmentAmount
	return out
}

// Total returns the sum of all installments.
func (p InstallmentPlan) Total() decimal.Decimal {
	if p.Count < 1 {
		return decimal.Zero
	}
	return p.InstallmentAmount.Mul(decimal.NewFromInt(int64(p.Count - 1))).Add(p.LastInstallmentAmount)
}

// Schedule dates each installment one calendar month apart starting at
// firstDue. Days past the end of a shorter month fall on its last day, so a
// plan starting Jan 31 is due Feb 28 (or 29), Mar 31, ...
func Schedule(p InstallmentPlan, firstDue time.Time) []Installment {
	amounts := p.Amounts()
	out := make([]Installment, len(amounts))
	for i, a := range amounts {
		out[i] = Installment{
			Number: i + 1,
			Due:    addMonths(firstDue, i),
			Amount: a,
		}
	}
	return out
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
