package finance

import (
	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/money"
)

var hundred = decimal.NewFromInt(100)

// CreditUtilization is a point-in-time view of a card's credit usage.
type CreditUtilization struct {
	Limit           decimal.Decimal
	Spend           decimal.Decimal
	AvailableCredit decimal.Decimal
	PercentageUsed  decimal.Decimal
	OverLimit       bool
}

// AvailableCredit returns limit minus spend in cents. A negative result means
// the card is over its limit.
func AvailableCredit(limit, spend decimal.Decimal) decimal.Decimal {
	return money.Round(limit.Sub(spend))
}

// PercentageUsed returns spend as a percentage of limit, in cents of a
// percent. A zero limit yields 0.
func PercentageUsed(spend, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		return decimal.Zero
	}
	return spend.Mul(hundred).DivRound(limit, money.Places)
}

// Utilization combines AvailableCredit and PercentageUsed.
func Utilization(limit, spend decimal.Decimal) CreditUtilization {
	avail := AvailableCredit(limit, spend)
	return CreditUtilization{
		Limit:           limit,
		Spend:           spend,
		AvailableCredit: avail,
		PercentageUsed:  PercentageUsed(spend, limit),
		OverLimit:       avail.IsNegative(),
	}
}
