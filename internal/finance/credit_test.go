package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walletguard/walletguard/internal/money"
)

func TestAvailableCredit(t *testing.T) {
	assertDec(t, "-200.00", AvailableCredit(dec("5000"), dec("5200")))
	assertDec(t, "4999.99", AvailableCredit(dec("5000"), dec("0.01")))
	assertDec(t, "0", AvailableCredit(dec("0"), dec("0")))

	for _, tt := range [][2]string{{"1000", "333.335"}, {"0", "12.5"}, {"250.5", "250.5"}} {
		limit, spend := dec(tt[0]), dec(tt[1])
		assert.True(t, money.Round(limit.Sub(spend)).Equal(AvailableCredit(limit, spend)))
	}
}

func TestPercentageUsed(t *testing.T) {
	assertDec(t, "104.00", PercentageUsed(dec("5200"), dec("5000")))
	assertDec(t, "33.33", PercentageUsed(dec("1"), dec("3")))
	assertDec(t, "66.67", PercentageUsed(dec("2"), dec("3")))
	assertDec(t, "0", PercentageUsed(dec("0"), dec("5000")))
}

func TestPercentageUsed_ZeroLimit(t *testing.T) {
	for _, spend := range []string{"100", "0", "-5", "999999999.99"} {
		assertDec(t, "0", PercentageUsed(dec(spend), dec("0")), "spend=%s", spend)
	}
}

func TestUtilization(t *testing.T) {
	u := Utilization(dec("5000"), dec("5200"))
	assertDec(t, "-200", u.AvailableCredit)
	assertDec(t, "104", u.PercentageUsed)
	assert.True(t, u.OverLimit)

	u = Utilization(dec("5000"), dec("1250"))
	assertDec(t, "3750", u.AvailableCredit)
	assertDec(t, "25", u.PercentageUsed)
	assert.False(t, u.OverLimit)

	u = Utilization(dec("0"), dec("0"))
	assertDec(t, "0", u.PercentageUsed)
	assert.False(t, u.OverLimit)
}
