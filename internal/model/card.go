package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CreditCard is a card with a credit limit. Its spend is derived from the
// expenses charged to it.
type CreditCard struct {
	ID         string
	Name       string
	LastFour   string
	Limit      decimal.Decimal
	ClosingDay int // day of month the statement closes
	DueDay     int // day of month payment is due
}

// Validate checks the fields a user must supply.
func (c CreditCard) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Kind: "card", Field: "name", Reason: "is required"}
	}
	if c.LastFour != "" {
		if len(c.LastFour) != 4 || strings.Trim(c.LastFour, "0123456789") != "" {
			return &ValidationError{Kind: "card", Field: "last_four", Reason: fmt.Sprintf("%q is not 4 digits", c.LastFour)}
		}
	}
	if err := validateAmount("card", "limit", c.Limit, true); err != nil {
		return err
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return &ValidationError{Kind: "card", Field: "closing_day", Reason: fmt.Sprintf("%d is not a day of month", c.ClosingDay)}
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return &ValidationError{Kind: "card", Field: "due_day", Reason: fmt.Sprintf("%d is not a day of month", c.DueDay)}
	}
	return nil
}
