package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/money"
)

// LineItem is any record carrying a monetary value that can be totalled.
type LineItem interface {
	Amount() decimal.Decimal
}

// Income is money received.
type Income struct {
	ID          string
	Date        time.Time
	Description string
	Category    string
	Value       decimal.Decimal
}

// Amount implements LineItem.
func (i Income) Amount() decimal.Decimal { return i.Value }

// Validate checks the fields a user must supply.
func (i Income) Validate() error {
	return validateItem("income", i.Date, i.Description, i.Value)
}

// Expense is money spent, optionally charged to a credit card.
type Expense struct {
	ID          string
	Date        time.Time
	Description string
	Category    string
	Value       decimal.Decimal
	CardID      string // empty when not paid by card
}

// Amount implements LineItem.
func (e Expense) Amount() decimal.Decimal { return e.Value }

// Validate checks the fields a user must supply.
func (e Expense) Validate() error {
	return validateItem("expense", e.Date, e.Description, e.Value)
}

// Incomes adapts a slice of incomes for totalling.
func Incomes(in []Income) []LineItem {
	items := make([]LineItem, len(in))
	for i, v := range in {
		items[i] = v
	}
	return items
}

// Expenses adapts a slice of expenses for totalling.
func Expenses(in []Expense) []LineItem {
	items := make([]LineItem, len(in))
	for i, v := range in {
		items[i] = v
	}
	return items
}

func validateItem(kind string, date time.Time, desc string, value decimal.Decimal) error {
	if date.IsZero() {
		return &ValidationError{Kind: kind, Field: "date", Reason: "is required"}
	}
	if strings.TrimSpace(desc) == "" {
		return &ValidationError{Kind: kind, Field: "description", Reason: "is required"}
	}
	if len(desc) > maxDescription {
		return &ValidationError{Kind: kind, Field: "description", Reason: fmt.Sprintf("longer than %d characters", maxDescription)}
	}
	return validateAmount(kind, "value", value, false)
}

func validateAmount(kind, field string, v decimal.Decimal, allowZero bool) error {
	if v.IsNegative() || (!allowZero && v.IsZero()) {
		return &ValidationError{Kind: kind, Field: field, Reason: fmt.Sprintf("must be positive, got %s", v)}
	}
	if !money.HasCents(v) {
		return &ValidationError{Kind: kind, Field: field, Reason: fmt.Sprintf("%s has more than 2 decimal places", v)}
	}
	return nil
}
