package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies bank accounts.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
)

// BankAccount is a deposit account with a user-maintained balance.
type BankAccount struct {
	ID          string
	Name        string
	Institution string
	Type        AccountType
	Balance     decimal.Decimal // may be negative (overdraft)
}

// Validate checks the fields a user must supply.
func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Kind: "account", Field: "name", Reason: "is required"}
	}
	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment, AccountTypeCash:
	default:
		return &ValidationError{Kind: "account", Field: "type", Reason: "must be checking, savings, investment or cash"}
	}
	return validateAmount("account", "balance", a.Balance.Abs(), true)
}
