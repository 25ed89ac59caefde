package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// CSV headers, one per wallet file.
const (
	IncomeHeader  = "id,date,description,category,value"
	ExpenseHeader = "id,date,description,category,value,card_id"
	CardHeader    = "id,name,last_four,limit,closing_day,due_day"
	AccountHeader = "id,name,institution,type,balance"
)

const dateFormat = "2006-01-02"

// ReadIncomes reads incomes.csv.
func ReadIncomes(r io.Reader) ([]model.Income, error) {
	return readRecords(r, "incomes", IncomeHeader, UnmarshalIncome)
}

// WriteIncomes writes incomes.csv (including header).
func WriteIncomes(w io.Writer, incomes []model.Income) error {
	return writeRecords(w, IncomeHeader, incomes, MarshalIncome)
}

// ReadExpenses reads expenses.csv.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	return readRecords(r, "expenses", ExpenseHeader, UnmarshalExpense)
}

// WriteExpenses writes expenses.csv (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	return writeRecords(w, ExpenseHeader, expenses, MarshalExpense)
}

// ReadCards reads cards.csv.
func ReadCards(r io.Reader) ([]model.CreditCard, error) {
	return readRecords(r, "cards", CardHeader, UnmarshalCard)
}

// WriteCards writes cards.csv (including header).
func WriteCards(w io.Writer, cards []model.CreditCard) error {
	return writeRecords(w, CardHeader, cards, MarshalCard)
}

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.BankAccount, error) {
	return readRecords(r, "accounts", AccountHeader, UnmarshalAccount)
}

// WriteAccounts writes accounts.csv (including header).
func WriteAccounts(w io.Writer, accounts []model.BankAccount) error {
	return writeRecords(w, AccountHeader, accounts, MarshalAccount)
}

// MarshalIncome converts an Income to a CSV row.
func MarshalIncome(i model.Income) []string {
	return []string{i.ID, i.Date.Format(dateFormat), i.Description, i.Category, i.Value.StringFixed(money.Places)}
}

// UnmarshalIncome converts a CSV row to an Income.
func UnmarshalIncome(record []string) (model.Income, error) {
	if err := checkFields(record, IncomeHeader); err != nil {
		return model.Income{}, err
	}
	date, err := parseDate(record[1])
	if err != nil {
		return model.Income{}, err
	}
	value, err := parseAmount("value", record[4])
	if err != nil {
		return model.Income{}, err
	}
	return model.Income{
		ID:          record[0],
		Date:        date,
		Description: record[2],
		Category:    record[3],
		Value:       value,
	}, nil
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	return []string{e.ID, e.Date.Format(dateFormat), e.Description, e.Category, e.Value.StringFixed(money.Places), e.CardID}
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if err := checkFields(record, ExpenseHeader); err != nil {
		return model.Expense{}, err
	}
	date, err := parseDate(record[1])
	if err != nil {
		return model.Expense{}, err
	}
	value, err := parseAmount("value", record[4])
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		ID:          record[0],
		Date:        date,
		Description: record[2],
		Category:    record[3],
		Value:       value,
		CardID:      record[5],
	}, nil
}

// MarshalCard converts a CreditCard to a CSV row.
func MarshalCard(c model.CreditCard) []string {
	return []string{
		c.ID,
		c.Name,
		c.LastFour,
		c.Limit.StringFixed(money.Places),
		strconv.Itoa(c.ClosingDay),
		strconv.Itoa(c.DueDay),
	}
}

// UnmarshalCard converts a CSV row to a CreditCard.
func UnmarshalCard(record []string) (model.CreditCard, error) {
	if err := checkFields(record, CardHeader); err != nil {
		return model.CreditCard{}, err
	}
	limit, err := parseAmount("limit", record[3])
	if err != nil {
		return model.CreditCard{}, err
	}
	closing, err := strconv.Atoi(record[4])
	if err != nil {
		return model.CreditCard{}, fmt.Errorf("parsing closing_day %q: %w", record[4], err)
	}
	due, err := strconv.Atoi(record[5])
	if err != nil {
		return model.CreditCard{}, fmt.Errorf("parsing due_day %q: %w", record[5], err)
	}
	return model.CreditCard{
		ID:         record[0],
		Name:       record[1],
		LastFour:   record[2],
		Limit:      limit,
		ClosingDay: closing,
		DueDay:     due,
	}, nil
}

// MarshalAccount converts a BankAccount to a CSV row.
func MarshalAccount(a model.BankAccount) []string {
	return []string{a.ID, a.Name, a.Institution, string(a.Type), a.Balance.StringFixed(money.Places)}
}

// UnmarshalAccount converts a CSV row to a BankAccount.
func UnmarshalAccount(record []string) (model.BankAccount, error) {
	if err := checkFields(record, AccountHeader); err != nil {
		return model.BankAccount{}, err
	}
	balance, err := parseAmount("balance", record[4])
	if err != nil {
		return model.BankAccount{}, err
	}
	return model.BankAccount{
		ID:          record[0],
		Name:        record[1],
		Institution: record[2],
		Type:        model.AccountType(record[3]),
		Balance:     balance,
	}, nil
}

func readRecords[T any](r io.Reader, name, header string, unmarshal func([]string) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", name, err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	// Skip header row.
	var out []T
	for i, rec := range records[1:] {
		v, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeRecords[T any](w io.Writer, header string, items []T, marshal func(T) []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, it := range items {
		if err := cw.Write(marshal(it)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func numFields(header string) int {
	return strings.Count(header, ",") + 1
}

func checkFields(record []string, header string) error {
	if n := numFields(header); len(record) != n {
		return fmt.Errorf("expected %d fields, got %d", n, len(record))
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", field, err)
	}
	return d, nil
}

// appendRecords writes rows without a header.
func appendRecords(w io.Writer, rows [][]string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
