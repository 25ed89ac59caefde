package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
)

// column lists the header names a bank may use for one field, most specific
// first. Names are lower case.
type column []string

// row is one data row of a bank CSV, addressed by header name.
type row struct {
	fields []string
	cols   map[string]int
}

// get returns the trimmed value of the first header in c present in the file.
func (r row) get(c column) string {
	for _, name := range c {
		if i, ok := r.cols[name]; ok && i < len(r.fields) {
			return strings.TrimSpace(r.fields[i])
		}
	}
	return ""
}

// readTable reads a CSV whose first row names its columns and converts each
// data row with conv. Header names are matched without regard to case, so
// banks may reorder or add columns freely. Every column in required must be
// present.
func readTable(r io.Reader, format string, required []column, conv func(row) (model.BankTransaction, error)) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", format, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range required {
		if !hasColumn(cols, c) {
			return nil, fmt.Errorf("%s CSV has no %q column", format, c[0])
		}
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := conv(row{fields: rec, cols: cols})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func hasColumn(cols map[string]int, c column) bool {
	for _, name := range c {
		if _, ok := cols[name]; ok {
			return true
		}
	}
	return false
}

// statementLine is a bank row before parsing.
type statementLine struct {
	date, description, amount, kind string
}

// transaction parses a statement line from source, whose dates use layout.
func (l statementLine) transaction(source, layout string) (model.BankTransaction, error) {
	date, err := time.Parse(layout, l.date)
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", l.date, err)
	}
	amount, err := money.Parse(l.amount)
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount: %w", err)
	}
	return model.BankTransaction{
		Date:        date,
		Description: l.description,
		Amount:      amount,
		Reference:   reference(source, date, l.description),
		Type:        l.kind,
	}, nil
}

// reference builds an ID like chase_20250103_GITHUBPROS from the source,
// date and the first ten ASCII letters or digits of the description.
func reference(source string, date time.Time, desc string) string {
	var b strings.Builder
	for i := 0; i < len(desc) && b.Len() < 10; i++ {
		if c := desc[i]; c < utf8.RuneSelf && (unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))) {
			b.WriteByte(c)
		}
	}
	return source + "_" + date.Format("20060102") + "_" + b.String()
}
