package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for one currency in one locale.
type Formatter struct {
	Code    string
	unit    currency.Unit
	printer *message.Printer
	group   string // thousands separator, empty when the locale has none
	point   string // decimal separator
}

// symbolOverrides replaces x/text narrow symbols that read poorly.
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// prefixCurrencies lists currencies whose symbol goes before the amount.
// x/text does not expose CLDR symbol placement.
var prefixCurrencies = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"BRL": true, "MXN": true, "HKD": true, "SGD": true, "NZD": true, "INR": true,
}

// NewFormatter returns a Formatter for an ISO 4217 code and a BCP 47 locale.
// An empty locale falls back to English.
func NewFormatter(code, locale string) (Formatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("unknown currency %q: %w", code, err)
	}

	tag := language.English
	if locale != "" {
		tag, err = language.Parse(strings.Replace(locale, "_", "-", 1))
		if err != nil {
			return Formatter{}, fmt.Errorf("parsing locale %q: %w", locale, err)
		}
	}

	printer := message.NewPrinter(tag)
	group, point := separators(printer)
	return Formatter{
		Code:    code,
		unit:    unit,
		printer: printer,
		group:   group,
		point:   point,
	}, nil
}

// separators reads the locale's grouping and decimal marks off a formatted
// sample, so amounts can be laid out from exact decimal digits.
func separators(p *message.Printer) (group, point string) {
	sample := p.Sprint(number.Decimal(1234567.25, number.MinFractionDigits(Places), number.MaxFractionDigits(Places)))

	var marks []string
	var cur strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if cur.Len() > 0 {
				marks = append(marks, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	switch len(marks) {
	case 0:
		return ",", "."
	case 1:
		return "", marks[0]
	}
	return marks[0], marks[len(marks)-1]
}

// Number renders d rounded to cents with the locale's grouping, without a
// symbol. Digits come from the decimal itself, so large amounts stay exact.
func (f Formatter) Number(d decimal.Decimal) string {
	d = Round(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(Places), ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	if f.point == "" {
		b.WriteString(".")
	} else {
		b.WriteString(f.point)
	}
	b.WriteString(frac)
	return b.String()
}

// Format renders d with the currency symbol, e.g. "$1,234.50" or "-1 234,50 kr".
func (f Formatter) Format(d decimal.Decimal) string {
	sign := ""
	if Round(d).IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	n := f.Number(d)
	sym := f.Symbol()
	if prefixCurrencies[f.Code] {
		return sign + sym + n
	}
	return sign + n + " " + sym
}

// Symbol returns the narrow currency symbol.
func (f Formatter) Symbol() string {
	if sym, ok := symbolOverrides[f.Code]; ok {
		return sym
	}
	return f.printer.Sprint(currency.NarrowSymbol(f.unit))
}

// FormatPercent renders a percentage with two decimals, e.g. "104.00%".
func FormatPercent(d decimal.Decimal) string {
	return Round(d).StringFixed(Places) + "%"
}
