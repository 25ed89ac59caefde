// Package money holds the rounding rule and text parsing used for every
// monetary value in a wallet.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Places is the number of fractional digits money is rounded to.
const Places = 2

// ErrNotANumber is returned when a monetary value cannot be read as a number.
var ErrNotANumber = errors.New("not a number")

var hundred = decimal.NewFromInt(100)

// Round rounds d to cents, half away from zero.
// 1.005 -> 1.01, -1.005 -> -1.01
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// HasCents reports whether d has no more than 2 fractional digits.
func HasCents(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Truncate(0))
}

// Parse reads a monetary amount from text.
//
// A currency symbol or ISO code may lead or trail the number ("$12", "R$ 12",
// "USD 12", "12 kr"), and surrounding spaces are ignored. Either a dot or a
// comma may be the decimal separator: "1.234,56" and "1,234.56" both read as
// 1234.56. A lone comma followed by exactly three digits groups thousands, so
// "5,000" is 5000 while "5,00" is 5. Any other text, including stray letters,
// is rejected with an error wrapping ErrNotANumber. The result is not rounded.
func Parse(s string) (decimal.Decimal, error) {
	raw := s
	notANumber := func() (decimal.Decimal, error) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}

	s = strings.TrimSpace(s)
	s, neg := takeSign(s)
	s = stripCurrency(s)
	if !neg {
		s, neg = takeSign(s)
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	for _, r := range s {
		if !isASCIIDigit(r) && r != '.' && r != ',' {
			return notANumber()
		}
	}
	s, ok := normalizeSeparators(s)
	if !ok {
		return notANumber()
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return notANumber()
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func takeSign(s string) (string, bool) {
	switch {
	case strings.HasPrefix(s, "-"):
		return s[1:], true
	case strings.HasPrefix(s, "+"):
		return s[1:], false
	}
	return s, false
}

// stripCurrency removes one leading and one trailing currency marker: symbol
// runes ("$", "€"), a short uppercase prefix fused to a symbol ("R$", "US$"),
// an ISO 4217 code or a "kr" suffix.
func stripCurrency(s string) string {
	rest := strings.TrimLeftFunc(s, unicode.IsUpper)
	if n := len(s) - len(rest); n > 0 && n <= 3 {
		if after := strings.TrimLeftFunc(rest, isCurrencySymbol); len(after) < len(rest) {
			s = after
		} else if isISOCode(s[:n]) && strings.HasPrefix(rest, " ") {
			s = rest
		}
	}
	s = strings.TrimSpace(strings.TrimLeftFunc(s, isCurrencySymbol))

	s = strings.TrimSpace(strings.TrimRightFunc(s, isCurrencySymbol))
	if i := strings.LastIndexFunc(s, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		if suffix := s[i+size:]; suffix == "kr" || isISOCode(suffix) {
			s = strings.TrimSpace(s[:i])
		}
	}
	return s
}

func isCurrencySymbol(r rune) bool {
	return unicode.Is(unicode.Sc, r)
}

func isISOCode(s string) bool {
	if len(s) != 3 || strings.ToUpper(s) != s {
		return false
	}
	_, err := currency.ParseISO(s)
	return err == nil
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// normalizeSeparators rewrites s, made of digits, dots and commas, into the
// form decimal.NewFromString accepts. It reports false when the separators do
// not form a valid grouped number.
func normalizeSeparators(s string) (string, bool) {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	var point, group string
	switch {
	case dot >= 0 && comma >= 0:
		point, group = ".", ","
		if comma > dot {
			point, group = ",", "."
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 || groupsThousands(s, comma) {
			group = ","
		} else {
			point = ","
		}
	case dot >= 0:
		if strings.Count(s, ".") > 1 {
			group = "."
		} else {
			point = "."
		}
	}

	intPart, frac, hasPoint := s, "", false
	if point != "" {
		if strings.Count(s, point) > 1 {
			return "", false
		}
		intPart, frac, hasPoint = strings.Cut(s, point)
		if group != "" && strings.Contains(frac, group) {
			return "", false
		}
	}
	if group != "" && strings.Contains(intPart, group) {
		groups := strings.Split(intPart, group)
		if len(groups[0]) == 0 || len(groups[0]) > 3 {
			return "", false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", false
			}
		}
		intPart = strings.Join(groups, "")
	}

	switch {
	case intPart == "" && frac == "":
		return "", false
	case intPart == "":
		intPart = "0"
	}
	if !hasPoint || frac == "" {
		return intPart, true
	}
	return intPart + "." + frac, true
}

// groupsThousands reports whether the single comma at i separates thousands:
// exactly three digits follow it and one to three digits, not starting with
// 0, precede it.
func groupsThousands(s string, i int) bool {
	head, tail := s[:i], s[i+1:]
	return len(tail) == 3 && len(head) >= 1 && len(head) <= 3 && head[0] != '0'
}
