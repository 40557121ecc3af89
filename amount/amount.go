// Package amount declares the (number, currency) pair every other package in
// this module is built on. Numbers are exact decimals; no floating point value
// ever enters an Amount.
package amount

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPattern matches a currency or commodity symbol such as USD, GOOG or
// VBMPX.
const CurrencyPattern = `[A-Z][A-Z0-9'._-]{0,22}[A-Z0-9]|[A-Z]`

// NumberPattern matches a number with optional sign and thousands separators.
const NumberPattern = `[+-]?\s*[0-9,]*(?:\.[0-9]*)?`

var (
	amountRegex   = regexp.MustCompile(`^\s*(` + NumberPattern + `)\s+(` + CurrencyPattern + `)\s*$`)
	currencyRegex = regexp.MustCompile(`^(?:` + CurrencyPattern + `)$`)
	numberCleaner = strings.NewReplacer(",", "", " ", "")
)

// IsCurrency reports whether s is a valid currency symbol.
func IsCurrency(s string) bool {
	return currencyRegex.MatchString(s)
}

// Amount is a decimal number together with the currency it is expressed in.
type Amount struct {
	Number   decimal.Decimal
	Currency string
}

// Null is the zero amount without a currency. It sorts before any other
// amount with a zero number and stands in for an absent cost when ordering.
var Null = Amount{}

// New creates a new Amount.
func New(number decimal.Decimal, currency string) Amount {
	return Amount{Number: number, Currency: currency}
}

// NewPtr creates a new Amount and returns a pointer to it, for optional
// fields such as costs and prices.
func NewPtr(number decimal.Decimal, currency string) *Amount {
	a := New(number, currency)
	return &a
}

// ParseNumber converts a number string, possibly with thousands commas or
// inner spaces, into a decimal. An empty string is zero.
func ParseNumber(s string) (decimal.Decimal, error) {
	clean := numberCleaner.Replace(s)
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d, nil
}

// FromString parses "<number> <currency>", e.g. "100.50 USD".
func FromString(s string) (Amount, error) {
	match := amountRegex.FindStringSubmatch(s)
	if match == nil {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	number, err := ParseNumber(match[1])
	if err != nil {
		return Amount{}, err
	}
	return New(number, match[2]), nil
}

// MustParse is like FromString but panics on error.
// Use only in tests or with literals known to be valid.
func MustParse(s string) Amount {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Mul returns the amount multiplied by n, keeping its currency.
func (a Amount) Mul(n decimal.Decimal) Amount {
	return Amount{Number: a.Number.Mul(n), Currency: a.Currency}
}

// Neg returns the amount with its number negated.
func (a Amount) Neg() Amount {
	return Amount{Number: a.Number.Neg(), Currency: a.Currency}
}

// IsZero reports whether the number is zero, regardless of currency. A nil
// amount is zero, so optional fields such as prices can be inspected by repr.
func (a *Amount) IsZero() bool {
	return a == nil || a.Number.IsZero()
}

// Equal reports whether both amounts have the same currency and numerically
// equal numbers ("1.0" equals "1.00").
func (a Amount) Equal(b Amount) bool {
	return a.Currency == b.Currency && a.Number.Equal(b.Number)
}

// Compare orders amounts by number, then currency.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b Amount) int {
	if c := a.Number.Cmp(b.Number); c != 0 {
		return c
	}
	return strings.Compare(a.Currency, b.Currency)
}

// String renders the amount as "<number> <currency>".
func (a Amount) String() string {
	if a.Currency == "" {
		return a.Number.String()
	}
	return a.Number.String() + " " + a.Currency
}
