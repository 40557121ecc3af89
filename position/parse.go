package position

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/shopspring/decimal"
)

// The compact notation is a miniature of the ledger syntax used to build
// fixtures:
//
//	<number> <currency> [{<per-unit>[ # <total>] <cost-currency>, <date>, "<label>", *}]
//
// Cost components are separated by commas or slashes. Labels and the merge
// marker are accepted but not retained on the resulting lot.
var (
	positionRegex = regexp.MustCompile(`^\s*(` + amount.NumberPattern + `)\s+(` + amount.CurrencyPattern + `)(?:\s+\{([^}]*)\})?\s*$`)
	compoundRegex = regexp.MustCompile(`^(` + amount.NumberPattern + `)\s*(?:#\s*(` + amount.NumberPattern + `))?\s+(` + amount.CurrencyPattern + `)$`)
	dateRegex     = regexp.MustCompile(`^(\d{4})[-/](\d{2})[-/](\d{2})$`)
	slashDate     = regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})`)
	labelRegex    = regexp.MustCompile(`^"[^"]*"$`)
	separators    = regexp.MustCompile(`[,/]`)
)

// CostPrecision is the number of decimal places kept when a per-unit cost is
// derived from a total cost.
const CostPrecision = 28

var errZeroTotal = errors.New("total cost requires a non-zero number of units")

// FromString parses a position from its compact notation, e.g.
// "10 GOOG {500 USD, 2014-01-01}". Malformed input yields a *ParseError.
func FromString(s string) (Position, error) {
	match := positionRegex.FindStringSubmatch(s)
	if match == nil {
		return Position{}, &ParseError{Input: s}
	}

	number, err := amount.ParseNumber(match[1])
	if err != nil {
		return Position{}, &ParseError{Input: s, Err: err}
	}
	currency := match[2]

	var (
		cost *amount.Amount
		date time.Time
	)
	for _, expr := range splitCostComponents(match[3]) {
		if m := compoundRegex.FindStringSubmatch(expr); m != nil {
			c, err := parseCompoundCost(number, m[1], m[2], m[3])
			if err != nil {
				return Position{}, &ParseError{Input: s, Component: expr, Err: err}
			}
			cost = &c
			continue
		}

		if m := dateRegex.FindStringSubmatch(expr); m != nil {
			d, err := time.Parse(DateLayout, m[1]+"-"+m[2]+"-"+m[3])
			if err != nil {
				return Position{}, &ParseError{Input: s, Component: expr, Err: err}
			}
			date = d
			continue
		}

		if labelRegex.MatchString(expr) || expr == "*" {
			continue
		}

		return Position{}, &ParseError{Input: s, Component: expr}
	}

	return New(NewLot(currency, cost, date), number), nil
}

// MustParse is like FromString but panics on error.
// Use only in tests or with literals known to be valid.
func MustParse(s string) Position {
	p, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// splitCostComponents splits the contents of a cost block into trimmed,
// non-empty components. Slash-separated dates are kept whole.
func splitCostComponents(block string) []string {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	block = slashDate.ReplaceAllString(block, "$1-$2-$3")
	parts := separators.Split(block, -1)
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		components = append(components, strings.TrimSpace(part))
	}
	return components
}

// parseCompoundCost computes the per-unit cost from a per-unit number and an
// optional total number: (units * per + total) / units, rounded to
// CostPrecision places.
func parseCompoundCost(units decimal.Decimal, perStr, totalStr, currency string) (amount.Amount, error) {
	per, err := amount.ParseNumber(perStr)
	if err != nil {
		return amount.Amount{}, err
	}
	total, err := amount.ParseNumber(totalStr)
	if err != nil {
		return amount.Amount{}, err
	}
	if !total.IsZero() {
		if units.IsZero() {
			return amount.Amount{}, errZeroTotal
		}
		per = units.Mul(per).Add(total).DivRound(units, CostPrecision)
	}
	return amount.New(per, currency), nil
}
