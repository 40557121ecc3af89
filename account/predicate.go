package account

import (
	"strings"

	"github.com/robinvdvleuten/beancount-core/ast"
)

// Predicate selects accounts.
type Predicate interface {
	Match(account ast.Account) bool
}

// PredicateFunc adapts an ordinary function to a Predicate.
type PredicateFunc func(account ast.Account) bool

// Match calls f(account).
func (f PredicateFunc) Match(account ast.Account) bool { return f(account) }

// PrefixPredicate matches accounts whose name starts with the prefix.
type PrefixPredicate string

// Match reports whether account starts with the prefix.
func (p PrefixPredicate) Match(account ast.Account) bool {
	return strings.HasPrefix(string(account), string(p))
}

// AnyOf matches accounts matched by at least one of the predicates.
func AnyOf(predicates ...Predicate) Predicate {
	return PredicateFunc(func(account ast.Account) bool {
		for _, p := range predicates {
			if p.Match(account) {
				return true
			}
		}
		return false
	})
}

// IncomeStatement matches the income and expenses accounts of types.
func IncomeStatement(types Types) Predicate {
	return PredicateFunc(types.IsIncomeStatementAccount)
}

// BalanceSheet matches the asset, liability and equity accounts of types.
func BalanceSheet(types Types) Predicate {
	return PredicateFunc(types.IsBalanceSheetAccount)
}
