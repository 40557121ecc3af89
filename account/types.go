// Package account classifies account names by type and provides the
// predicates the summarization passes use to select accounts.
package account

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/beancount-core/ast"
)

// Type represents the type of account
type Type int

const (
	TypeUnknown Type = iota
	TypeAssets
	TypeLiabilities
	TypeEquity
	TypeIncome
	TypeExpenses
)

// String returns the string representation of the account type
func (t Type) String() string {
	switch t {
	case TypeAssets:
		return "Assets"
	case TypeLiabilities:
		return "Liabilities"
	case TypeEquity:
		return "Equity"
	case TypeIncome:
		return "Income"
	case TypeExpenses:
		return "Expenses"
	default:
		return "Unknown"
	}
}

// Types holds the root account names of the five account types. Ledgers
// written in other languages rename them with the name_* options.
type Types struct {
	Assets      string
	Liabilities string
	Equity      string
	Income      string
	Expenses    string
}

// DefaultTypes returns the English root names.
func DefaultTypes() Types {
	return Types{
		Assets:      "Assets",
		Liabilities: "Liabilities",
		Equity:      "Equity",
		Income:      "Income",
		Expenses:    "Expenses",
	}
}

// TypesFromOptions reads the root names from an options map.
// Supports:
//   - option "name_assets" "Actifs"
//   - option "name_liabilities" "Passifs"
//   - option "name_equity" "Capital"
//   - option "name_income" "Revenus"
//   - option "name_expenses" "Depenses"
func TypesFromOptions(options map[string][]string) (Types, error) {
	types := DefaultTypes()

	fields := []struct {
		option string
		target *string
	}{
		{"name_assets", &types.Assets},
		{"name_liabilities", &types.Liabilities},
		{"name_equity", &types.Equity},
		{"name_income", &types.Income},
		{"name_expenses", &types.Expenses},
	}

	seen := make(map[string]string)
	for _, f := range fields {
		if vals := options[f.option]; len(vals) > 0 {
			name := strings.TrimSpace(vals[0])
			if name == "" || strings.Contains(name, ":") {
				return Types{}, fmt.Errorf("invalid %s %q, expected a single account segment", f.option, vals[0])
			}
			*f.target = name
		}
		if other, ok := seen[*f.target]; ok {
			return Types{}, fmt.Errorf("%s and %s both name the root %q", other, f.option, *f.target)
		}
		seen[*f.target] = f.option
	}

	return types, nil
}

// TypeOf returns the type of account according to its root segment.
func (t Types) TypeOf(account ast.Account) Type {
	switch account.Root() {
	case t.Assets:
		return TypeAssets
	case t.Liabilities:
		return TypeLiabilities
	case t.Equity:
		return TypeEquity
	case t.Income:
		return TypeIncome
	case t.Expenses:
		return TypeExpenses
	default:
		return TypeUnknown
	}
}

// IsBalanceSheetAccount reports whether account is an asset, liability or
// equity account.
func (t Types) IsBalanceSheetAccount(account ast.Account) bool {
	switch t.TypeOf(account) {
	case TypeAssets, TypeLiabilities, TypeEquity:
		return true
	}
	return false
}

// IsIncomeStatementAccount reports whether account is an income or expenses
// account.
func (t Types) IsIncomeStatementAccount(account ast.Account) bool {
	switch t.TypeOf(account) {
	case TypeIncome, TypeExpenses:
		return true
	}
	return false
}
