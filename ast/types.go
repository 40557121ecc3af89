package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Account represents an account name consisting of at least two colon-separated
// segments. The first segment names the account type (Assets, Liabilities,
// Equity, Income or Expenses by default). Subsequent segments must start with
// an uppercase letter or digit and can contain letters, numbers, and hyphens.
//
// Example accounts:
//
//	Assets:US:BofA:Checking
//	Liabilities:CreditCard:CapitalOne
//	Income:US:Acme:Salary
//	Expenses:Home:Rent
type Account string

// accountSegmentRegex validates account segments.
// Must start with uppercase letter or digit, can contain alphanumerics and hyphens.
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

// Validate checks the account name has at least two well-formed segments. The
// root segment is validated syntactically only, since root names are
// configurable.
func (a Account) Validate() error {
	parts := strings.Split(string(a), ":")
	if len(parts) < 2 {
		return fmt.Errorf("account must have at least two segments: %s", a)
	}
	for i, part := range parts {
		if part == "" || !accountSegmentRegex.MatchString(part) {
			return fmt.Errorf("invalid account segment at position %d: %s", i, part)
		}
	}
	return nil
}

// Root returns the first segment of the account name.
func (a Account) Root() string {
	root, _, _ := strings.Cut(string(a), ":")
	return root
}

func (a Account) String() string { return string(a) }

// DateLayout is the layout of dates in directives.
const DateLayout = "2006-01-02"

// Date represents a calendar date in ISO 8601 format (YYYY-MM-DD). All
// directives carry a date which orders the stream.
type Date struct {
	time.Time
}

// IsZero returns true if the Date is nil or represents the zero time.
func (d *Date) IsZero() bool {
	if d == nil {
		return true
	}
	return d.Time.IsZero()
}

// String renders the date as YYYY-MM-DD.
func (d *Date) String() string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// Link represents a reference link starting with ^, used to connect related
// transactions together.
//
// Example: 2014-05-05 * "Payment" ^trip-to-europe
type Link string

// Tag represents a hashtag starting with #, used to categorize and filter
// transactions.
//
// Example: 2014-05-05 * "Dinner" #dining #entertainment
type Tag string
