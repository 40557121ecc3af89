package summarize

import (
	"fmt"
	"time"

	"github.com/robinvdvleuten/beancount-core/ast"
)

// PostingError is returned when a posting cannot be folded into a balance,
// typically because its lot has not been booked yet.
type PostingError struct {
	Pos     ast.Position
	Date    time.Time
	Account ast.Account
	Err     error
}

func (e *PostingError) Error() string {
	return fmt.Sprintf("%s: posting to %s: %v", e.Date.Format(ast.DateLayout), e.Account, e.Err)
}

func (e *PostingError) Unwrap() error { return e.Err }

// GetPosition returns the source position of the offending posting.
func (e *PostingError) GetPosition() ast.Position { return e.Pos }

// UnbalancedError is returned when a synthesized transaction does not
// balance, e.g. a conversion priced in one of the currencies it converts.
type UnbalancedError struct {
	Transaction *ast.Transaction
	Residual    string
	Err         error
}

func (e *UnbalancedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q does not balance: %v", e.Transaction.Date, e.Transaction.Narration, e.Err)
	}
	return fmt.Sprintf("%s: %q does not balance, residual %s", e.Transaction.Date, e.Transaction.Narration, e.Residual)
}

func (e *UnbalancedError) Unwrap() error { return e.Err }
