package position

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/beancount-core/amount"
)

var (
	// ErrProvisionalLot is matched by errors raised when a position that has
	// not been booked yet is valued.
	ErrProvisionalLot = errors.New("provisional lot")

	// ErrPriceCurrency is matched by errors raised when a price is quoted in
	// the currency of the units it prices.
	ErrPriceCurrency = errors.New("invalid currency for price")

	// ErrInvalidPosition is matched by every compact notation parse error.
	ErrInvalidPosition = errors.New("invalid position")
)

// ProvisionalLotError is returned when an operation needs a resolved lot but
// the position still carries a LotSpec.
type ProvisionalLotError struct {
	Op   string
	Spec *LotSpec
}

func (e *ProvisionalLotError) Error() string {
	return fmt.Sprintf("%s: cannot value provisional lot %s %s", e.Op, e.Spec.Currency(), e.Spec.String())
}

func (e *ProvisionalLotError) Unwrap() error {
	return ErrProvisionalLot
}

// PriceCurrencyError is returned by Weight when the price is in the same
// currency as the units.
type PriceCurrencyError struct {
	Position Position
	Price    amount.Amount
}

func (e *PriceCurrencyError) Error() string {
	return fmt.Sprintf("invalid currency for price: %s in %s", e.Price, e.Position)
}

func (e *PriceCurrencyError) Unwrap() error {
	return ErrPriceCurrency
}

// ParseError is returned when a compact position string is malformed.
type ParseError struct {
	Input     string
	Component string // Offending cost component, empty if the whole input failed
	Err       error  // Underlying number or date error, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid string for position: %q", e.Input)
	if e.Component != "" {
		msg = fmt.Sprintf("invalid cost component %q in %q", e.Component, e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidPosition
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
