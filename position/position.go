// Package position provides lots and positions, the units of inventory.
//
// A Lot is the identity of a held commodity: its currency plus an optional
// per-unit cost and acquisition date. A Position is a signed number of units
// of a lot. Positions are small values: copying one shares its lot.
//
//	p := position.MustParse("10 GOOG {500 USD, 2014-01-01}")
//	p.Units()         // 10 GOOG
//	p.Cost()          // 5000 USD
//	p.Neg().String()  // -10 GOOG {500 USD, 2014-01-01}
package position

import (
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/shopspring/decimal"
)

// Position is a number of units of a lot. The number may be negative.
type Position struct {
	Lot    Identity
	Number decimal.Decimal
}

// New creates a position of number units of lot.
func New(lot Identity, number decimal.Decimal) Position {
	return Position{Lot: lot, Number: number}
}

// FromAmounts creates a position from its units and an optional per-unit
// cost. The position carries no acquisition date.
func FromAmounts(units amount.Amount, cost *amount.Amount) Position {
	return New(NewLot(units.Currency, cost, zeroDate), units.Number)
}

// Units returns the number of units in the lot currency, irrespective of
// cost.
func (p Position) Units() amount.Amount {
	return amount.New(p.Number, p.Lot.Currency())
}

// Cost returns the number of units times the per-unit cost, or the units if
// the lot is not held at cost.
func (p Position) Cost() (amount.Amount, error) {
	lot, err := p.resolved("cost")
	if err != nil {
		return amount.Amount{}, err
	}
	if cost, ok := lot.Cost(); ok {
		return cost.Mul(p.Number), nil
	}
	return p.Units(), nil
}

// Weight returns the amount this position contributes when balancing a
// transaction: its cost if held at cost, otherwise the units converted at
// price if one is given, otherwise the units.
func (p Position) Weight(price *amount.Amount) (amount.Amount, error) {
	lot, err := p.resolved("weight")
	if err != nil {
		return amount.Amount{}, err
	}
	if cost, ok := lot.Cost(); ok {
		return cost.Mul(p.Number), nil
	}
	if price != nil {
		if price.Currency == lot.Currency() {
			return amount.Amount{}, &PriceCurrencyError{Position: p, Price: *price}
		}
		return price.Mul(p.Number), nil
	}
	return p.Units(), nil
}

// AtCost returns a costless position in the cost currency worth the cost of
// this position. A position not held at cost is returned as is.
func (p Position) AtCost() (Position, error) {
	lot, err := p.resolved("at cost")
	if err != nil {
		return Position{}, err
	}
	cost, ok := lot.Cost()
	if !ok {
		return p, nil
	}
	return New(NewCurrencyLot(cost.Currency), p.Number.Mul(cost.Number)), nil
}

// Neg returns the position with its number negated, sharing the same lot.
func (p Position) Neg() Position {
	return Position{Lot: p.Lot, Number: p.Number.Neg()}
}

// IsNegativeAtCost reports whether the position is short and carries a cost
// or an acquisition date. Such lots are usually booking mistakes.
func (p Position) IsNegativeAtCost() bool {
	return p.Number.IsNegative() && hasCostOrDate(p.Lot)
}

// IsZero reports whether the position holds no units.
func (p Position) IsZero() bool {
	return p.Number.IsZero()
}

// IsProvisional reports whether the position still carries a LotSpec.
func (p Position) IsProvisional() bool {
	_, ok := p.Lot.(*LotSpec)
	return ok
}

// ResolvedLot returns the booked lot of the position, or a
// *ProvisionalLotError if it still carries a LotSpec.
func (p Position) ResolvedLot() (*Lot, error) {
	return p.resolved("resolve")
}

// Equal reports whether both positions have equal lots and numbers. A nil
// other stands for an absent position and equals any zero position.
func (p Position) Equal(other *Position) bool {
	if other == nil {
		return p.Number.IsZero()
	}
	if !p.Number.Equal(other.Number) {
		return false
	}
	return identitiesEqual(p.Lot, other.Lot)
}

// Compare orders positions by currency rank, then cost, then number.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b Position) int {
	if c := CompareCurrencies(a.Lot.Currency(), b.Lot.Currency()); c != 0 {
		return c
	}
	if c := amount.Compare(costOrNull(a.Lot), costOrNull(b.Lot)); c != 0 {
		return c
	}
	return a.Number.Cmp(b.Number)
}

// Less reports whether p sorts before other.
func (p Position) Less(other Position) bool {
	return Compare(p, other) < 0
}

// String renders the units followed by the lot details, e.g.
// "10 GOOG {500 USD, 2014-01-01}".
func (p Position) String() string {
	units := p.Units().String()
	if details := p.Lot.String(); details != "" {
		return units + " " + details
	}
	return units
}

// StringNoDetail renders the units and the cost only, dropping the date and
// any other lot detail.
func (p Position) StringNoDetail() string {
	units := p.Units().String()
	if lot, ok := p.Lot.(*Lot); ok {
		if cost, ok := lot.Cost(); ok {
			return units + " {" + cost.String() + "}"
		}
	}
	return units
}

func (p Position) resolved(op string) (*Lot, error) {
	switch lot := p.Lot.(type) {
	case *Lot:
		return lot, nil
	case *LotSpec:
		return nil, &ProvisionalLotError{Op: op, Spec: lot}
	default:
		panic("position: unknown lot identity")
	}
}

func identitiesEqual(a, b Identity) bool {
	switch la := a.(type) {
	case *Lot:
		lb, ok := b.(*Lot)
		return ok && la.Equal(lb)
	case *LotSpec:
		lb, ok := b.(*LotSpec)
		return ok && la.String() == lb.String() && la.Currency() == lb.Currency()
	}
	return false
}

func costOrNull(id Identity) amount.Amount {
	if lot, ok := id.(*Lot); ok {
		if cost, ok := lot.Cost(); ok {
			return cost
		}
	}
	return amount.Null
}
