// Package inventory aggregates positions into per-account holdings.
//
// An Inventory holds at most one position per distinct lot. Adding units of a
// lot already present adjusts its number; a position that reaches zero is
// removed. Negative numbers are legal: deciding whether a short position at
// cost is an error belongs to the booking layer, not here.
package inventory

import (
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Inventory is a set of positions keyed by lot.
// The zero value is not usable; create inventories with New.
type Inventory struct {
	positions []position.Position
	index     map[string]int // lot key -> index in positions
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{index: make(map[string]int)}
}

// Add adds number units of lot. If a position with an equal lot exists its
// number is incremented, otherwise a new position is inserted.
func (inv *Inventory) Add(lot *position.Lot, number decimal.Decimal) {
	key := lot.Key()
	if i, ok := inv.index[key]; ok {
		updated := inv.positions[i].Number.Add(number)
		if updated.IsZero() {
			inv.remove(i)
			return
		}
		inv.positions[i] = position.New(inv.positions[i].Lot, updated)
		return
	}

	if number.IsZero() {
		return
	}
	inv.index[key] = len(inv.positions)
	inv.positions = append(inv.positions, position.New(lot, number))
}

// AddAmount adds units with an optional per-unit cost and acquisition date.
func (inv *Inventory) AddAmount(units amount.Amount, cost *amount.Amount, date time.Time) {
	inv.Add(position.NewLot(units.Currency, cost, date), units.Number)
}

// AddPosition adds a booked position. Positions still carrying a provisional
// lot are refused with a *position.ProvisionalLotError.
func (inv *Inventory) AddPosition(p position.Position) error {
	lot, err := p.ResolvedLot()
	if err != nil {
		return err
	}
	inv.Add(lot, p.Number)
	return nil
}

// AddInventory adds every position of other to this inventory.
func (inv *Inventory) AddInventory(other *Inventory) {
	for _, p := range other.positions {
		inv.Add(p.Lot.(*position.Lot), p.Number)
	}
}

func (inv *Inventory) remove(i int) {
	inv.positions = slices.Delete(inv.positions, i, i+1)
	inv.reindex()
}

func (inv *Inventory) reindex() {
	clear(inv.index)
	for i, p := range inv.positions {
		inv.index[p.Lot.(*position.Lot).Key()] = i
	}
}

// Positions returns the positions in insertion order. The returned slice is
// a copy; positions share their lots with the inventory.
func (inv *Inventory) Positions() []position.Position {
	return slices.Clone(inv.positions)
}

// Sorted returns the positions ordered by currency rank, cost and number.
func (inv *Inventory) Sorted() []position.Position {
	sorted := slices.Clone(inv.positions)
	slices.SortStableFunc(sorted, position.Compare)
	return sorted
}

// Len returns the number of non-zero positions.
func (inv *Inventory) Len() int {
	return len(inv.positions)
}

// IsEmpty reports whether the inventory holds no units at all.
func (inv *Inventory) IsEmpty() bool {
	for _, p := range inv.positions {
		if !p.Number.IsZero() {
			return false
		}
	}
	return true
}

// IsSmall reports whether every position is within tolerance of zero.
func (inv *Inventory) IsSmall(tolerance decimal.Decimal) bool {
	for _, p := range inv.positions {
		if p.Number.Abs().GreaterThan(tolerance) {
			return false
		}
	}
	return true
}

// Get returns the position held for lot, if any.
func (inv *Inventory) Get(lot *position.Lot) (position.Position, bool) {
	i, ok := inv.index[lot.Key()]
	if !ok {
		return position.Position{}, false
	}
	return inv.positions[i], true
}

// Units returns the total number of units of currency, summed over all its
// lots regardless of cost.
func (inv *Inventory) Units(currency string) amount.Amount {
	total := decimal.Zero
	for _, p := range inv.positions {
		if p.Lot.Currency() == currency {
			total = total.Add(p.Number)
		}
	}
	return amount.New(total, currency)
}

// Currencies returns the lot currencies held, ordered by currency rank.
func (inv *Inventory) Currencies() []string {
	seen := make(map[string]bool)
	currencies := make([]string, 0, len(inv.positions))
	for _, p := range inv.positions {
		c := p.Lot.Currency()
		if !seen[c] {
			seen[c] = true
			currencies = append(currencies, c)
		}
	}
	slices.SortFunc(currencies, position.CompareCurrencies)
	return currencies
}

// CurrencyPairs returns the distinct (currency, cost currency) pairs held.
func (inv *Inventory) CurrencyPairs() [][2]string {
	seen := make(map[[2]string]bool)
	var pairs [][2]string
	for _, p := range inv.positions {
		currency, costCurrency := p.Lot.(*position.Lot).CurrencyPair()
		pair := [2]string{currency, costCurrency}
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// Cost returns a new inventory where every position has been converted to
// its cost, merging positions of the same currency.
func (inv *Inventory) Cost() *Inventory {
	result := New()
	for _, p := range inv.positions {
		// Lots in an inventory are always resolved, AtCost cannot fail.
		atCost, _ := p.AtCost()
		result.Add(atCost.Lot.(*position.Lot), atCost.Number)
	}
	return result
}

// UnitsInventory returns a new inventory of costless units, merging the lots
// of each currency.
func (inv *Inventory) UnitsInventory() *Inventory {
	result := New()
	for _, p := range inv.positions {
		result.Add(position.NewCurrencyLot(p.Lot.Currency()), p.Number)
	}
	return result
}

// Neg returns a new inventory with every position negated.
func (inv *Inventory) Neg() *Inventory {
	result := New()
	for _, p := range inv.positions {
		result.Add(p.Lot.(*position.Lot), p.Number.Neg())
	}
	return result
}

// Copy returns an independent copy. Lots are shared.
func (inv *Inventory) Copy() *Inventory {
	result := &Inventory{
		positions: slices.Clone(inv.positions),
		index:     make(map[string]int, len(inv.index)),
	}
	for k, v := range inv.index {
		result.index[k] = v
	}
	return result
}

// Equal reports whether both inventories hold the same numbers of the same
// lots, ignoring zero positions and order.
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv == nil || other == nil {
		return (inv == nil || inv.IsEmpty()) && (other == nil || other.IsEmpty())
	}
	if len(inv.positions) != len(other.positions) {
		return false
	}
	for _, p := range inv.positions {
		q, ok := other.Get(p.Lot.(*position.Lot))
		if !ok || !q.Number.Equal(p.Number) {
			return false
		}
	}
	return true
}

// String renders the inventory as "Inventory(-800 USD, 800 CAD)", positions
// in currency rank order.
func (inv *Inventory) String() string {
	sorted := inv.Sorted()
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = p.String()
	}
	return "Inventory(" + strings.Join(parts, ", ") + ")"
}

// FromString builds an inventory from comma-separated compact positions,
// e.g. "10 GOOG {500 USD}, 100 USD". Commas inside cost blocks are kept.
func FromString(s string) (*Inventory, error) {
	inv := New()
	for _, part := range splitPositions(s) {
		p, err := position.FromString(part)
		if err != nil {
			return nil, err
		}
		if err := inv.AddPosition(p); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// MustParse is like FromString but panics on error.
// Use only in tests or with literals known to be valid.
func MustParse(s string) *Inventory {
	inv, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return inv
}

// splitPositions splits on commas that are not enclosed in braces.
func splitPositions(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}
