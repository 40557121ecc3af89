package position

import (
	"fmt"
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout used to render lot acquisition dates.
const DateLayout = "2006-01-02"

var zeroDate time.Time

// Identity is the lot a Position refers to. It is either a resolved *Lot or a
// provisional *LotSpec that still awaits booking. No other implementations
// exist.
type Identity interface {
	// Currency returns the currency of the units held.
	Currency() string

	// String renders the lot details inside braces, or "" when there are none.
	String() string

	identity()
}

// Lot is the immutable identity of a held commodity: its currency, an optional
// per-unit cost and an optional acquisition date. Lots are shared between
// many positions and never modified after construction.
type Lot struct {
	currency string
	cost     *amount.Amount
	date     time.Time
}

var _ Identity = (*Lot)(nil)

// NewLot creates a new lot. The cost may be nil and the date may be the zero
// time when the lot carries none. The currency must not be empty.
func NewLot(currency string, cost *amount.Amount, date time.Time) *Lot {
	if currency == "" {
		panic("position: lot currency must not be empty")
	}
	var c *amount.Amount
	if cost != nil {
		copied := *cost
		c = &copied
	}
	return &Lot{currency: currency, cost: c, date: truncateDate(date)}
}

// NewCurrencyLot creates a lot without cost nor date.
func NewCurrencyLot(currency string) *Lot {
	return NewLot(currency, nil, time.Time{})
}

func (l *Lot) identity() {}

// Currency returns the currency of the units held.
func (l *Lot) Currency() string { return l.currency }

// Cost returns a copy of the per-unit cost and true, or false if the lot is
// not held at cost.
func (l *Lot) Cost() (amount.Amount, bool) {
	if l.cost == nil {
		return amount.Amount{}, false
	}
	return *l.cost, true
}

// HasCost reports whether the lot is held at cost.
func (l *Lot) HasCost() bool { return l.cost != nil }

// Date returns the acquisition date and true, or false if the lot has none.
func (l *Lot) Date() (time.Time, bool) {
	return l.date, !l.date.IsZero()
}

// HasDate reports whether the lot carries an acquisition date.
func (l *Lot) HasDate() bool { return !l.date.IsZero() }

// CurrencyPair returns the lot currency and the cost currency ("" if the lot
// is not held at cost).
func (l *Lot) CurrencyPair() (string, string) {
	if l.cost == nil {
		return l.currency, ""
	}
	return l.currency, l.cost.Currency
}

// Equal reports whether both lots have the same currency, numerically equal
// cost and the same date.
func (l *Lot) Equal(other *Lot) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	if l.currency != other.currency || !l.date.Equal(other.date) {
		return false
	}
	if (l.cost == nil) != (other.cost == nil) {
		return false
	}
	return l.cost == nil || l.cost.Equal(*other.cost)
}

// Key returns a string uniquely identifying the lot, suitable as a map key.
// Lots that are Equal have the same key.
func (l *Lot) Key() string {
	var buf strings.Builder
	buf.WriteString(l.currency)
	buf.WriteByte('|')
	if l.cost != nil {
		buf.WriteString(l.cost.Number.String())
		buf.WriteByte(' ')
		buf.WriteString(l.cost.Currency)
	}
	buf.WriteByte('|')
	if !l.date.IsZero() {
		buf.WriteString(l.date.Format(DateLayout))
	}
	return buf.String()
}

// String renders the cost and date as "{500 USD, 2014-01-01}", or "" for a
// lot with neither.
func (l *Lot) String() string {
	if l.cost == nil && l.date.IsZero() {
		return ""
	}
	parts := make([]string, 0, 2)
	if l.cost != nil {
		parts = append(parts, l.cost.String())
	}
	if !l.date.IsZero() {
		parts = append(parts, l.date.Format(DateLayout))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CompoundAmount is a cost expression as written by the user before booking:
// a per-unit number, a total number, or both, in a single currency. Missing
// numbers are nil.
type CompoundAmount struct {
	PerNumber   *decimal.Decimal
	TotalNumber *decimal.Decimal
	Currency    string
}

// String renders the compound amount as "<per> # <total> <currency>".
func (c *CompoundAmount) String() string {
	if c == nil {
		return ""
	}
	var parts []string
	if c.PerNumber != nil {
		parts = append(parts, c.PerNumber.String())
	}
	if c.TotalNumber != nil {
		parts = append(parts, "#", c.TotalNumber.String())
	}
	if c.Currency != "" {
		parts = append(parts, c.Currency)
	}
	return strings.Join(parts, " ")
}

// LotSpec is a provisional lot description that only exists between parsing
// and booking. Positions carrying a LotSpec cannot be valued; booking must
// resolve it into a Lot first.
type LotSpec struct {
	currency     string
	CompoundCost *CompoundAmount
	Date         time.Time
	Label        string
	Merge        bool
}

var _ Identity = (*LotSpec)(nil)

// NewLotSpec creates a provisional lot for the given currency.
func NewLotSpec(currency string, cost *CompoundAmount, date time.Time, label string, merge bool) *LotSpec {
	if currency == "" {
		panic("position: lot spec currency must not be empty")
	}
	return &LotSpec{
		currency:     currency,
		CompoundCost: cost,
		Date:         truncateDate(date),
		Label:        label,
		Merge:        merge,
	}
}

func (s *LotSpec) identity() {}

// Currency returns the currency of the units held.
func (s *LotSpec) Currency() string { return s.currency }

// String renders the lot specification inside braces.
func (s *LotSpec) String() string {
	if s.Merge {
		return "{*}"
	}
	var parts []string
	if cost := s.CompoundCost.String(); cost != "" {
		parts = append(parts, cost)
	}
	if !s.Date.IsZero() {
		parts = append(parts, s.Date.Format(DateLayout))
	}
	if s.Label != "" {
		parts = append(parts, fmt.Sprintf("%q", s.Label))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// hasCostOrDate reports whether the identity carries a cost or a date.
func hasCostOrDate(id Identity) bool {
	switch l := id.(type) {
	case *Lot:
		return l.HasCost() || l.HasDate()
	case *LotSpec:
		return l.CompoundCost != nil || !l.Date.IsZero()
	}
	return false
}

// truncateDate drops the time of day so that dates from different sources
// compare equal.
func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
