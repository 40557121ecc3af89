package ast

import "github.com/robinvdvleuten/beancount-core/amount"

// Open starts the lifetime of an account. Summarization keeps the Open of
// every account still open at the cutoff.
//
//	2014-05-01 open Assets:US:BofA:Checking USD
type Open struct {
	Pos                  Position
	Date                 *Date
	Account              Account
	ConstraintCurrencies []string
	BookingMethod        string

	withMetadata
}

var _ Directive = &Open{}

func (o *Open) Position() Position { return o.Pos }
func (o *Open) date() *Date        { return o.Date }
func (o *Open) Directive() string  { return "open" }

// Close ends the lifetime of an account. The account stays usable for the
// whole closing day.
//
//	2015-09-23 close Assets:US:BofA:Checking
type Close struct {
	Pos     Position
	Date    *Date
	Account Account

	withMetadata
}

var _ Directive = &Close{}

func (c *Close) Position() Position { return c.Pos }
func (c *Close) date() *Date        { return c.Date }
func (c *Close) Directive() string  { return "close" }

// Balance asserts the units an account holds at the beginning of its date.
//
//	2014-08-09 balance Assets:US:BofA:Checking 562.00 USD
type Balance struct {
	Pos       Position
	Date      *Date
	Account   Account
	Amount    amount.Amount
	Tolerance *amount.Amount

	withMetadata
}

var _ Directive = &Balance{}

func (b *Balance) Position() Position { return b.Pos }
func (b *Balance) date() *Date        { return b.Date }
func (b *Balance) Directive() string  { return "balance" }

// Price quotes one unit of Commodity in the currency of Amount.
//
//	2014-07-09 price USD 1.08 CAD
type Price struct {
	Pos       Position
	Date      *Date
	Commodity string
	Amount    amount.Amount

	withMetadata
}

var _ Directive = &Price{}

func (p *Price) Position() Position { return p.Pos }
func (p *Price) date() *Date        { return p.Date }
func (p *Price) Directive() string  { return "price" }

// Kinds of Entry directives.
const (
	KindCommodity = "commodity"
	KindPad       = "pad"
	KindNote      = "note"
	KindDocument  = "document"
	KindEvent     = "event"
	KindQuery     = "query"
	KindCustom    = "custom"
)

// Entry is a dated directive that carries no postings, such as a note or a
// document. Balance computations count it but take nothing from it, and the
// summarization passes keep or drop it by date only.
//
//	2014-07-09 note Assets:US:BofA:Checking "Called bank"
type Entry struct {
	Pos     Position
	Date    *Date
	Kind    string
	Account Account
	Values  []string

	withMetadata
}

var _ Directive = &Entry{}

func (e *Entry) Position() Position { return e.Pos }
func (e *Entry) date() *Date        { return e.Date }
func (e *Entry) Directive() string  { return e.Kind }
