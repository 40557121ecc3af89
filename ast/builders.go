package ast

import (
	"fmt"
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
)

// NewDate parses a date string in YYYY-MM-DD format and returns a Date.
// Returns an error if the string cannot be parsed as a valid date.
//
// Example:
//
//	date, err := ast.NewDate("2024-01-15")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewDate(s string) (*Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", s)
	}
	return &Date{Time: t}, nil
}

// MustDate is like NewDate but panics on error.
// Use only in tests or with literals known to be valid.
func MustDate(s string) *Date {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateFromTime creates a Date from a time.Time value.
// The time is truncated to just the date portion (year, month, day).
//
// Example:
//
//	date := ast.NewDateFromTime(time.Now())
func NewDateFromTime(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewAccount creates an Account from the given name string and validates it.
//
// Example:
//
//	account, err := ast.NewAccount("Assets:US:BofA:Checking")
func NewAccount(name string) (Account, error) {
	account := Account(name)
	if err := account.Validate(); err != nil {
		return "", err
	}
	return account, nil
}

// NewLink creates a Link from the given name.
// If the name starts with ^, it is stripped.
func NewLink(name string) Link {
	return Link(strings.TrimPrefix(name, "^"))
}

// NewTag creates a Tag from the given name.
// If the name starts with #, it is stripped.
func NewTag(name string) Tag {
	return Tag(strings.TrimPrefix(name, "#"))
}

// NewMetadata creates a Metadata key-value pair.
func NewMetadata(key, value string) *Metadata {
	return &Metadata{Key: key, Value: value}
}

// NewOpen creates an Open directive, optionally constrained to currencies.
func NewOpen(date *Date, account Account, currencies ...string) *Open {
	return &Open{Date: date, Account: account, ConstraintCurrencies: currencies}
}

// NewClose creates a Close directive.
func NewClose(date *Date, account Account) *Close {
	return &Close{Date: date, Account: account}
}

// NewPrice creates a Price directive for commodity quoted in price.
//
// Example:
//
//	price := ast.NewPrice(date, "USD", amount.MustParse("1.08 CAD"))
func NewPrice(date *Date, commodity string, price amount.Amount) *Price {
	return &Price{Date: date, Commodity: commodity, Amount: price}
}

// NewBalance creates a Balance assertion.
func NewBalance(date *Date, account Account, units amount.Amount) *Balance {
	return &Balance{Date: date, Account: account, Amount: units}
}

// NewEntry creates a directive of kind without postings. account may be
// empty for kinds that name no account.
func NewEntry(date *Date, kind string, account Account, values ...string) *Entry {
	return &Entry{Date: date, Kind: kind, Account: account, Values: values}
}

// TransactionOption is a functional option for configuring a Transaction.
type TransactionOption func(*Transaction)

// NewTransaction creates a new Transaction with the given date and narration.
// Additional fields can be set using functional options.
//
// Example:
//
//	txn := ast.NewTransaction(date, "Buy groceries",
//	    ast.WithFlag(ast.FlagOkay),
//	    ast.WithPayee("Whole Foods"),
//	    ast.WithTags("food", "shopping"),
//	    ast.WithPostings(
//	        ast.NewPosting(expensesAccount, position.MustParse("45.60 USD")),
//	        ast.NewPosting(checkingAccount, position.MustParse("-45.60 USD")),
//	    ),
//	)
func NewTransaction(date *Date, narration string, opts ...TransactionOption) *Transaction {
	txn := &Transaction{
		Date:      date,
		Narration: narration,
		Flag:      FlagOkay,
	}

	for _, opt := range opts {
		opt(txn)
	}

	return txn
}

// WithFlag sets the transaction flag.
func WithFlag(flag string) TransactionOption {
	return func(t *Transaction) {
		t.Flag = flag
	}
}

// WithPayee sets the transaction payee.
func WithPayee(payee string) TransactionOption {
	return func(t *Transaction) {
		t.Payee = payee
	}
}

// WithTags adds tags to the transaction.
func WithTags(tags ...string) TransactionOption {
	return func(t *Transaction) {
		for _, tag := range tags {
			t.Tags = append(t.Tags, NewTag(tag))
		}
	}
}

// WithLinks adds links to the transaction.
func WithLinks(links ...string) TransactionOption {
	return func(t *Transaction) {
		for _, link := range links {
			t.Links = append(t.Links, NewLink(link))
		}
	}
}

// WithTransactionMetadata adds metadata entries to the transaction.
func WithTransactionMetadata(metadata ...*Metadata) TransactionOption {
	return func(t *Transaction) {
		t.AddMetadata(metadata...)
	}
}

// WithSource sets the position the transaction originates from.
func WithSource(pos Position) TransactionOption {
	return func(t *Transaction) {
		t.Pos = pos
	}
}

// WithPostings sets the postings for the transaction.
func WithPostings(postings ...*Posting) TransactionOption {
	return func(t *Transaction) {
		t.Postings = postings
	}
}

// PostingOption is a functional option for configuring a Posting.
type PostingOption func(*Posting)

// NewPosting creates a new Posting of pos in account.
// Additional fields can be set using functional options.
//
// Example:
//
//	posting := ast.NewPosting(account, position.MustParse("200 EUR"),
//	    ast.WithPrice(amount.MustParse("1.35 USD")),
//	)
func NewPosting(account Account, pos position.Position, opts ...PostingOption) *Posting {
	posting := &Posting{
		Account:  account,
		Position: pos,
	}

	for _, opt := range opts {
		opt(posting)
	}

	return posting
}

// WithPrice sets the per-unit price for a posting (using @ syntax).
func WithPrice(price amount.Amount) PostingOption {
	return func(p *Posting) {
		p.Price = &price
	}
}

// WithPostingFlag sets the flag for a posting.
func WithPostingFlag(flag string) PostingOption {
	return func(p *Posting) {
		p.Flag = flag
	}
}

// WithPostingMetadata adds metadata entries to the posting.
func WithPostingMetadata(metadata ...*Metadata) PostingOption {
	return func(p *Posting) {
		p.AddMetadata(metadata...)
	}
}
