package ast

import (
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
)

// Transaction records a financial transaction with a date, flag, optional payee,
// narration, and a list of postings. The flag indicates transaction status: '*' for
// cleared/complete transactions, '!' for pending/uncleared transactions, or one of
// the synthetic flags for generated transactions. The weights of all postings of a
// booked transaction sum to zero.
//
// Example:
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine"
//	  Liabilities:CreditCard:CapitalOne         -37.45 USD
//	  Expenses:Food:Restaurant                   37.45 USD
type Transaction struct {
	Pos       Position
	Date      *Date
	Flag      string
	Payee     string
	Narration string
	Links     []Link
	Tags      []Tag

	withMetadata

	Postings []*Posting
}

var _ Directive = &Transaction{}

func (t *Transaction) Position() Position { return t.Pos }
func (t *Transaction) date() *Date        { return t.Date }
func (t *Transaction) Directive() string  { return "transaction" }

// Accounts returns the distinct accounts posted to, in posting order.
func (t *Transaction) Accounts() []Account {
	accounts := make([]Account, 0, len(t.Postings))
	seen := make(map[Account]bool)
	for _, posting := range t.Postings {
		if !seen[posting.Account] {
			accounts = append(accounts, posting.Account)
			seen[posting.Account] = true
		}
	}
	return accounts
}

// Posting represents a single leg of a transaction: a booked position in an
// account with an optional per-unit price. The price records a conversion
// rate without affecting the cost basis.
//
// Example postings within transactions:
//
//	Assets:Investments:Brokerage    10 HOOL {518.73 USD}  ; Purchase with cost
//	Assets:Investments:Cash        200 EUR @ 1.35 USD     ; Currency conversion with price
//	Expenses:Groceries              45.60 USD             ; Simple posting
type Posting struct {
	Pos      Position
	Flag     string
	Account  Account
	Position position.Position
	Price    *amount.Amount

	withMetadata
}

// Units returns the number of units posted in the lot currency.
func (p *Posting) Units() amount.Amount {
	return p.Position.Units()
}

// Weight returns the amount the posting contributes to the balance of its
// transaction.
func (p *Posting) Weight() (amount.Amount, error) {
	return p.Position.Weight(p.Price)
}
