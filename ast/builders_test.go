package ast

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
)

func TestNewDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		date, err := NewDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, "2024-01-15", date.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := NewDate("2024-13-01")
		assert.Error(t, err)
	})

	t.Run("FromTimeTruncates", func(t *testing.T) {
		date := NewDateFromTime(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC))
		assert.True(t, date.Equal(MustDate("2024-01-15").Time))
	})

	t.Run("NilIsZero", func(t *testing.T) {
		var date *Date
		assert.True(t, date.IsZero())
		assert.Equal(t, "", date.String())
	})
}

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Assets:US:BofA:Checking", false},
		{"Digits", "Assets:401k:Fund", false},
		{"CustomRoot", "Actifs:Banque", false},
		{"SingleSegment", "Assets", true},
		{"EmptySegment", "Assets::Checking", true},
		{"Lowercase", "Assets:checking", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := NewAccount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input, account.String())
		})
	}

	assert.Equal(t, "Assets", Account("Assets:US:Checking").Root())
}

func TestNewTransaction(t *testing.T) {
	date := MustDate("2024-01-15")

	t.Run("Defaults", func(t *testing.T) {
		txn := NewTransaction(date, "Groceries")
		assert.Equal(t, FlagOkay, txn.Flag)
		assert.Equal(t, "Groceries", txn.Narration)
		assert.Equal(t, "transaction", txn.Directive())
		assert.Equal(t, 0, len(txn.Postings))
	})

	t.Run("Options", func(t *testing.T) {
		source := NewSyntheticPosition("summarize")
		txn := NewTransaction(date, "Groceries",
			WithFlag(FlagWarning),
			WithPayee("Whole Foods"),
			WithTags("#food", "shopping"),
			WithLinks("^receipt-1"),
			WithSource(source),
			WithPostings(
				NewPosting("Expenses:Food", position.MustParse("45.60 USD"), WithPostingFlag(FlagWarning)),
				NewPosting("Assets:Checking", position.MustParse("-45.60 USD"),
					WithPostingMetadata(NewMetadata("check", "123"))),
			),
		)

		assert.Equal(t, FlagWarning, txn.Flag)
		assert.Equal(t, "Whole Foods", txn.Payee)
		assert.Equal(t, []Tag{"food", "shopping"}, txn.Tags)
		assert.Equal(t, []Link{"receipt-1"}, txn.Links)
		assert.Equal(t, "<summarize>:0:0", txn.Position().String())
		assert.Equal(t, 2, len(txn.Postings))
		assert.Equal(t, FlagWarning, txn.Postings[0].Flag)

		check, ok := txn.Postings[1].Meta("check")
		assert.True(t, ok)
		assert.Equal(t, "123", check)
	})
}

func TestNewPosting_Price(t *testing.T) {
	price := amount.MustParse("0.91 USD")
	posting := NewPosting("Assets:CA:Checking", position.MustParse("1000 CAD"), WithPrice(price))

	price.Currency = "EUR"
	assert.Equal(t, "USD", posting.Price.Currency)
}

func TestDirectiveConstructors(t *testing.T) {
	date := MustDate("2024-01-01")

	tests := []struct {
		directive Directive
		want      string
	}{
		{NewOpen(date, "Assets:Cash", "USD"), "open"},
		{NewClose(date, "Assets:Cash"), "close"},
		{NewBalance(date, "Assets:Cash", amount.MustParse("1 USD")), "balance"},
		{NewEntry(date, KindPad, "Assets:Cash", "Equity:Opening-Balances"), "pad"},
		{NewEntry(date, KindNote, "Assets:Cash", "note"), "note"},
		{NewEntry(date, KindDocument, "Assets:Cash", "file.pdf"), "document"},
		{NewPrice(date, "USD", amount.MustParse("1.08 CAD")), "price"},
		{NewEntry(date, KindCommodity, "", "USD"), "commodity"},
		{NewEntry(date, KindEvent, "", "location", "Paris"), "event"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.directive.Directive())
			assert.True(t, DateOf(tt.directive).Equal(date.Time))
		})
	}
}

func TestOptionalAmountsCompare(t *testing.T) {
	t.Run("PostingWithoutPrice", func(t *testing.T) {
		p := NewPosting("Assets:Cash", position.MustParse("10 USD"))
		assert.Zero(t, p.Price)
		assert.Equal(t, NewPosting("Assets:Cash", position.MustParse("10 USD")), p)
	})

	t.Run("BalanceWithoutTolerance", func(t *testing.T) {
		b := NewBalance(MustDate("2024-01-01"), "Assets:Cash", amount.MustParse("10 USD"))
		assert.Zero(t, b.Tolerance)
		assert.Equal(t, NewBalance(MustDate("2024-01-01"), "Assets:Cash", amount.MustParse("10 USD")), b)
	})

	t.Run("TransactionWithPostings", func(t *testing.T) {
		build := func() *Transaction {
			return NewTransaction(MustDate("2024-01-01"), "Deposit", WithPostings(
				NewPosting("Assets:Cash", position.MustParse("10 USD")),
				NewPosting("Income:Salary", position.MustParse("-10 USD")),
			))
		}
		assert.Equal(t, build(), build())
	})
}
