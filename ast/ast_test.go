package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/position"
)

func TestDirectives_Sort(t *testing.T) {
	t.Run("ByDate", func(t *testing.T) {
		later := NewEntry(MustDate("2024-02-01"), KindNote, "Assets:Checking", "later")
		earlier := NewEntry(MustDate("2024-01-01"), KindNote, "Assets:Checking", "earlier")

		d := Directives{later, earlier}
		d.Sort()

		assert.Equal(t, Directives{earlier, later}, d)
	})

	t.Run("SameDateTypePriority", func(t *testing.T) {
		date := MustDate("2024-01-01")
		closing := NewClose(date, "Assets:Checking")
		document := NewEntry(date, KindDocument, "Assets:Checking", "statement.pdf")
		txn := NewTransaction(date, "Deposit")
		balance := NewBalance(date, "Assets:Checking", amount.MustParse("0 USD"))
		open := NewOpen(date, "Assets:Checking")

		d := Directives{closing, document, txn, balance, open}
		d.Sort()

		assert.Equal(t, Directives{open, balance, txn, document, closing}, d)
	})

	t.Run("Stable", func(t *testing.T) {
		date := MustDate("2024-01-01")
		a := NewTransaction(date, "A")
		b := NewTransaction(date, "B")
		c := NewTransaction(date, "C")

		d := Directives{NewEntry(MustDate("2024-01-02"), KindNote, "Assets:Cash", "x"), c, a, b}
		d.Sort()

		assert.Equal(t, []*Transaction{c, a, b}, d.Transactions())
	})

	t.Run("SortedCopiesInput", func(t *testing.T) {
		later := NewEntry(MustDate("2024-02-01"), KindNote, "Assets:Checking", "later")
		earlier := NewEntry(MustDate("2024-01-01"), KindNote, "Assets:Checking", "earlier")

		d := Directives{later, earlier}
		sorted := d.Sorted()

		assert.True(t, sorted.IsSorted())
		assert.False(t, d.IsSorted())
	})
}

func TestDirectives_SearchDate(t *testing.T) {
	d := Directives{
		NewTransaction(MustDate("2014-03-10"), "A"),
		NewTransaction(MustDate("2014-03-11"), "B"),
		NewTransaction(MustDate("2014-03-13"), "D1"),
		NewTransaction(MustDate("2014-03-13"), "D2"),
		NewTransaction(MustDate("2014-03-14"), "E"),
	}

	tests := []struct {
		date string
		want int
	}{
		{"2014-01-01", 0},
		{"2014-03-10", 0},
		{"2014-03-11", 1},
		{"2014-03-12", 2},
		{"2014-03-13", 2},
		{"2014-03-14", 4},
		{"2014-03-15", 5},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, d.SearchDate(MustDate(tt.date).Time))
		})
	}

	assert.Equal(t, 0, Directives{}.SearchDate(MustDate("2014-01-01").Time))
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, "2024-01-15", DateOf(NewOpen(MustDate("2024-01-15"), "Assets:Cash")).Format(DateLayout))
	assert.True(t, DateOf(&Open{}).IsZero())
}

func TestMetadata(t *testing.T) {
	txn := NewTransaction(MustDate("2024-01-01"), "Payment",
		WithTransactionMetadata(NewMetadata("invoice", "INV-1")),
	)

	value, ok := txn.Meta("invoice")
	assert.True(t, ok)
	assert.Equal(t, "INV-1", value)

	_, ok = txn.Meta("missing")
	assert.False(t, ok)
}

func TestTransaction_Accounts(t *testing.T) {
	txn := NewTransaction(MustDate("2024-01-01"), "Split",
		WithPostings(
			NewPosting("Expenses:Food", position.MustParse("10 USD")),
			NewPosting("Expenses:Drinks", position.MustParse("5 USD")),
			NewPosting("Expenses:Food", position.MustParse("1 USD")),
			NewPosting("Assets:Cash", position.MustParse("-16 USD")),
		),
	)

	assert.Equal(t, []Account{"Expenses:Food", "Expenses:Drinks", "Assets:Cash"}, txn.Accounts())
}

func TestPosting_Weight(t *testing.T) {
	posting := NewPosting("Assets:CA:Checking", position.MustParse("-5000 USD"),
		WithPrice(amount.MustParse("1.2 CAD")),
	)

	assert.Equal(t, "-5000 USD", posting.Units().String())

	weight, err := posting.Weight()
	assert.NoError(t, err)
	assert.Equal(t, "-6000 CAD", weight.String())
}

func TestIsSynthetic(t *testing.T) {
	for _, flag := range []string{FlagPadding, FlagSummarize, FlagTransfer, FlagConversions} {
		assert.True(t, IsSynthetic(flag), flag)
	}
	assert.False(t, IsSynthetic(FlagOkay))
	assert.False(t, IsSynthetic(FlagWarning))
}
