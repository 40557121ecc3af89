package summarize

import (
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/account"
	"github.com/robinvdvleuten/beancount-core/ast"
	"github.com/robinvdvleuten/beancount-core/inventory"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Balances maps account names to their inventory.
type Balances map[ast.Account]*inventory.Inventory

// Accounts returns the account names in sorted order.
func (b Balances) Accounts() []ast.Account {
	accounts := maps.Keys(b)
	slices.Sort(accounts)
	return accounts
}

// Filter returns the balances of the accounts matched by pred. Inventories
// are shared with b.
func (b Balances) Filter(pred account.Predicate) Balances {
	filtered := make(Balances)
	for name, inv := range b {
		if pred.Match(name) {
			filtered[name] = inv
		}
	}
	return filtered
}

// Total returns the sum of all inventories.
func (b Balances) Total() *inventory.Inventory {
	total := inventory.New()
	for _, name := range b.Accounts() {
		total.AddInventory(b[name])
	}
	return total
}

func (b Balances) forAccount(name ast.Account) *inventory.Inventory {
	inv, ok := b[name]
	if !ok {
		inv = inventory.New()
		b[name] = inv
	}
	return inv
}

// before reports whether the directive is dated strictly before cutoff. A nil
// cutoff admits everything.
func before(d ast.Directive, cutoff *time.Time) bool {
	return cutoff == nil || ast.DateOf(d).Before(*cutoff)
}

// BalanceByAccount folds the postings of all transactions dated strictly
// before cutoff into per-account inventories. A nil cutoff folds the whole
// stream. The returned index is the position of the first directive dated on
// or after cutoff, or len(entries) if there is none.
//
// Only postings whose lot has not been booked cause an error.
func BalanceByAccount(entries ast.Directives, cutoff *time.Time) (Balances, int, error) {
	balances := make(Balances)
	for i, entry := range entries {
		if !before(entry, cutoff) {
			return balances, i, nil
		}
		txn, ok := entry.(*ast.Transaction)
		if !ok {
			continue
		}
		for _, posting := range txn.Postings {
			if err := balances.forAccount(posting.Account).AddPosition(posting.Position); err != nil {
				return nil, 0, postingError(txn, posting, err)
			}
		}
	}
	return balances, len(entries), nil
}

// ComputeEntriesBalance sums the positions of every posting dated strictly
// before date, optionally restricted to accounts starting with prefix.
func ComputeEntriesBalance(entries ast.Directives, prefix string, date *time.Time) (*inventory.Inventory, error) {
	total := inventory.New()
	for _, entry := range entries {
		if !before(entry, date) {
			break
		}
		txn, ok := entry.(*ast.Transaction)
		if !ok {
			continue
		}
		for _, posting := range txn.Postings {
			if prefix != "" && !strings.HasPrefix(string(posting.Account), prefix) {
				continue
			}
			if err := total.AddPosition(posting.Position); err != nil {
				return nil, postingError(txn, posting, err)
			}
		}
	}
	return total, nil
}

// ComputeResidual sums the weights of postings. The residual of a balanced
// transaction is empty.
func ComputeResidual(postings []*ast.Posting) (*inventory.Inventory, error) {
	residual := inventory.New()
	for _, posting := range postings {
		weight, err := posting.Weight()
		if err != nil {
			return nil, err
		}
		residual.AddAmount(weight, nil, time.Time{})
	}
	return residual, nil
}

// GetOpenEntries returns the Open directives of the accounts still open at
// date: opened strictly before date and not closed before it. For an account
// opened more than once the earliest Open wins. Closes of accounts that were
// never opened are ignored. The result keeps stream order.
func GetOpenEntries(entries ast.Directives, date *time.Time) []*ast.Open {
	type indexed struct {
		index int
		open  *ast.Open
	}

	opens := make(map[ast.Account]indexed)
	for i, entry := range entries {
		if !before(entry, date) {
			break
		}
		switch e := entry.(type) {
		case *ast.Open:
			if existing, ok := opens[e.Account]; !ok || ast.DateOf(e).Before(ast.DateOf(existing.open)) {
				opens[e.Account] = indexed{index: i, open: e}
			}
		case *ast.Close:
			if existing, ok := opens[e.Account]; ok && !ast.DateOf(e).Before(ast.DateOf(existing.open)) {
				delete(opens, e.Account)
			}
		}
	}

	retained := maps.Values(opens)
	slices.SortFunc(retained, func(a, b indexed) int { return a.index - b.index })

	result := make([]*ast.Open, len(retained))
	for i, r := range retained {
		result[i] = r.open
	}
	return result
}

// LastPrices returns, for every (commodity, quote currency) pair, the last
// Price directive dated strictly before date. The result keeps stream order.
func LastPrices(entries ast.Directives, date *time.Time) []*ast.Price {
	type indexed struct {
		index int
		price *ast.Price
	}

	last := make(map[[2]string]indexed)
	for i, entry := range entries {
		if !before(entry, date) {
			break
		}
		if price, ok := entry.(*ast.Price); ok {
			last[[2]string{price.Commodity, price.Amount.Currency}] = indexed{index: i, price: price}
		}
	}

	retained := maps.Values(last)
	slices.SortFunc(retained, func(a, b indexed) int { return a.index - b.index })

	result := make([]*ast.Price, len(retained))
	for i, r := range retained {
		result[i] = r.price
	}
	return result
}

func postingError(txn *ast.Transaction, posting *ast.Posting, err error) error {
	return &PostingError{
		Pos:     txn.Pos,
		Date:    ast.DateOf(txn),
		Account: posting.Account,
		Err:     err,
	}
}
