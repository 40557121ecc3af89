package summarize

import (
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/ast"
	"github.com/robinvdvleuten/beancount-core/position"
)

func day(s string) time.Time {
	return ast.MustDate(s).Time
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

// txn builds a transaction from posting lines of the form
// "Account  <position> [@ <price>]".
func txn(date, narration string, postings ...string) *ast.Transaction {
	parsed := make([]*ast.Posting, len(postings))
	for i, line := range postings {
		parsed[i] = posting(line)
	}
	return ast.NewTransaction(ast.MustDate(date), narration, ast.WithPostings(parsed...))
}

func posting(line string) *ast.Posting {
	account, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	units, price, hasPrice := strings.Cut(rest, "@")

	var opts []ast.PostingOption
	if hasPrice {
		opts = append(opts, ast.WithPrice(amount.MustParse(price)))
	}
	return ast.NewPosting(ast.Account(account), position.MustParse(units), opts...)
}

func open(date, account string) *ast.Open {
	return ast.NewOpen(ast.MustDate(date), ast.Account(account))
}

func closeAccount(date, account string) *ast.Close {
	return ast.NewClose(ast.MustDate(date), ast.Account(account))
}

func price(date, commodity, quote string) *ast.Price {
	return ast.NewPrice(ast.MustDate(date), commodity, amount.MustParse(quote))
}

func sorted(entries ...ast.Directive) ast.Directives {
	d := ast.Directives(entries)
	d.Sort()
	return d
}

// render returns the postings of t as "Account <position> [@ <price>]".
func render(t *ast.Transaction) []string {
	lines := make([]string, len(t.Postings))
	for i, p := range t.Postings {
		line := string(p.Account) + " " + p.Position.String()
		if p.Price != nil {
			line += " @ " + p.Price.String()
		}
		lines[i] = line
	}
	return lines
}

// flagged returns the transactions of entries carrying flag.
func flagged(entries ast.Directives, flag string) []*ast.Transaction {
	var txns []*ast.Transaction
	for _, t := range entries.Transactions() {
		if t.Flag == flag {
			txns = append(txns, t)
		}
	}
	return txns
}

// includes reports whether every directive of want is present in got.
func includes(got ast.Directives, want ...ast.Directive) bool {
	present := make(map[ast.Directive]bool, len(got))
	for _, d := range got {
		present[d] = true
	}
	for _, d := range want {
		if !present[d] {
			return false
		}
	}
	return true
}

// ledgerFixture is a ledger spanning 2010 and early 2011, split into the
// groups that summarization treats differently.
type ledgerFixture struct {
	opens          []ast.Directive
	redundantPrice []ast.Directive
	lastPrice      *ast.Price
	before         []ast.Directive
	period         []ast.Directive
	balance        *ast.Balance
	entries        ast.Directives
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{}

	for _, name := range []string{
		"Assets:US:Chase:Checking",
		"Assets:US:Investing:GOOG",
		"Assets:CA:BMO:Checking",
		"Liabilities:US:Chase:CreditCard",
		"Income:US:Employer:Salary",
		"Expenses:Taxes",
		"Expenses:Restaurant",
		"Expenses:Flights",
		"Expenses:Internet",
	} {
		f.opens = append(f.opens, open("2010-01-01", name))
	}

	for _, d := range []string{"2010-02-01", "2010-03-01", "2010-04-01", "2010-05-01", "2010-08-01", "2010-10-01"} {
		f.redundantPrice = append(f.redundantPrice, price(d, "USD", "1.10 CAD"))
	}
	f.lastPrice = price("2010-12-01", "USD", "1.16 CAD")

	salary := func(date string) *ast.Transaction {
		return txn(date, "",
			"Income:US:Employer:Salary  -5000 USD",
			"Assets:US:Chase:Checking  3000 USD",
			"Expenses:Taxes  2000 USD",
		)
	}

	f.before = []ast.Directive{
		open("2010-01-01", "Assets:US:Temporary"),
		closeAccount("2010-11-22", "Assets:US:Temporary"),
		salary("2010-11-16"),
		txn("2010-11-20", "First hit on credit card account",
			"Liabilities:US:Chase:CreditCard  -67.20 USD",
			"Expenses:Restaurant  67.20 USD",
		),
		txn("2010-11-26", "Second hit on credit card account (same account)",
			"Liabilities:US:Chase:CreditCard  -345.23 USD",
			"Expenses:Flights  345.23 USD",
		),
		txn("2010-11-30", "",
			"Assets:US:Chase:Checking  -80.02 USD",
			"Expenses:Internet  80.02 USD",
		),
		txn("2010-12-05", "Unit held at cost",
			"Assets:US:Investing:GOOG  5 GOOG {510.00 USD}",
			"Assets:US:Chase:Checking  -2550 USD",
		),
		txn("2010-12-05", "Conversion",
			"Assets:US:Chase:Checking  -910 USD",
			"Assets:CA:BMO:Checking  1000 CAD @ 0.91 USD",
		),
		salary("2010-12-16"),
	}

	f.period = []ast.Directive{
		price("2011-02-01", "USD", "1.17 CAD"),
		price("2011-04-01", "USD", "1.18 CAD"),
		salary("2011-01-16"),
		txn("2011-01-20", "Dinner at Cull & Pistol",
			"Liabilities:US:Chase:CreditCard  -89.23 USD",
			"Expenses:Restaurant  89.23 USD",
		),
		open("2011-02-01", "Assets:Cash"),
		txn("2011-02-02", "Cafe Mogador",
			"Expenses:Restaurant  37.92 USD",
			"Assets:Cash  -37.92 USD",
		),
		salary("2011-02-16"),
	}

	f.balance = ast.NewBalance(ast.MustDate("2011-03-15"), "Assets:US:Chase:Checking", amount.MustParse("8459.98 USD"))

	var all []ast.Directive
	all = append(all, f.opens...)
	all = append(all, f.redundantPrice...)
	all = append(all, f.lastPrice)
	all = append(all, f.before...)
	all = append(all, f.period...)
	all = append(all, f.balance)
	f.entries = sorted(all...)

	return f
}

// conversionFixture holds transfers between currencies at a price, and a
// purchase at cost.
func conversionFixture() ast.Directives {
	return sorted(
		open("2012-01-01", "Income:US:Job"),
		open("2012-01-01", "Assets:US:Checking"),
		open("2012-01-01", "Assets:CA:Invest"),
		open("2012-01-01", "Assets:CA:Invest:NT"),
		txn("2012-03-01", "Earn some money",
			"Income:US:Job  -1000 USD",
			"Assets:US:Checking  1000 USD",
		),
		txn("2012-03-02", "Transfer to Investment",
			"Assets:US:Checking  -800 USD",
			"Assets:CA:Invest  800 CAD @ 1 USD",
		),
		txn("2012-03-03", "Buy some stock",
			"Assets:CA:Invest  -600 CAD",
			"Assets:CA:Invest:NT  60 NT {10 CAD}",
		),
		txn("2012-05-01", "Transfer some money back",
			"Assets:CA:Invest  -100 CAD @ 1 USD",
			"Assets:US:Checking  100 USD",
		),
	)
}
