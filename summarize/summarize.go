// Package summarize reconstructs balances at arbitrary dates by rewriting a
// directive stream.
//
// Every pass is a pure function: the input stream is never modified and the
// returned stream shares its directive pointers. Synthesized transactions
// carry a reserved flag (ast.FlagSummarize, ast.FlagTransfer or
// ast.FlagConversions) and balance to zero, except conversion entries which
// balance only at a zero price.
//
// The usual entry points are Clamp, which restricts a stream to a reporting
// window, and Cap, which closes the income statement at the end of the
// stream.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robinvdvleuten/beancount-core/account"
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/ast"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Narration templates of the synthesized transactions. {account} and {date}
// are substituted.
const (
	SummarizeNarration = "Opening balance for '{account}' (Summarization)"
	TransferNarration  = "Transfer balance for '{account}' (Transfer balance)"
)

// Names of the passes, used as source filename of synthesized directives.
const (
	sourceSummarize   = "summarize"
	sourceTransfer    = "transfer_balances"
	sourceConversions = "conversions"
)

// Truncate returns the prefix of entries dated strictly before end. The
// entries must be sorted.
func Truncate(entries ast.Directives, end time.Time) ast.Directives {
	return slices.Clone(entries[:entries.SearchDate(end)])
}

// CreateEntriesFromBalances creates one transaction per non-empty inventory
// in balances, visiting accounts in name order. Each transaction posts the
// inventory to its account (negated unless forward) and the negated cost of
// those positions to target, so it balances at cost.
func CreateEntriesFromBalances(balances Balances, date time.Time, target ast.Account, forward bool, source ast.Position, flag, narrationTemplate string) []*ast.Transaction {
	var txns []*ast.Transaction
	for _, name := range balances.Accounts() {
		balance := balances[name]
		if balance.IsEmpty() {
			continue
		}
		if !forward {
			balance = balance.Neg()
		}

		var postings []*ast.Posting
		for _, p := range balance.Sorted() {
			postings = append(postings, ast.NewPosting(name, p))
		}
		for _, p := range balance.Cost().Neg().Sorted() {
			postings = append(postings, ast.NewPosting(target, p))
		}

		narration := strings.NewReplacer(
			"{account}", string(name),
			"{date}", date.Format(ast.DateLayout),
		).Replace(narrationTemplate)

		txns = append(txns, ast.NewTransaction(ast.NewDateFromTime(date), narration,
			ast.WithFlag(flag),
			ast.WithSource(source),
			ast.WithPostings(postings...),
		))
	}
	return txns
}

// TransferBalances moves the balances of the accounts matched by pred into
// transferAccount as of date. The transfer transactions are dated the day
// before date, or the date of the last entry when date is nil, and inserted
// where the stream reaches date. Later balance assertions on the transferred
// accounts are dropped since they no longer hold.
//
// Empty input, or a predicate matching no account, returns entries unchanged.
func TransferBalances(entries ast.Directives, date *time.Time, pred account.Predicate, transferAccount ast.Account) (ast.Directives, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	balances, index, err := BalanceByAccount(entries, date)
	if err != nil {
		return nil, err
	}

	transfers := balances.Filter(pred)
	if len(transfers) == 0 {
		return entries, nil
	}

	transferDate := ast.DateOf(entries[len(entries)-1])
	if date != nil {
		transferDate = date.AddDate(0, 0, -1)
	}

	txns := CreateEntriesFromBalances(transfers, transferDate, transferAccount, false,
		ast.NewSyntheticPosition(sourceTransfer), ast.FlagTransfer, TransferNarration)

	result := make(ast.Directives, 0, len(entries)+len(txns))
	result = append(result, entries[:index]...)
	for _, txn := range txns {
		result = append(result, txn)
	}
	for _, entry := range entries[index:] {
		if balance, ok := entry.(*ast.Balance); ok {
			if _, transferred := transfers[balance.Account]; transferred {
				continue
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// Summarize replaces every entry dated before date by opening balance
// transactions posted against openingAccount, dated the day before date. The
// Open directives of accounts still open and the last price of every
// commodity pair are kept. Entries on or after date are unchanged.
//
// The returned index is the number of entries preceding the first entry
// dated on or after date.
func Summarize(entries ast.Directives, date time.Time, openingAccount ast.Account) (ast.Directives, int, error) {
	balances, index, err := BalanceByAccount(entries, &date)
	if err != nil {
		return nil, 0, err
	}

	txns := CreateEntriesFromBalances(balances, date.AddDate(0, 0, -1), openingAccount, true,
		ast.NewSyntheticPosition(sourceSummarize), ast.FlagSummarize, SummarizeNarration)
	opens := GetOpenEntries(entries, &date)
	prices := LastPrices(entries, &date)

	head := make(ast.Directives, 0, len(opens)+len(prices)+len(txns))
	for _, open := range opens {
		head = append(head, open)
	}
	for _, price := range prices {
		head = append(head, price)
	}
	for _, txn := range txns {
		head = append(head, txn)
	}
	head.Sort()

	result := make(ast.Directives, 0, len(head)+len(entries)-index)
	result = append(result, head...)
	result = append(result, entries[index:]...)
	return result, len(head), nil
}

// Conversions inserts a transaction cancelling the cost balance of all
// postings dated before date (the whole stream when date is nil). Such a
// balance is left by postings converted at a price rather than at cost.
// Each conversion posting is priced at zero in nullCurrency, so the
// transaction balances by weight while bringing the units balance at cost
// back to zero.
//
// The transaction is dated the day before date, or the date of the last
// entry, and inserted where the stream reaches date. If the cost balance is
// already empty entries are returned unchanged.
func Conversions(entries ast.Directives, conversionAccount ast.Account, nullCurrency string, date *time.Time) (ast.Directives, error) {
	balance, err := ComputeEntriesBalance(entries, "", date)
	if err != nil {
		return nil, err
	}

	cost := balance.Cost()
	if cost.IsEmpty() {
		return entries, nil
	}

	var conversionDate time.Time
	index := len(entries)
	if date != nil {
		conversionDate = date.AddDate(0, 0, -1)
		index = entries.SearchDate(*date)
	} else {
		conversionDate = ast.DateOf(entries[len(entries)-1])
	}

	price := amount.New(decimal.Zero, nullCurrency)
	var postings []*ast.Posting
	for _, p := range cost.Sorted() {
		postings = append(postings, ast.NewPosting(conversionAccount, p.Neg(), ast.WithPrice(price)))
	}

	txn := ast.NewTransaction(ast.NewDateFromTime(conversionDate), fmt.Sprintf("Conversion for %s", balance),
		ast.WithFlag(ast.FlagConversions),
		ast.WithSource(ast.NewSyntheticPosition(sourceConversions)),
		ast.WithPostings(postings...),
	)

	residual, err := ComputeResidual(txn.Postings)
	if err != nil {
		return nil, &UnbalancedError{Transaction: txn, Err: err}
	}
	if !residual.IsEmpty() {
		return nil, &UnbalancedError{Transaction: txn, Residual: residual.String()}
	}

	var conversion ast.Directive = txn
	return slices.Insert(slices.Clone(entries), index, conversion), nil
}

// Cap transfers the income statement accounts into earningsAccount as of the
// end of the stream and then cancels conversion balances into
// conversionsAccount. The history is kept in full.
func Cap(entries ast.Directives, types account.Types, conversionCurrency string, earningsAccount, conversionsAccount ast.Account) (ast.Directives, error) {
	cfg := &Config{
		Types:              types,
		ConversionCurrency: conversionCurrency,
		EarningsAccount:    earningsAccount,
		ConversionsAccount: conversionsAccount,
	}
	return capEntries(context.Background(), cfg, entries)
}

// Clamp restricts entries to the window [begin, end). Income statement
// balances accrued before begin are transferred into earningsAccount, all
// balances before begin are summarized against openingAccount, entries on or
// after end are dropped and the conversions of the window are cancelled into
// conversionsAccount.
//
// The returned index separates the synthesized opening entries from the
// entries of the window.
func Clamp(entries ast.Directives, begin, end time.Time, types account.Types, conversionCurrency string, earningsAccount, openingAccount, conversionsAccount ast.Account) (ast.Directives, int, error) {
	cfg := &Config{
		Types:              types,
		ConversionCurrency: conversionCurrency,
		EarningsAccount:    earningsAccount,
		OpeningAccount:     openingAccount,
		ConversionsAccount: conversionsAccount,
	}
	return clamp(context.Background(), cfg, entries, begin, end)
}
