package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/beancount-core/account"
	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/ast"
)

// Config holds the accounts and currency the summarization passes post to.
type Config struct {
	Types              account.Types
	ConversionCurrency string
	EarningsAccount    ast.Account
	OpeningAccount     ast.Account
	ConversionsAccount ast.Account
}

// DefaultConfig returns the configuration used when a ledger sets no options.
func DefaultConfig() *Config {
	types := account.DefaultTypes()
	return &Config{
		Types:              types,
		ConversionCurrency: "NOTHING",
		EarningsAccount:    ast.Account(types.Equity + ":Earnings:Previous"),
		OpeningAccount:     ast.Account(types.Equity + ":Opening-Balances"),
		ConversionsAccount: ast.Account(types.Equity + ":Conversions:Previous"),
	}
}

// ConfigFromOptions parses an options map into a Config.
// Supports:
//   - option "name_assets" ... "name_expenses" (see account.TypesFromOptions)
//   - option "conversion_currency" "NOTHING"
//   - option "account_previous_earnings" "Earnings:Previous"
//   - option "account_previous_balances" "Opening-Balances"
//   - option "account_previous_conversions" "Conversions:Previous"
//
// Account options name sub-accounts of the equity root.
func ConfigFromOptions(options map[string][]string) (*Config, error) {
	types, err := account.TypesFromOptions(options)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Types:              types,
		ConversionCurrency: "NOTHING",
	}

	if vals := options["conversion_currency"]; len(vals) > 0 {
		currency := strings.TrimSpace(vals[0])
		if !amount.IsCurrency(currency) {
			return nil, fmt.Errorf("invalid conversion_currency %q", vals[0])
		}
		cfg.ConversionCurrency = currency
	}

	accounts := []struct {
		option   string
		fallback string
		target   *ast.Account
	}{
		{"account_previous_earnings", "Earnings:Previous", &cfg.EarningsAccount},
		{"account_previous_balances", "Opening-Balances", &cfg.OpeningAccount},
		{"account_previous_conversions", "Conversions:Previous", &cfg.ConversionsAccount},
	}
	for _, a := range accounts {
		name := a.fallback
		if vals := options[a.option]; len(vals) > 0 {
			name = strings.TrimSpace(vals[0])
		}
		acct, err := ast.NewAccount(types.Equity + ":" + name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", a.option, name, err)
		}
		*a.target = acct
	}

	return cfg, nil
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

// WithContext returns a new context with the Config attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ConfigFromContext retrieves the Config from context.
// Returns a default Config if not found.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return DefaultConfig()
}
