package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/robinvdvleuten/beancount-core/account"
	"github.com/robinvdvleuten/beancount-core/ast"
	"github.com/robinvdvleuten/beancount-core/telemetry"
)

// ClampContext is Clamp with its accounts and currency taken from the Config
// in ctx. Each stage is timed on the telemetry collector of ctx and the
// context is checked for cancellation between stages.
func ClampContext(ctx context.Context, entries ast.Directives, begin, end time.Time) (ast.Directives, int, error) {
	return clamp(ctx, ConfigFromContext(ctx), entries, begin, end)
}

func clamp(ctx context.Context, cfg *Config, entries ast.Directives, begin, end time.Time) (ast.Directives, int, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("summarize.clamp (%d directives)", len(entries)))
	defer timer.End()

	var (
		result ast.Directives
		index  int
	)
	stages := []stage{
		{"transfer", func() (err error) {
			result, err = TransferBalances(entries, &begin, account.IncomeStatement(cfg.Types), cfg.EarningsAccount)
			return err
		}},
		{"summarize", func() (err error) {
			result, index, err = Summarize(result, begin, cfg.OpeningAccount)
			return err
		}},
		{"truncate", func() error {
			result = Truncate(result, end)
			return nil
		}},
		{"conversions", func() (err error) {
			result, err = Conversions(result, cfg.ConversionsAccount, cfg.ConversionCurrency, &end)
			return err
		}},
	}

	if err := runStages(ctx, timer, stages); err != nil {
		return nil, 0, err
	}
	return result, index, nil
}

// CapContext is Cap with its accounts and currency taken from the Config in
// ctx.
func CapContext(ctx context.Context, entries ast.Directives) (ast.Directives, error) {
	return capEntries(ctx, ConfigFromContext(ctx), entries)
}

func capEntries(ctx context.Context, cfg *Config, entries ast.Directives) (ast.Directives, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("summarize.cap (%d directives)", len(entries)))
	defer timer.End()

	var result ast.Directives
	stages := []stage{
		{"transfer", func() (err error) {
			result, err = TransferBalances(entries, nil, account.IncomeStatement(cfg.Types), cfg.EarningsAccount)
			return err
		}},
		{"conversions", func() (err error) {
			result, err = Conversions(result, cfg.ConversionsAccount, cfg.ConversionCurrency, nil)
			return err
		}},
	}

	if err := runStages(ctx, timer, stages); err != nil {
		return nil, err
	}
	return result, nil
}

// SummarizeContext is Summarize against the opening account of the Config in
// ctx.
func SummarizeContext(ctx context.Context, entries ast.Directives, date time.Time) (ast.Directives, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("summarize.summarize (%d directives)", len(entries)))
	defer timer.End()

	return Summarize(entries, date, ConfigFromContext(ctx).OpeningAccount)
}

// stage is one timed step of a composed pass.
type stage struct {
	name string
	run  func() error
}

func runStages(ctx context.Context, parent telemetry.Timer, stages []stage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		timer := parent.Child(s.name)
		err := s.run()
		timer.End()
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
