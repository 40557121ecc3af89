package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/beancount-core/amount"
	"github.com/robinvdvleuten/beancount-core/output"
	"github.com/robinvdvleuten/beancount-core/position"
	"github.com/robinvdvleuten/beancount-core/telemetry"
)

// PositionCmd parses positions and shows how they are valued.
type PositionCmd struct {
	Price     string           `help:"Per-unit price used to compute the weight, e.g. '1.2 CAD'." placeholder:"AMOUNT"`
	Positions PositionsOrStdin `arg:"" optional:"" help:"Positions in compact notation, e.g. '10 GOOG {500 USD}' (read from stdin if omitted). Put negative positions after '--'."`
}

// Run executes the position command.
func (cmd *PositionCmd) Run(ctx *kong.Context, globals *Globals, stdin io.Reader) error {
	if err := cmd.Positions.Resolve(stdin); err != nil {
		return err
	}

	sess, report := startSession(ctx, globals, fmt.Sprintf("position (%d inputs)", len(cmd.Positions)))
	defer report()

	var price *amount.Amount
	if cmd.Price != "" {
		p, err := amount.FromString(cmd.Price)
		if err != nil {
			return fmt.Errorf("invalid --price: %w", err)
		}
		price = &p
	}

	timer := telemetry.StartTimer(sess.ctx, "position.parse")
	positions, errs := parsePositions(cmd.Positions)
	timer.End()

	if len(errs) > 0 {
		renderer := NewErrorRenderer()
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(errs))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d invalid position(s)", len(errs)))
		return NewCommandError(1)
	}

	timer = telemetry.StartTimer(sess.ctx, "position.value")
	tbl := newTable("POSITION", "UNITS", "COST", "AT COST", "WEIGHT")
	var failed []error
	for _, p := range positions {
		row, err := valuePosition(p, price)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		tbl.add(row...)
	}
	timer.End()

	styles := newStyles(ctx.Stdout)
	tbl.render(ctx.Stdout, styles.Keyword, positionCell(styles))

	for _, p := range positions {
		if p.IsNegativeAtCost() {
			printWarningf(ctx.Stderr, "%s is negative at cost", p)
		}
	}

	if len(failed) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().RenderAll(failed))
		return NewCommandError(1)
	}
	return nil
}

func parsePositions(inputs []string) ([]position.Position, []error) {
	var (
		positions []position.Position
		errs      []error
	)
	for _, input := range inputs {
		p, err := position.FromString(input)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		positions = append(positions, p)
	}
	return positions, errs
}

func valuePosition(p position.Position, price *amount.Amount) ([]string, error) {
	cost, err := p.Cost()
	if err != nil {
		return nil, err
	}
	atCost, err := p.AtCost()
	if err != nil {
		return nil, err
	}

	weight, err := p.Weight(price)
	if err != nil {
		return nil, err
	}

	return []string{p.String(), p.Units().String(), cost.String(), atCost.String(), weight.String()}, nil
}

func positionCell(styles *output.Styles) func(col int, text string) string {
	return func(col int, text string) string {
		if col == 0 {
			return styles.Lot(text)
		}
		return styles.Amount(text)
	}
}
