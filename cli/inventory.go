package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/beancount-core/inventory"
	"github.com/robinvdvleuten/beancount-core/telemetry"
)

// InventoryCmd aggregates positions into an inventory.
type InventoryCmd struct {
	Cost      bool             `help:"Also show the inventory converted to cost."`
	Positions PositionsOrStdin `arg:"" optional:"" help:"Positions in compact notation (read from stdin if omitted). Put negative positions after '--'."`
}

// Run executes the inventory command.
func (cmd *InventoryCmd) Run(ctx *kong.Context, globals *Globals, stdin io.Reader) error {
	if err := cmd.Positions.Resolve(stdin); err != nil {
		return err
	}

	sess, report := startSession(ctx, globals, fmt.Sprintf("inventory (%d inputs)", len(cmd.Positions)))
	defer report()

	timer := telemetry.StartTimer(sess.ctx, "inventory.parse")
	positions, errs := parsePositions(cmd.Positions)
	timer.End()

	if len(errs) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().RenderAll(errs))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d invalid position(s)", len(errs)))
		return NewCommandError(1)
	}

	timer = telemetry.StartTimer(sess.ctx, "inventory.aggregate")
	inv := inventory.New()
	for _, p := range positions {
		if err := inv.AddPosition(p); err != nil {
			timer.End()
			_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().Render(err))
			return NewCommandError(1)
		}
	}
	timer.End()

	styles := newStyles(ctx.Stdout)

	tbl := newTable("CURRENCY", "UNITS")
	for _, currency := range inv.Currencies() {
		tbl.add(currency, inv.Units(currency).String())
	}
	tbl.render(ctx.Stdout, styles.Keyword, positionCell(styles))

	_, _ = fmt.Fprintln(ctx.Stdout)
	printInfof(ctx.Stdout, "%s", styles.Lot(inv.String()))

	if cmd.Cost {
		timer = telemetry.StartTimer(sess.ctx, "inventory.cost")
		cost := inv.Cost()
		timer.End()
		printInfof(ctx.Stdout, "at cost %s", styles.Amount(cost.String()))
	}

	if inv.IsEmpty() {
		printSuccess(ctx.Stdout, "Positions cancel out")
		return nil
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("%d position(s) in %d lot(s)", len(positions), inv.Len()))
	return nil
}
