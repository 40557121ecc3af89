package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/beancount-core/inventory"
)

// DoctorCmd provides doctor utilities for debugging the compact notation.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Show the Go structures parsed from positions."`
}

// DumpCmd prints the parsed structure of each position.
type DumpCmd struct {
	Inventory bool             `help:"Dump the aggregated inventory instead of each position."`
	Positions PositionsOrStdin `arg:"" optional:"" help:"Positions in compact notation (read from stdin if omitted). Put negative positions after '--'."`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, stdin io.Reader) error {
	if err := cmd.Positions.Resolve(stdin); err != nil {
		return err
	}

	positions, errs := parsePositions(cmd.Positions)
	if len(errs) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().RenderAll(errs))
		return NewCommandError(1)
	}

	printer := repr.New(ctx.Stdout, repr.Indent("  "))

	if cmd.Inventory {
		inv := inventory.New()
		for _, p := range positions {
			if err := inv.AddPosition(p); err != nil {
				return err
			}
		}
		printer.Println(inv.Sorted())
		return nil
	}

	for _, p := range positions {
		printer.Println(p)
	}
	return nil
}
