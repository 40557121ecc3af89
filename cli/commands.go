package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Position  PositionCmd  `cmd:"" help:"Parse positions and show their units, cost and weight."`
	Inventory InventoryCmd `cmd:"" help:"Aggregate positions into an inventory."`
	Doctor    DoctorCmd    `cmd:"" help:"Doctor utilities for debugging the compact notation."`
}
