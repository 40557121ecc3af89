package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/beancount-core/cli"
)

var app struct {
	Version kong.VersionFlag `help:"Show version information"`
	cli.Commands
}

func main() {
	ctx := kong.Parse(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("beancount-core"),
		kong.Description("Inspect positions and inventories written in the compact notation."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
		kong.BindTo(os.Stdin, (*io.Reader)(nil)),
	)

	result := cli.ResultOf(ctx.Run())
	if result.ExitCode == 0 {
		return
	}
	if _, ok := result.Err.(*cli.CommandError); !ok {
		ctx.FatalIfErrorf(result.Err)
	}
	os.Exit(result.ExitCode)
}

func buildVersion() string {
	version := cli.Version
	if version == "" {
		version = "dev"
	}
	if cli.CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, cli.CommitSHA)
}
