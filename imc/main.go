// Command imc projects the cashflow of a real estate portfolio.
//
// Run "imc topic" for the documentation.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/immo/cmd"
	"github.com/google/subcommands"
)

func main() {
	// completion exits when the shell asks for it
	cmd.Completion().Complete("imc")

	commander := subcommands.NewCommander(flag.CommandLine, "imc")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
