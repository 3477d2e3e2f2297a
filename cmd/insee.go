package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/immo/date"
	"github.com/etnz/immo/insee"
	"github.com/google/subcommands"
)

// inseeCmd is the top-level command for INSEE-related operations.
type inseeCmd struct{}

func (*inseeCmd) Name() string     { return "insee" }
func (*inseeCmd) Synopsis() string { return "INSEE index series commands" }
func (*inseeCmd) Usage() string {
	return `insee <subcommand> <options>

INSEE index series commands.
`
}
func (c *inseeCmd) SetFlags(f *flag.FlagSet) {}

func (c *inseeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "insee")
	commander.Register(&inseeFetchCmd{}, "")
	return commander.Execute(ctx, args...)
}

// inseeFetchCmd implements the "insee fetch" command.
type inseeFetchCmd struct {
	idBank   string
	from, to string
	output   string
}

func (*inseeFetchCmd) Name() string     { return "fetch" }
func (*inseeFetchCmd) Synopsis() string { return "downloads an index series from INSEE" }
func (*inseeFetchCmd) Usage() string {
	return `insee fetch -id <idBank> -from <month> -to <month> [-o <file.csv>]

Downloads an index series from bdm.insee.fr, and writes it as CSV, most recent
value first. The file can be used by "imc snapshot -index".
`
}

func (c *inseeFetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.idBank, "id", "", "INSEE series identifier (idBank), like 010567059 for the price index of old dwellings.")
	f.StringVar(&c.from, "from", "", "First month (YYYY-MM).")
	f.StringVar(&c.to, "to", date.Today().YearMonth().String(), "Last month (YYYY-MM).")
	f.StringVar(&c.output, "o", "", "Output CSV file. Defaults to stdout.")
}

func (c *inseeFetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, log, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.idBank == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	from, err := date.ParseMonth(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.ParseMonth(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
		return subcommands.ExitUsageError
	}

	series, err := insee.New(log).Fetch(ctx, c.idBank, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from bdm.insee.fr: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := series.WriteCSV(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	log.WithField("values", series.Index.Len()).Infof("fetched %q", series.Libelle)
	return subcommands.ExitSuccess
}
