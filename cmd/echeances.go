package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
	"github.com/etnz/immo/renderer"
	"github.com/etnz/immo/source"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// echeancesCmd lists the occurrences of the recurring obligations.
type echeancesCmd struct {
	file     string
	from, to string
	property string
	format   string
}

func (*echeancesCmd) Name() string     { return "echeances" }
func (*echeancesCmd) Synopsis() string { return "list the occurrences of recurring obligations" }
func (*echeancesCmd) Usage() string {
	return `imc echeances -f <dataset> -from <month> -to <month> [-property <id>]

  Lists every dated occurrence of the active obligations of the dataset between
  two months, both included.
`
}

func (c *echeancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "portfolio.json", "Dataset file (JSON or HJSON).")
	f.StringVar(&c.from, "from", "", "First month (YYYY-MM).")
	f.StringVar(&c.to, "to", "", "Last month (YYYY-MM).")
	f.StringVar(&c.property, "property", "", "Only the obligations of this property.")
	f.StringVar(&c.format, "format", "md", "Output format: md, json or html.")
}

func (c *echeancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, status := setup()
	if status != subcommands.ExitSuccess {
		return status
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

	repo := source.NewFileRepository(c.file, log)
	obligations, err := repo.Obligations(ctx, source.Query{PropertyID: c.property})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	occurrences, diags := immo.ExpandEcheances(obligations, from, to)
	logDiagnostics(log, diags)

	format := renderer.Format{Currency: currency(cfg.Currency, repo), Signed: true}
	result := struct {
		Occurrences []immo.Occurrence `json:"occurrences"`
		Diagnostics immo.Diagnostics  `json:"diagnostics"`
	}{occurrences, diags}
	if err := emit(c.format, result, func() string { return renderer.OccurrencesMarkdown(occurrences, diags, format) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// currency returns the dataset currency, or def when the dataset has none.
func currency(def string, repo *source.FileRepository) string {
	if ds, err := repo.Dataset(); err == nil && ds.Currency != "" {
		return ds.Currency
	}
	return def
}

// logDiagnostics reports every diagnostic as a warning.
func logDiagnostics(log logrus.FieldLogger, diags immo.Diagnostics) {
	for _, d := range diags {
		log.WithFields(logrus.Fields{"source": d.Source, "id": d.ID}).Warn(d.Message)
	}
}
