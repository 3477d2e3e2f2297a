package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
	"github.com/etnz/immo/renderer"
	"github.com/etnz/immo/source"
	"github.com/google/subcommands"
)

// scheduleCmd prints the amortization schedule of a loan.
type scheduleCmd struct {
	file   string
	loanID string

	principal string
	rate      float64
	months    int
	deferment int
	insurance float64
	start     string

	format string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the amortization schedule of a loan" }
func (*scheduleCmd) Usage() string {
	return `imc schedule -principal <amount> -rate <pct> -months <n> [-deferment <n>] [-insurance <pct>] [-start <date>]
imc schedule -f <dataset> -loan <id>

  Displays the monthly payments of a fixed-rate loan, either described by the flags
  or read from a dataset.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Dataset file (JSON or HJSON) to read the loan from.")
	f.StringVar(&c.loanID, "loan", "", "Identifier of the loan in the dataset.")
	f.StringVar(&c.principal, "principal", "", "Borrowed capital.")
	f.Float64Var(&c.rate, "rate", 0, "Nominal annual rate in percent.")
	f.IntVar(&c.months, "months", 0, "Number of monthly payments.")
	f.IntVar(&c.deferment, "deferment", 0, "Number of leading interest-only months.")
	f.Float64Var(&c.insurance, "insurance", 0, "Annual insurance rate in percent of the principal.")
	f.StringVar(&c.start, "start", date.Today().String(), "Date of the first payment.")
	f.StringVar(&c.format, "format", "md", "Output format: md, json or html.")
}

// loan returns the loan described by the flags or the dataset.
func (c *scheduleCmd) loan(ctx context.Context) (immo.Loan, error) {
	if c.loanID != "" {
		if c.file == "" {
			return immo.Loan{}, fmt.Errorf("-loan requires a dataset (-f)")
		}
		loans, err := source.NewFileRepository(c.file, nil).Loans(ctx, source.Query{})
		if err != nil {
			return immo.Loan{}, err
		}
		i := slices.IndexFunc(loans, func(l immo.Loan) bool { return l.ID == c.loanID })
		if i < 0 {
			return immo.Loan{}, fmt.Errorf("loan %q not found in %s", c.loanID, c.file)
		}
		return loans[i], nil
	}

	principal, err := immo.ParseAmount(c.principal)
	if err != nil {
		return immo.Loan{}, fmt.Errorf("invalid principal: %w", err)
	}
	start, err := date.Parse(c.start)
	if err != nil {
		return immo.Loan{}, fmt.Errorf("invalid start date: %w", err)
	}
	return immo.Loan{
		Principal:       principal,
		AnnualRatePct:   c.rate,
		DurationMonths:  c.months,
		DefermentMonths: c.deferment,
		InsurancePct:    c.insurance,
		StartDate:       start,
		IsActive:        true,
	}, nil
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}

	loan, err := c.loan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := immo.BuildSchedule(loan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	format := renderer.Format{Currency: cfg.Currency}
	if err := emit(c.format, s, func() string { return renderer.ScheduleMarkdown(s, format) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
