package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
	"github.com/etnz/immo/insee"
	"github.com/etnz/immo/renderer"
	"github.com/etnz/immo/source"
	"github.com/google/subcommands"
)

// snapshotCmd holds the flags for the 'snapshot' subcommand.
type snapshotCmd struct {
	file        string
	mode        string
	from, to    string
	asOf        string
	property    string
	txType      string
	leaseStatus string
	index       string
	selectPath  string
	format      string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "display the cashflow and indicators of the portfolio" }
func (*snapshotCmd) Usage() string {
	return `imc snapshot -f <dataset> -from <month> -to <month> [-mode realised|prevision|lisse]

  Aggregates the portfolio over a range of months: monthly rent, charge and
  cashflow, per property totals, the agenda of dated events and the indicators.
  See "imc topic modes" for the three modes.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "portfolio.json", "Dataset file (JSON or HJSON).")
	f.StringVar(&c.mode, "mode", "", "Aggregation mode: realised, prevision or lisse. Defaults to the configured mode.")
	f.StringVar(&c.from, "from", "", "First month (YYYY-MM).")
	f.StringVar(&c.to, "to", "", "Last month (YYYY-MM).")
	f.StringVar(&c.asOf, "asof", "", "Month of the outstanding debt and park value. Defaults to -to.")
	f.StringVar(&c.property, "property", "", "Only this property.")
	f.StringVar(&c.txType, "type", "", "Force the transaction type: loyer or charges.")
	f.StringVar(&c.leaseStatus, "lease-status", "", "Only the leases with this status: active, pending or ended.")
	f.StringVar(&c.index, "index", "", "INSEE index CSV file used to revalue the properties.")
	f.StringVar(&c.selectPath, "select", "", "JSONPath expression selecting a part of the JSON snapshot, like $.kpis.ltv")
	f.StringVar(&c.format, "format", "md", "Output format: md, json or html.")
}

// request returns the aggregation request described by the flags.
func (c *snapshotCmd) request(defaultMode string, h immo.Heuristics) (req immo.Request, err error) {
	mode := c.mode
	if mode == "" {
		mode = defaultMode
	}
	if req.Mode, err = immo.ParseMode(mode); err != nil {
		return req, err
	}
	if req.From, err = date.ParseMonth(c.from); err != nil {
		return req, fmt.Errorf("invalid -from: %w", err)
	}
	if req.To, err = date.ParseMonth(c.to); err != nil {
		return req, fmt.Errorf("invalid -to: %w", err)
	}
	if c.asOf != "" {
		if req.AsOf, err = date.ParseMonth(c.asOf); err != nil {
			return req, fmt.Errorf("invalid -asof: %w", err)
		}
	}
	if req.Filters.Type, err = immo.ParseTypeFilter(c.txType); err != nil {
		return req, err
	}
	switch status := immo.LeaseStatus(c.leaseStatus); status {
	case "", immo.LeaseActive, immo.LeasePending, immo.LeaseEnded:
		req.Filters.LeaseStatus = status
	default:
		return req, fmt.Errorf("unknown lease status %q", c.leaseStatus)
	}
	req.Filters.PropertyID = c.property
	req.Heuristics = &h
	return req, nil
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}

	req, err := c.request(cfg.Mode, cfg.Heuristics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo := source.NewFileRepository(c.file, log)
	in, err := source.Fetch(ctx, repo, source.Query{PropertyID: req.Filters.PropertyID, From: req.From, To: req.To})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	var diags immo.Diagnostics
	if c.index != "" {
		series, err := insee.ReadFile(c.index)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading index: %v\n", err)
			return subcommands.ExitFailure
		}
		log.WithField("series", series.IDBank).Debug("revaluing properties")
		in.Properties, diags = immo.Revalue(in.Properties, series.Index, req.AsOfMonth())
	}

	snap, err := immo.Aggregate(in, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap.Diagnostics = append(diags, snap.Diagnostics...)
	logDiagnostics(log, snap.Diagnostics)

	if c.selectPath != "" {
		if err := selectJSON(c.selectPath, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	format := renderer.Format{Currency: currency(cfg.Currency, repo), Signed: true}
	if err := emit(c.format, snap, func() string { return renderer.SnapshotMarkdown(snap, format) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
