package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/immo"
)

var modeTitles = map[immo.Mode]string{
	immo.Realized:  "Realized",
	immo.Projected: "Projected",
	immo.Smoothed:  "Smoothed",
}

// SnapshotMarkdown renders a portfolio snapshot: KPIs, monthly series, per
// property totals, agenda and diagnostics.
func SnapshotMarkdown(s *immo.PortfolioSnapshot, f Format) string {
	var b strings.Builder
	plain := f.Plain()

	fmt.Fprintf(&b, "# %s cashflow from %s to %s\n\n", modeTitles[s.Mode], s.Period.From, s.Period.To)

	k := s.KPIs
	fmt.Fprint(&b, "## Indicators\n\n")
	fmt.Fprintf(&b, "* Park value: %s\n", plain.OptionalAmount(k.ParkValue))
	fmt.Fprintf(&b, "* Outstanding debt: %s\n", plain.OptionalAmount(k.OutstandingDebt))
	fmt.Fprintf(&b, "* LTV: %s\n", plain.Percent(k.LTV))
	fmt.Fprintf(&b, "* Last month cashflow: %s\n", f.OptionalAmount(k.MonthCashflow))
	fmt.Fprintf(&b, "* Average cashflow: %s\n", f.OptionalAmount(k.AverageAnnualCashflow))
	fmt.Fprintf(&b, "* Net yield: %s\n", plain.Percent(k.NetYield))
	fmt.Fprintf(&b, "* Vacancy: %s\n\n", plain.Percent(k.VacancyPct))

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Monthly\n\n")
		fmt.Fprintln(w, "| Month | Rent | Charge | Cashflow |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		for i, p := range s.Rent {
			row(w, p.Month.String(), plain.Amount(p.Value), plain.Amount(s.Charge[i].Value), f.Amount(s.Cashflow[i].Value))
		}
		row(w, "**Total**",
			"**"+plain.Amount(s.Rent.Sum())+"**",
			"**"+plain.Amount(s.Charge.Sum())+"**",
			"**"+f.Amount(s.Cashflow.Sum())+"**",
		)
		fmt.Fprintln(w)
		return len(s.Rent) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Properties\n\n")
		fmt.Fprintln(w, "| Property | Rent | Charge | Cashflow | Value | Debt |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|")
		for _, p := range s.Properties {
			name := p.PropertyID
			if p.Name != "" {
				name = p.Name
			}
			row(w, cell(name), plain.Amount(p.Rent), plain.Amount(p.Charge), f.Amount(p.Cashflow), plain.Amount(p.Value), plain.Amount(p.OutstandingDebt))
		}
		fmt.Fprintln(w)
		return len(s.Properties) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Agenda\n\n")
		fmt.Fprintln(w, "| Date | Source | Label | Property | Amount |")
		fmt.Fprintln(w, "|:---|:---|:---|:---|---:|")
		for _, e := range s.Agenda {
			label := e.Label
			if label == "" {
				label = e.ID
			}
			row(w, e.Date.String(), e.Source, cell(label), cell(e.PropertyID), f.Amount(e.Amount))
		}
		fmt.Fprintln(w)
		return len(s.Agenda) > 0
	})

	diagnosticsBlock(&b, s.Diagnostics)
	return b.String()
}
