package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/immo"
)

// ScheduleMarkdown renders the amortization table of a loan.
func ScheduleMarkdown(s *immo.Schedule, f Format) string {
	f = f.Plain()
	var b strings.Builder
	title := "Amortization schedule"
	if s.LoanID != "" {
		title += " of " + s.LoanID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(s.Rows) == 0 {
		fmt.Fprintln(&b, "No payment.")
		return b.String()
	}

	t := s.Totals()
	fmt.Fprintf(&b, "* Principal: %s\n", f.Amount(s.Principal))
	fmt.Fprintf(&b, "* Payments: %d, from %s to %s\n", len(s.Rows), s.First(), s.Last())
	fmt.Fprintf(&b, "* Total interest: %s\n", f.Amount(t.Interest))
	fmt.Fprintf(&b, "* Total insurance: %s\n", f.Amount(t.Insurance))
	fmt.Fprintf(&b, "* Cost of credit: %s\n\n", f.Amount(t.CreditCost()))

	fmt.Fprintln(&b, "| # | Month | Principal | Interest | Insurance | Payment | Remaining |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|---:|")
	for _, r := range s.Rows {
		row(&b,
			fmt.Sprint(r.MonthIndex),
			r.Month.String(),
			f.Amount(r.PaymentPrincipal),
			f.Amount(r.PaymentInterest),
			f.Amount(r.PaymentInsurance),
			f.Amount(r.PaymentTotal),
			f.Amount(r.RemainingCapital),
		)
	}
	fmt.Fprintln(&b)
	return b.String()
}

// OccurrencesMarkdown renders the occurrences of recurring obligations.
func OccurrencesMarkdown(occurrences []immo.Occurrence, diags immo.Diagnostics, f Format) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Échéances\n\n")
	if len(occurrences) == 0 {
		fmt.Fprint(&b, "No occurrence.\n\n")
	} else {
		fmt.Fprintln(&b, "| Date | Label | Type | Property | Amount |")
		fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|")
		var total immo.Amount
		for _, o := range occurrences {
			row(&b, o.Date.String(), cell(o.Label), string(o.Type), cell(o.PropertyID), f.Amount(o.Signed()))
			total = total.Add(o.Signed())
		}
		row(&b, "**Total**", "", "", "", "**"+f.Amount(total)+"**")
		fmt.Fprintln(&b)
	}
	diagnosticsBlock(&b, diags)
	return b.String()
}

// diagnosticsBlock writes the diagnostics section, only if there is any.
func diagnosticsBlock(w io.Writer, diags immo.Diagnostics) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprint(w, "## Diagnostics\n\n")
		for _, d := range diags {
			fmt.Fprintf(w, "* %s\n", d)
		}
		fmt.Fprintln(w)
		return len(diags) > 0
	})
}
