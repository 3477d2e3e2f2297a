package immo

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/immo/date"
	"github.com/google/uuid"
)

// occurrenceID derives a stable identifier for the occurrence of obligation on day.
func occurrenceID(obligation string, day date.Date) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("immo:occurrence:"+obligation+":"+day.String())).String()
}

// ExpandEcheances expands recurring obligations into dated occurrences over the
// months [from, to].
//
// Occurrences are aligned on the obligation's start month, stepping by its
// periodicity, and fall on the start day clamped to the month length. An
// inactive obligation yields nothing, and no occurrence is ever emitted before
// StartAt or after EndAt. Output is sorted by date then obligation id.
//
// Obligations that cannot be expanded (unknown periodicity or direction) are
// skipped; a missing or malformed amount expands as 0. Both cases are reported
// in the returned diagnostics.
func ExpandEcheances(obligations []Obligation, from, to date.Month) ([]Occurrence, Diagnostics) {
	window := date.NewMonthRange(from, to)
	var (
		out   []Occurrence
		diags Diagnostics
	)
	if window.IsEmpty() {
		return out, diags
	}
	for _, o := range obligations {
		if !o.IsActive {
			continue
		}
		occurrences, err := o.expand(window, &diags)
		if err != nil {
			diags.add("obligation", o.ID, err)
			continue
		}
		out = append(out, occurrences...)
	}
	slices.SortStableFunc(out, compareOccurrences)
	return out, diags
}

func compareOccurrences(a, b Occurrence) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ObligationID, b.ObligationID); c != 0 {
		return c
	}
	return cmp.Compare(a.Label, b.Label)
}

// expand returns the occurrences of o inside window.
func (o Obligation) expand(window date.MonthRange, diags *Diagnostics) ([]Occurrence, error) {
	periodicity, err := date.ParsePeriodicity(o.Periodicity)
	if err != nil {
		return nil, err
	}
	direction, err := o.Direction.normalize()
	if err != nil {
		return nil, err
	}
	if o.StartAt.IsZero() {
		return nil, errors.New("start date is missing")
	}
	if o.EndAt != nil && o.EndAt.Before(o.StartAt) {
		return nil, fmt.Errorf("ends on %s before it starts on %s", o.EndAt, o.StartAt)
	}
	amount, err := o.Amount.Normalize()
	if err != nil {
		diags.addf("obligation", o.ID, "amount %q treated as 0: %v", string(o.Amount), err)
		amount = Amount{}
	}
	amount = amount.Abs()

	var out []Occurrence
	for m := range o.months(periodicity, window) {
		day := m.Day(o.StartAt.Day())
		if day.Before(o.StartAt) {
			continue
		}
		if o.EndAt != nil && day.After(*o.EndAt) {
			break
		}
		out = append(out, Occurrence{
			ID:           occurrenceID(o.ID, day),
			Date:         day,
			Amount:       amount,
			Direction:    direction,
			Type:         o.Type.Label(),
			Label:        o.Label,
			ObligationID: o.ID,
			PropertyID:   o.PropertyID,
			Recoverable:  o.Recoverable,
		})
	}
	return out, nil
}

// months yields the due months of o inside window, anchored on the start month.
func (o Obligation) months(p date.Periodicity, window date.MonthRange) iter.Seq[date.Month] {
	start := o.StartAt.YearMonth()
	return func(yield func(date.Month) bool) {
		step := p.Step()
		if step == 0 {
			if window.Contains(start) {
				yield(start)
			}
			return
		}
		m := start
		if start.Before(window.From) {
			// first due month at or after the window start
			k := (window.From.Sub(start) + step - 1) / step
			m = start.Add(k * step)
		}
		for ; !m.After(window.To); m = m.Add(step) {
			if !yield(m) {
				return
			}
		}
	}
}
