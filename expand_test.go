package immo

import (
	"testing"

	"github.com/etnz/immo/date"
	"github.com/google/go-cmp/cmp"
)

func months(ss ...string) (from, to date.Month) {
	return date.MustParseMonth(ss[0]), date.MustParseMonth(ss[1])
}

func occurrenceDates(occ []Occurrence) []string {
	var out []string
	for _, o := range occ {
		out = append(out, o.Date.String())
	}
	return out
}

func TestExpandEcheances_Quarterly(t *testing.T) {
	obligations := []Obligation{{
		ID:          "condo",
		Label:       "Charges de copropriété",
		Type:        TypeCondoFees,
		Periodicity: "quarterly",
		Amount:      "300",
		Direction:   Debit,
		StartAt:     date.New(2024, 1, 1),
		IsActive:    true,
	}}
	from, to := months("2024-01", "2024-12")
	got, diags := ExpandEcheances(obligations, from, to)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	want := []string{"2024-01-01", "2024-04-01", "2024-07-01", "2024-10-01"}
	if diff := cmp.Diff(want, occurrenceDates(got)); diff != "" {
		t.Errorf("ExpandEcheances() dates mismatch (-want +got):\n%s", diff)
	}
	for _, o := range got {
		if !o.Amount.Equal(A(300)) || o.Direction != Debit || o.ObligationID != "condo" {
			t.Errorf("occurrence %v = %v %v %q, want 300 DEBIT condo", o.Date, o.Amount, o.Direction, o.ObligationID)
		}
		if !o.Signed().Equal(A(-300)) {
			t.Errorf("Signed() = %v, want -300", o.Signed())
		}
	}
}

func TestExpandEcheances_Alignment(t *testing.T) {
	testCases := []struct {
		name  string
		ob    Obligation
		from  string
		to    string
		dates []string
	}{
		{
			name:  "quarterly anchored before the window",
			ob:    Obligation{Periodicity: "trimestrielle", StartAt: date.New(2023, 2, 10)},
			from:  "2024-01",
			to:    "2024-06",
			dates: []string{"2024-02-10", "2024-05-10"},
		},
		{
			name:  "yearly keeps the calendar month",
			ob:    Obligation{Periodicity: "yearly", StartAt: date.New(2022, 10, 15)},
			from:  "2023-01",
			to:    "2025-12",
			dates: []string{"2023-10-15", "2024-10-15", "2025-10-15"},
		},
		{
			name:  "monthly clamps the day to the month length",
			ob:    Obligation{Periodicity: "monthly", StartAt: date.New(2024, 1, 31)},
			from:  "2024-01",
			to:    "2024-04",
			dates: []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"},
		},
		{
			name:  "starts inside the window",
			ob:    Obligation{Periodicity: "monthly", StartAt: date.New(2024, 3, 5)},
			from:  "2024-01",
			to:    "2024-04",
			dates: []string{"2024-03-05", "2024-04-05"},
		},
		{
			name:  "end date is inclusive",
			ob:    Obligation{Periodicity: "monthly", StartAt: date.New(2024, 1, 5), EndAt: ptr(date.New(2024, 3, 5))},
			from:  "2024-01",
			to:    "2024-12",
			dates: []string{"2024-01-05", "2024-02-05", "2024-03-05"},
		},
		{
			name:  "end date before the due day",
			ob:    Obligation{Periodicity: "monthly", StartAt: date.New(2024, 1, 20), EndAt: ptr(date.New(2024, 3, 10))},
			from:  "2024-01",
			to:    "2024-12",
			dates: []string{"2024-01-20", "2024-02-20"},
		},
		{
			name:  "once",
			ob:    Obligation{Periodicity: "once", StartAt: date.New(2024, 6, 1)},
			from:  "2024-01",
			to:    "2024-12",
			dates: []string{"2024-06-01"},
		},
		{
			name: "once outside the window",
			ob:   Obligation{Periodicity: "once", StartAt: date.New(2023, 6, 1)},
			from: "2024-01",
			to:   "2024-12",
		},
		{
			name: "ended before the window",
			ob:   Obligation{Periodicity: "monthly", StartAt: date.New(2022, 1, 1), EndAt: ptr(date.New(2023, 12, 31))},
			from: "2024-01",
			to:   "2024-12",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := tc.ob
			ob.ID, ob.Amount, ob.Direction, ob.IsActive = "ob", "10", Debit, true
			got, diags := ExpandEcheances([]Obligation{ob}, date.MustParseMonth(tc.from), date.MustParseMonth(tc.to))
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
			if diff := cmp.Diff(tc.dates, occurrenceDates(got)); diff != "" {
				t.Errorf("dates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandEcheances_Inactive(t *testing.T) {
	obligations := []Obligation{{ID: "off", Periodicity: "monthly", Amount: "10", Direction: Debit, StartAt: date.New(2024, 1, 1)}}
	from, to := months("2024-01", "2024-12")
	if got, _ := ExpandEcheances(obligations, from, to); len(got) != 0 {
		t.Errorf("inactive obligation produced %d occurrences", len(got))
	}
}

func TestExpandEcheances_Deterministic(t *testing.T) {
	obligations := []Obligation{
		{ID: "b-tax", Type: "taxe", Periodicity: "yearly", Amount: "1 250,00", Direction: Debit, StartAt: date.New(2020, 10, 15), IsActive: true},
		{ID: "a-fees", Type: TypeCondoFees, Periodicity: "monthly", Amount: "120", Direction: "debit", StartAt: date.New(2024, 1, 15), IsActive: true},
		{ID: "c-subsidy", Periodicity: "quarterly", Amount: "90.5", Direction: Credit, StartAt: date.New(2024, 1, 15), IsActive: true},
	}
	from, to := months("2024-01", "2024-12")
	first, _ := ExpandEcheances(obligations, from, to)
	second, _ := ExpandEcheances(obligations, from, to)
	if diff := cmp.Diff(first, second, cmp.Comparer(Amount.Equal), cmp.AllowUnexported(date.Date{})); diff != "" {
		t.Errorf("two expansions differ (-first +second):\n%s", diff)
	}
	if len(first) != 12+4+1 {
		t.Fatalf("got %d occurrences, want 17", len(first))
	}
	// 2024-01-15 is shared by a-fees and c-subsidy, ties are ordered by obligation id.
	if first[0].ObligationID != "a-fees" || first[1].ObligationID != "c-subsidy" {
		t.Errorf("tie order = %q, %q want a-fees, c-subsidy", first[0].ObligationID, first[1].ObligationID)
	}
	for i := 1; i < len(first); i++ {
		if first[i].Date.Before(first[i-1].Date) {
			t.Errorf("occurrences are not sorted at %d: %v before %v", i, first[i].Date, first[i-1].Date)
		}
	}
	for _, o := range first {
		if o.ObligationID == "b-tax" && (!o.Amount.Equal(A(1250)) || o.Type != TypeTax) {
			t.Errorf("tax occurrence = %v %q, want 1250 tax", o.Amount, o.Type)
		}
	}
	if first[0].ID == "" || first[0].ID == first[1].ID {
		t.Errorf("occurrence ids must be set and distinct, got %q and %q", first[0].ID, first[1].ID)
	}
}

func TestExpandEcheances_Diagnostics(t *testing.T) {
	obligations := []Obligation{
		{ID: "no-amount", Periodicity: "monthly", Direction: Debit, StartAt: date.New(2024, 1, 1), IsActive: true},
		{ID: "bad-amount", Periodicity: "monthly", Amount: "douze", Direction: Debit, StartAt: date.New(2024, 1, 1), IsActive: true},
		{ID: "bad-period", Periodicity: "fortnightly", Amount: "10", Direction: Debit, StartAt: date.New(2024, 1, 1), IsActive: true},
		{ID: "bad-direction", Periodicity: "monthly", Amount: "10", Direction: "SIDEWAYS", StartAt: date.New(2024, 1, 1), IsActive: true},
		{ID: "ok", Periodicity: "monthly", Amount: "10", Direction: Credit, StartAt: date.New(2024, 1, 1), IsActive: true},
	}
	from, to := months("2024-01", "2024-02")
	got, diags := ExpandEcheances(obligations, from, to)

	count := map[string]int{}
	for _, o := range got {
		count[o.ObligationID]++
		if o.ObligationID != "ok" && !o.Amount.IsZero() {
			t.Errorf("%s: amount = %v, want 0", o.ObligationID, o.Amount)
		}
	}
	want := map[string]int{"no-amount": 2, "bad-amount": 2, "ok": 2}
	if diff := cmp.Diff(want, count); diff != "" {
		t.Errorf("occurrences per obligation mismatch (-want +got):\n%s", diff)
	}

	var ids []string
	for _, d := range diags {
		ids = append(ids, d.ID)
	}
	if diff := cmp.Diff([]string{"no-amount", "bad-amount", "bad-period", "bad-direction"}, ids); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandEcheances_EmptyWindow(t *testing.T) {
	obligations := []Obligation{{ID: "ob", Periodicity: "monthly", Amount: "10", Direction: Debit, StartAt: date.New(2024, 1, 1), IsActive: true}}
	from, to := months("2024-06", "2024-01")
	if got, diags := ExpandEcheances(obligations, from, to); len(got) != 0 || len(diags) != 0 {
		t.Errorf("reversed window produced %v, %v", got, diags)
	}
}

func ptr[T any](v T) *T { return &v }
