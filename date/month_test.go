package date

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2024-01", want: NewMonth(2024, time.January)},
		{in: "2024-7", want: NewMonth(2024, time.July)},
		{in: "2024-07-14", want: NewMonth(2024, time.July)},
		{in: "2024-13", wantErr: true},
		{in: "july", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMonth(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMonth) {
				t.Errorf("ParseMonth(%q) error = %v, want ErrInvalidMonth", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonthArithmetic(t *testing.T) {
	jan := NewMonth(2024, time.January)
	if got, want := jan.Add(-1), NewMonth(2023, time.December); got != want {
		t.Errorf("Add(-1) = %v, want %v", got, want)
	}
	if got, want := jan.Add(23), NewMonth(2025, time.December); got != want {
		t.Errorf("Add(23) = %v, want %v", got, want)
	}
	if got := NewMonth(2025, time.March).Sub(jan); got != 14 {
		t.Errorf("Sub() = %d, want 14", got)
	}
	if got := jan.String(); got != "2024-01" {
		t.Errorf("String() = %q, want %q", got, "2024-01")
	}
}

func TestMonthDay(t *testing.T) {
	feb := NewMonth(2024, time.February)
	testCases := []struct {
		day  int
		want Date
	}{
		{day: 1, want: New(2024, 2, 1)},
		{day: 15, want: New(2024, 2, 15)},
		{day: 31, want: New(2024, 2, 29)},
		{day: 0, want: New(2024, 2, 1)},
	}
	for _, tc := range testCases {
		if got := feb.Day(tc.day); got != tc.want {
			t.Errorf("Day(%d) = %v, want %v", tc.day, got, tc.want)
		}
	}
	if got, want := feb.Last(), New(2024, 2, 29); got != want {
		t.Errorf("Last() = %v, want %v", got, want)
	}
}

func TestMonthRange(t *testing.T) {
	r := NewMonthRange(MustParseMonth("2023-11"), MustParseMonth("2024-02"))
	want := []Month{MustParseMonth("2023-11"), MustParseMonth("2023-12"), MustParseMonth("2024-01"), MustParseMonth("2024-02")}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if i, ok := r.Index(MustParseMonth("2024-01")); !ok || i != 2 {
		t.Errorf("Index(2024-01) = %d, %v, want 2, true", i, ok)
	}
	if _, ok := r.Index(MustParseMonth("2024-03")); ok {
		t.Errorf("Index(2024-03) should be out of range")
	}

	empty := NewMonthRange(MustParseMonth("2024-02"), MustParseMonth("2024-01"))
	if !empty.IsEmpty() || len(empty.List()) != 0 {
		t.Errorf("reversed range should be empty, got %v", empty.List())
	}
}

func TestRangeOverlaps(t *testing.T) {
	lease := Range{From: New(2024, 3, 15), To: New(2024, 6, 10)}
	testCases := []struct {
		month string
		want  bool
	}{
		{"2024-02", false},
		{"2024-03", true},
		{"2024-06", true},
		{"2024-07", false},
	}
	for _, tc := range testCases {
		if got := lease.Overlaps(MustParseMonth(tc.month)); got != tc.want {
			t.Errorf("Overlaps(%s) = %v, want %v", tc.month, got, tc.want)
		}
	}
	open := Range{From: New(2024, 3, 15)}
	if !open.Overlaps(MustParseMonth("2030-01")) {
		t.Errorf("open ended range should overlap any later month")
	}
}

func TestParsePeriodicity(t *testing.T) {
	testCases := []struct {
		in   string
		want Periodicity
		step int
	}{
		{"monthly", Monthly, 1},
		{"Trimestrielle", Quarterly, 3},
		{"semestriel", Semiannual, 6},
		{" yearly ", Yearly, 12},
		{"once", Once, 0},
	}
	for _, tc := range testCases {
		got, err := ParsePeriodicity(tc.in)
		if err != nil {
			t.Fatalf("ParsePeriodicity(%q) error = %v", tc.in, err)
		}
		if got != tc.want || got.Step() != tc.step {
			t.Errorf("ParsePeriodicity(%q) = %v (step %d), want %v (step %d)", tc.in, got, got.Step(), tc.want, tc.step)
		}
	}
	if _, err := ParsePeriodicity("fortnightly"); !errors.Is(err, ErrUnknownPeriodicity) {
		t.Errorf("ParsePeriodicity(fortnightly) error = %v, want ErrUnknownPeriodicity", err)
	}
}
