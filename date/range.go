package date

import (
	"iter"
)

// Range represents a range of dates, boundaries included.
//
// A zero To means the range is open ended.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if date.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !date.After(r.To)
}

// Overlaps reports whether at least one day of month m is inside the range.
func (r Range) Overlaps(m Month) bool {
	if r.From.After(m.Last()) {
		return false
	}
	return r.To.IsZero() || !r.To.Before(m.First())
}

// MonthRange is a contiguous range of calendar months, boundaries included.
//
// Unlike Range, a MonthRange whose From is after To is valid and empty.
type MonthRange struct{ From, To Month }

// NewMonthRange returns the range [from, to].
func NewMonthRange(from, to Month) MonthRange { return MonthRange{From: from, To: to} }

// Len returns the number of months in the range.
func (r MonthRange) Len() int {
	if r.From.After(r.To) {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// IsEmpty reports whether the range contains no month.
func (r MonthRange) IsEmpty() bool { return r.Len() == 0 }

// Contains reports whether m is in the range.
func (r MonthRange) Contains(m Month) bool { return !m.Before(r.From) && !m.After(r.To) }

// Index returns the position of m in the range.
func (r MonthRange) Index(m Month) (int, bool) {
	if !r.Contains(m) {
		return 0, false
	}
	return m.Sub(r.From), true
}

// Months returns an iterator that yields each month of the range in chronological order.
func (r MonthRange) Months() iter.Seq[Month] {
	return func(yield func(Month) bool) {
		for m := r.From; !m.After(r.To); m = m.Add(1) {
			if !yield(m) {
				return
			}
		}
	}
}

// List returns the months of the range as a slice.
func (r MonthRange) List() []Month {
	months := make([]Month, 0, r.Len())
	for m := range r.Months() {
		months = append(months, m)
	}
	return months
}

// Days returns the range of days covered by the months.
func (r MonthRange) Days() Range { return Range{From: r.From.First(), To: r.To.Last()} }
