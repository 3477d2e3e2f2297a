package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
type History[T float64 | string] struct {
	months []Month
	values []T
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (month Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, *new(T) // return zero value of T
	}
	return h.months[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// search returns the insertion index of m and whether it is already present.
func (h *History[T]) search(m Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, m, Month.Compare)
}

// Append adds a point to the history.
//
// Existing value at that month are overwritten.
func (h *History[T]) Append(on Month, q T) *History[T] {
	i, found := h.search(on)
	if found {
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = q
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'month' and true or zero value and false.
func (h *History[T]) Get(month Month) (T, bool) {
	if i, found := h.search(month); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given month, or the most recent value before it.
// It returns the value and true if found, otherwise it returns the zero value and false.
func (h *History[T]) ValueAsOf(month Month) (T, bool) {
	i, found := h.search(month)
	if found {
		return h.values[i], true
	}
	// Not found. `i` is the index where `month` would be inserted.
	// The value we want is at `i-1`, which is the last entry before the target month.
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}
