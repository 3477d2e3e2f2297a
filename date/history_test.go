package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	m1, v1 := NewMonth(2025, 7), "25 Jul"
	m2, v2 := NewMonth(2024, 7), "24 Jul"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(m1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(m1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(m2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(m2, v2).Len() = %v want 2", h.Len())
	}

	if h.months[0] != m2 || h.months[1] != m1 {
		t.Errorf("history months = %v want [%v %v]", h.months, m2, m1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	h.Append(m1, "overwritten")
	if got, _ := h.Get(m1); got != "overwritten" || h.Len() != 2 {
		t.Errorf("Append() on existing month should overwrite, got %q (len %d)", got, h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(NewMonth(2024, 3), 120.5)
	h.Append(NewMonth(2024, 6), 121.0)

	testCases := []struct {
		name   string
		month  Month
		want   float64
		wantOk bool
	}{
		{"before first", NewMonth(2024, 1), 0, false},
		{"exact", NewMonth(2024, 3), 120.5, true},
		{"between", NewMonth(2024, 5), 120.5, true},
		{"after last", NewMonth(2025, 1), 121.0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.month)
			if got != tc.want || ok != tc.wantOk {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.month, got, ok, tc.want, tc.wantOk)
			}
		})
	}
	if m, v := h.Latest(); m != NewMonth(2024, 6) || v != 121.0 {
		t.Errorf("Latest() = %v, %v", m, v)
	}
}
