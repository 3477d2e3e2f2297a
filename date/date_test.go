package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-15", want: New(2024, time.January, 15)},
		{in: "2024-1-5", want: New(2024, time.January, 5)},
		{in: " 2024-12-31 ", want: New(2024, time.December, 31)},
		{in: "2024-03-01T10:00:00Z", want: New(2024, time.March, 1)},
		{in: "15/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 5, 31), New(2024, 6, 1)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("%v should be before %v", a, b)
	}
	if a.Compare(a) != 0 {
		t.Errorf("%v.Compare(itself) = %d, want 0", a, a.Compare(a))
	}
}

func TestDateJSON(t *testing.T) {
	var got struct {
		On Date `json:"on"`
	}
	if err := json.Unmarshal([]byte(`{"on":"2024-2-9"}`), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if want := New(2024, 2, 9); got.On != want {
		t.Errorf("On = %v, want %v", got.On, want)
	}
	data, err := json.Marshal(got.On)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"2024-02-09"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "2024-02-09")
	}
}
