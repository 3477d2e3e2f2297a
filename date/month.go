package date

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MonthFormat is the "YYYY-MM" layout of a calendar month label.
const MonthFormat = "2006-01"

const readMonthFormat = "2006-1"

// ErrInvalidMonth is returned when a month label cannot be parsed.
var ErrInvalidMonth = errors.New("invalid month")

// Month is a calendar month, the bucket used by every monthly series.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, so that NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	y, m, _ := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Date()
	return Month{y: y, m: m}
}

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// IsZero returns true for the zero Month, used as "not set".
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// String returns the "YYYY-MM" label.
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, int(m.m)) }

// Add returns the month i months later (or earlier when i is negative).
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Sub returns the number of months from x to m.
func (m Month) Sub(x Month) int { return (m.y-x.y)*12 + int(m.m) - int(x.m) }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after x.
func (m Month) Compare(x Month) int {
	if m.y != x.y {
		return cmpInt(m.y, x.y)
	}
	return cmpInt(int(m.m), int(x.m))
}

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.Compare(x) < 0 }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.Compare(x) > 0 }

// First returns the first day of the month.
func (m Month) First() Date { return Date{y: m.y, m: m.m, d: 1} }

// Last returns the last day of the month.
func (m Month) Last() Date { return New(m.y, m.m+1, 0) }

// Day returns the given day of the month, clamped to the last day of the month.
func (m Month) Day(day int) Date {
	last := m.Last()
	if day > last.Day() {
		return last
	}
	if day < 1 {
		day = 1
	}
	return Date{y: m.y, m: m.m, d: day}
}

// ParseMonth parses a "YYYY-MM" label, it also accepts "2024-1" and full dates.
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readMonthFormat, str)
	if err == nil {
		return NewMonth(on.Year(), on.Month()), nil
	}
	if d, derr := Parse(str); derr == nil {
		return d.YearMonth(), nil
	}
	return Month{}, fmt.Errorf("%w %q want format %q", ErrInvalidMonth, str, "YYYY-MM")
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*m = Month{}
		return nil
	}
	v, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(m.String())
}

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
