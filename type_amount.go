package immo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a monetary amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrMissingAmount is returned when a monetary amount is absent.
var ErrMissingAmount = errors.New("missing amount")

// cents is the number of decimal places persisted for monetary values.
const cents = 2

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact monetary value in the base currency unit (not subunits).
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount for value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a human or spreadsheet formatted amount.
//
// It accepts "1200.5", "1200,50", "1 200,50", "1.200,50", "1,200.50" and an
// optional trailing currency sign.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "€"), "EUR")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return Amount{}, ErrMissingAmount
	}
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// "1.200,50"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// "1,200.50"
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	return Amount{value: d}, nil
}

func (a Amount) Decimal() decimal.Decimal     { return a.value }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) IsPositive() bool             { return a.value.IsPositive() }
func (a Amount) IsNegative() bool             { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool          { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool       { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.value.GreaterThan(b.value) }
func (a Amount) Cmp(b Amount) int             { return a.value.Cmp(b.value) }
func (a Amount) Add(b Amount) Amount          { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount                  { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                  { return Amount{value: a.value.Abs()} }
func (a Amount) Mul(f decimal.Decimal) Amount { return Amount{value: a.value.Mul(f)} }
func (a Amount) Div(f decimal.Decimal) Amount { return Amount{value: a.value.Div(f)} }
func (a Amount) Round() Amount                { return Amount{value: a.value.Round(cents)} }
func (a Amount) String() string               { return a.value.StringFixed(cents) }

// Float64 returns the nearest float64, only meant for display purposes.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// Ptr returns a pointer to a copy of a, used for nullable fields.
func (a Amount) Ptr() *Amount { return &a }

// Sum adds all amounts together.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount rounded to cents, as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.Round(cents).String()), nil
}

// UnmarshalJSON reads a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v, err := ParseAmount(str)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}
	return a.value.UnmarshalJSON(data)
}

// RawAmount is an amount as stored by the upstream layer, possibly missing or
// malformed. It is kept verbatim until normalized.
type RawAmount string

// Normalize parses the raw amount.
func (r RawAmount) Normalize() (Amount, error) {
	if strings.TrimSpace(string(r)) == "" {
		return Amount{}, ErrMissingAmount
	}
	return ParseAmount(string(r))
}

// UnmarshalJSON accepts a JSON number, a string or null.
func (r *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*r = RawAmount(str)
	default:
		*r = RawAmount(data)
	}
	return nil
}

var _ json.Marshaler = Amount{}
var _ json.Unmarshaler = (*Amount)(nil)
var _ json.Unmarshaler = (*RawAmount)(nil)
