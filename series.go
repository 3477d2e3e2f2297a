package immo

import (
	"github.com/etnz/immo/date"
	"github.com/shopspring/decimal"
)

// Point is the value of a series for one month.
type Point struct {
	Month date.Month `json:"month"`
	Value Amount     `json:"value"`
}

// MonthlySeries is an ordered sequence of points over contiguous months.
type MonthlySeries []Point

// fold builds a series over months, computing each point with f.
//
// months is walked in order, so the series order never depends on the inputs.
func fold(months []date.Month, f func(date.Month) Amount) MonthlySeries {
	s := make(MonthlySeries, len(months))
	for i, m := range months {
		s[i] = Point{Month: m, Value: f(m)}
	}
	return s
}

// sub returns the point by point difference s − o of two series over the
// same months.
func (s MonthlySeries) sub(o MonthlySeries) MonthlySeries {
	out := make(MonthlySeries, len(s))
	for i, p := range s {
		out[i] = Point{Month: p.Month, Value: p.Value.Sub(o[i].Value)}
	}
	return out
}

// Values returns the values of the series in order.
func (s MonthlySeries) Values() []Amount {
	out := make([]Amount, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// At returns the value for month m, zero if m is not in the series.
func (s MonthlySeries) At(m date.Month) Amount {
	if len(s) == 0 {
		return Amount{}
	}
	i := m.Sub(s[0].Month)
	if i < 0 || i >= len(s) {
		return Amount{}
	}
	return s[i].Value
}

// Sum adds all the values of the series.
func (s MonthlySeries) Sum() Amount { return Sum(s.Values()...) }

// Mean returns the arithmetic mean of the series, false when it is empty.
func (s MonthlySeries) Mean() (Amount, bool) {
	if len(s) == 0 {
		return Amount{}, false
	}
	return s.Sum().Div(decimal.NewFromInt(int64(len(s)))), true
}

// Last returns the value of the last point, false when the series is empty.
func (s MonthlySeries) Last() (Amount, bool) {
	if len(s) == 0 {
		return Amount{}, false
	}
	return s[len(s)-1].Value, true
}

// annualized returns the yearly equivalent of the series total: sum/len·12.
func (s MonthlySeries) annualized() Amount {
	if len(s) == 0 {
		return Amount{}
	}
	return s.Sum().Mul(twelve).Div(decimal.NewFromInt(int64(len(s))))
}
