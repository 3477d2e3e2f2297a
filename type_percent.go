package immo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

// percentPlaces is the precision kept for computed percentages.
const percentPlaces = 4

// newPercent returns num/den·100 or nil when den is zero.
func newPercent(num, den decimal.Decimal) *Percent {
	if den.IsZero() {
		return nil
	}
	p := Percent(num.Mul(hundred).Div(den).Round(percentPlaces).InexactFloat64())
	return &p
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
