package immo

import (
	"iter"

	"github.com/etnz/immo/date"
	"github.com/shopspring/decimal"
)

// IndexSeries is a monthly price index, like the INSEE housing price indices.
type IndexSeries struct {
	ID      string
	history date.History[float64]
}

// Append sets the index value of month m.
func (s *IndexSeries) Append(m date.Month, value float64) *IndexSeries {
	s.history.Append(m, value)
	return s
}

// Len returns the number of points of the series.
func (s *IndexSeries) Len() int { return s.history.Len() }

// Values iterates over the points in chronological order.
func (s *IndexSeries) Values() iter.Seq2[date.Month, float64] { return s.history.Values() }

// ValueAsOf returns the value of month m, or the latest one before it.
func (s *IndexSeries) ValueAsOf(m date.Month) (float64, bool) { return s.history.ValueAsOf(m) }

// Revalue returns a copy of properties where every property without a current
// value is valued by following index since its acquisition:
//
//	value = acquisitionPrice · index(asOf) / index(acquisition month)
//
// Properties that cannot be revalued are returned unchanged and reported.
func Revalue(properties []Property, index *IndexSeries, asOf date.Month) ([]Property, Diagnostics) {
	var diags Diagnostics
	out := make([]Property, len(properties))
	copy(out, properties)
	if index == nil || index.Len() == 0 {
		diags.addf("index", "", "no index values, properties are not revalued")
		return out, diags
	}
	current, ok := index.ValueAsOf(asOf)
	if !ok {
		diags.addf("index", index.ID, "no value on or before %s", asOf)
		return out, diags
	}
	for i, p := range out {
		if p.CurrentValue != nil {
			continue
		}
		if p.AcquiredAt.IsZero() {
			diags.addf("property", p.ID, "acquisition date is missing, cannot revalue")
			continue
		}
		base, ok := index.ValueAsOf(p.AcquiredAt.YearMonth())
		if !ok || base == 0 {
			diags.addf("property", p.ID, "no %s index value on or before %s", index.ID, p.AcquiredAt.YearMonth())
			continue
		}
		ratio := decimal.NewFromFloat(current).Div(decimal.NewFromFloat(base))
		out[i].CurrentValue = p.AcquisitionPrice.Mul(ratio).Round().Ptr()
	}
	return out, diags
}
