package immo

import "github.com/shopspring/decimal"

// smoothWindow is the number of terms averaged by Smooth.
const smoothWindow = 5

// Smooth returns the 5 points centered moving average of s.
//
// Each output value is the mean of v(i-2)..v(i+2). Neighbours outside the
// series are replaced by v(i) itself, so the divisor is always 5. The output
// has the same months as s.
func Smooth(s MonthlySeries) MonthlySeries {
	const half = smoothWindow / 2
	divisor := decimal.NewFromInt(smoothWindow)
	out := make(MonthlySeries, len(s))
	for i, p := range s {
		var total Amount
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(s) {
				total = total.Add(p.Value)
				continue
			}
			total = total.Add(s[j].Value)
		}
		out[i] = Point{Month: p.Month, Value: total.Div(divisor)}
	}
	return out
}
