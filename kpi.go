package immo

import (
	"github.com/etnz/immo/date"
	"github.com/shopspring/decimal"
)

// kpis computes the summary indicators of snap.
//
// Every ratio whose denominator is zero is left nil.
func (sc *scope) kpis(snap *PortfolioSnapshot, window date.MonthRange, asOf date.Month, h Heuristics) KPIs {
	var park, debt Amount
	for _, p := range sc.properties {
		park = park.Add(p.Value())
	}
	for _, l := range sc.loans {
		debt = debt.Add(l.schedule.CRD(asOf))
	}

	k := KPIs{
		ParkValue:       park.Ptr(),
		OutstandingDebt: debt.Ptr(),
		LTV:             newPercent(debt.Decimal(), park.Decimal()),
		VacancyPct:      sc.vacancy(window, h),
	}
	if v, ok := snap.Cashflow.Last(); ok {
		k.MonthCashflow = v.Round().Ptr()
	}
	if v, ok := snap.Cashflow.Mean(); ok {
		k.AverageAnnualCashflow = v.Round().Ptr()
	}

	// (annualRent − rate·annualRent − annualLoanPayments) / parkValue
	rent := snap.Rent.annualized()
	loans := sc.loanPayments(window).annualized()
	net := rent.Sub(rent.Mul(decimal.NewFromFloat(h.NonRecoverableChargesRate))).Sub(loans)
	k.NetYield = newPercent(net.Decimal(), park.Decimal())
	return k
}

// loanPayments returns the total scheduled payments of the active loans per
// month of window.
func (sc *scope) loanPayments(window date.MonthRange) MonthlySeries {
	return fold(window.List(), func(m date.Month) Amount {
		var total Amount
		for _, l := range sc.loans {
			total = total.Add(l.schedule.Payment(m))
		}
		return total
	})
}

// vacancy returns the share of property-months without an eligible lease.
//
// When no lease is known at all for the selected properties, the default
// occupancy rate is assumed instead.
func (sc *scope) vacancy(window date.MonthRange, h Heuristics) *Percent {
	possible := len(sc.properties) * window.Len()
	if possible == 0 {
		return nil
	}
	one := decimal.NewFromInt(1)
	if sc.knownLeases == 0 {
		return newPercent(one.Sub(decimal.NewFromFloat(h.DefaultOccupancyRate)), one)
	}
	occupied := 0
	for _, p := range sc.properties {
		for m := range window.Months() {
			if sc.occupied(p.ID, m) {
				occupied++
			}
		}
	}
	return newPercent(decimal.NewFromInt(int64(possible-occupied)), decimal.NewFromInt(int64(possible)))
}

// occupied reports whether an eligible lease of property covers part of m.
func (sc *scope) occupied(propertyID string, m date.Month) bool {
	for _, l := range sc.leases {
		if l.PropertyID == propertyID && l.Period().Overlaps(m) {
			return true
		}
	}
	return false
}
