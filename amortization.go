package immo

import (
	"github.com/etnz/immo/date"
	"github.com/shopspring/decimal"
)

// powPlaces bounds the digits kept while raising the monthly growth factor.
const powPlaces = 30

// ScheduleRow is one monthly payment of a loan.
type ScheduleRow struct {
	MonthIndex       int        `json:"monthIndex"` // 1 for the first payment
	Month            date.Month `json:"month"`
	PaymentPrincipal Amount     `json:"paymentPrincipal"`
	PaymentInterest  Amount     `json:"paymentInterest"`
	PaymentInsurance Amount     `json:"paymentInsurance"`
	PaymentTotal     Amount     `json:"paymentTotal"`
	RemainingCapital Amount     `json:"remainingCapital"` // after this payment
}

// Schedule is the full payment plan of a loan: exactly DurationMonths rows
// starting on the loan's start month.
type Schedule struct {
	LoanID    string        `json:"loanId,omitempty"`
	Principal Amount        `json:"principal"`
	Rows      []ScheduleRow `json:"rows"`
}

// ScheduleTotals sums a schedule's payments.
type ScheduleTotals struct {
	Principal Amount `json:"principal"`
	Interest  Amount `json:"interest"`
	Insurance Amount `json:"insurance"`
	Total     Amount `json:"total"`
}

// CreditCost is the part of the payments that does not repay capital.
func (t ScheduleTotals) CreditCost() Amount { return t.Interest.Add(t.Insurance) }

// BuildSchedule computes the monthly payment plan of loan.
//
// The first DefermentMonths rows are interest-only: interest accrues on the
// full principal and capital is not repaid. The remaining rows repay a constant
// annuity (straight-line when the rate is zero). Insurance is computed on the
// initial principal and never repays capital. Interest and annuity are rounded
// to cents; the last row absorbs the rounding remainder so that the remaining
// capital ends at exactly zero.
func BuildSchedule(loan Loan) (*Schedule, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	principal := loan.Principal.Decimal()
	rate := monthlyRate(loan.AnnualRatePct)
	insurance := principal.Mul(decimal.NewFromFloat(loan.InsurancePct)).Div(hundred).Div(twelve).Round(cents)
	payment := annuity(principal, rate, loan.DurationMonths-loan.DefermentMonths)

	first := loan.StartDate.YearMonth()
	last := loan.DurationMonths - 1
	capital := principal
	rows := make([]ScheduleRow, loan.DurationMonths)
	for i := range rows {
		interest := capital.Mul(rate).Round(cents)
		repaid := decimal.Zero
		switch {
		case i == last:
			repaid = capital
		case i >= loan.DefermentMonths:
			repaid = decimal.Min(payment.Sub(interest), capital)
		}
		if repaid.IsNegative() {
			repaid = decimal.Zero
		}
		capital = decimal.Max(decimal.Zero, capital.Sub(repaid))

		rows[i] = ScheduleRow{
			MonthIndex:       i + 1,
			Month:            first.Add(i),
			PaymentPrincipal: Amount{value: repaid},
			PaymentInterest:  Amount{value: interest},
			PaymentInsurance: Amount{value: insurance},
			PaymentTotal:     Amount{value: repaid.Add(interest).Add(insurance)},
			RemainingCapital: Amount{value: capital},
		}
	}
	return &Schedule{LoanID: loan.ID, Principal: loan.Principal, Rows: rows}, nil
}

// monthlyRate converts an annual percentage into a monthly ratio.
func monthlyRate(annualPct float64) decimal.Decimal {
	return decimal.NewFromFloat(annualPct).Div(hundred).Div(twelve)
}

// annuity returns the constant monthly payment repaying principal over n
// months at the monthly rate, rounded to cents.
//
//	payment = P·r / (1 − (1+r)^−n) = P·r·f / (f − 1) with f = (1+r)^n
func annuity(principal, rate decimal.Decimal, n int) decimal.Decimal {
	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).Round(cents)
	}
	f := powInt(decimal.NewFromInt(1).Add(rate), n)
	return principal.Mul(rate).Mul(f).Div(f.Sub(decimal.NewFromInt(1))).Round(cents)
}

// powInt raises base to the non negative power n by squaring, truncating
// intermediate results to powPlaces.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Truncate(powPlaces)
		}
		base = base.Mul(base).Truncate(powPlaces)
	}
	return result
}

// First returns the month of the first payment.
func (s *Schedule) First() date.Month { return s.Rows[0].Month }

// Last returns the month of the last payment.
func (s *Schedule) Last() date.Month { return s.Rows[len(s.Rows)-1].Month }

// row returns the row of month m.
func (s *Schedule) row(m date.Month) (ScheduleRow, bool) {
	if len(s.Rows) == 0 {
		return ScheduleRow{}, false
	}
	i := m.Sub(s.First())
	if i < 0 || i >= len(s.Rows) {
		return ScheduleRow{}, false
	}
	return s.Rows[i], true
}

// CRD returns the remaining capital after the payment of month m.
//
// It is the initial principal before the first payment and zero after the
// last one.
func (s *Schedule) CRD(m date.Month) Amount {
	if len(s.Rows) == 0 {
		return s.Principal
	}
	switch {
	case m.Before(s.First()):
		return s.Principal
	case m.After(s.Last()):
		return Amount{}
	}
	r, _ := s.row(m)
	return r.RemainingCapital
}

// CRDAtDate is the function form of Schedule.CRD.
func CRDAtDate(s *Schedule, m date.Month) Amount { return s.CRD(m) }

// Payment returns the total payment due on month m, zero outside the schedule.
func (s *Schedule) Payment(m date.Month) Amount {
	r, _ := s.row(m)
	return r.PaymentTotal
}

// Totals sums all the rows of the schedule.
func (s *Schedule) Totals() ScheduleTotals {
	var t ScheduleTotals
	for _, r := range s.Rows {
		t.Principal = t.Principal.Add(r.PaymentPrincipal)
		t.Interest = t.Interest.Add(r.PaymentInterest)
		t.Insurance = t.Insurance.Add(r.PaymentInsurance)
		t.Total = t.Total.Add(r.PaymentTotal)
	}
	return t
}
