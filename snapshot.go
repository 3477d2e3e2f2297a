package immo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/immo/date"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the reporting lens of a snapshot.
type Mode string

const (
	// Realized reports settled transactions only.
	Realized Mode = "realised"
	// Projected reports expected rents, obligations and loan payments.
	Projected Mode = "prevision"
	// Smoothed reports the realized series through a moving average.
	Smoothed Mode = "lisse"
)

// ParseMode accepts the French and English names of the modes.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "realised", "realized", "realise", "réalisé":
		return Realized, nil
	case "prevision", "prévision", "projected", "projection":
		return Projected, nil
	case "lisse", "lissé", "smoothed", "smooth":
		return Smoothed, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

// Filters restrict the records an aggregation considers.
type Filters struct {
	PropertyID  string      // only this property, when set
	Type        TypeFilter  // explicit transaction type, fed to Classify
	LeaseStatus LeaseStatus // only leases with this status; active ones when empty
}

// Request describes one aggregation.
type Request struct {
	Mode     Mode
	From, To date.Month
	// AsOf is the month the outstanding debt is read at. Zero means To.
	AsOf       date.Month
	Filters    Filters
	Heuristics *Heuristics // nil means DefaultHeuristics
}

// heuristics returns the heuristics in effect.
func (r Request) heuristics() Heuristics {
	if r.Heuristics == nil {
		return DefaultHeuristics
	}
	return *r.Heuristics
}

// AsOfMonth returns the month the debt and values are read at, To by default.
func (r Request) AsOfMonth() date.Month {
	if r.AsOf.IsZero() {
		return r.To
	}
	return r.AsOf
}

// Inputs are the already loaded collections of the portfolio.
type Inputs struct {
	Properties   []Property    `json:"properties"`
	Leases       []Lease       `json:"leases"`
	Transactions []Transaction `json:"transactions"`
	Obligations  []Obligation  `json:"obligations"`
	Loans        []Loan        `json:"loans"`
}

// Period is the window of a snapshot.
type Period struct {
	From   date.Month `json:"from"`
	To     date.Month `json:"to"`
	Months int        `json:"months"`
}

// PropertyBreakdown sums a snapshot for one property.
type PropertyBreakdown struct {
	PropertyID      string `json:"propertyId"`
	Name            string `json:"name,omitempty"`
	Rent            Amount `json:"rent"`
	Charge          Amount `json:"charge"`
	Cashflow        Amount `json:"cashflow"`
	Value           Amount `json:"value"`
	OutstandingDebt Amount `json:"outstandingDebt"`
}

// AgendaEvent is a dated monetary event of the snapshot window.
type AgendaEvent struct {
	Date       date.Date `json:"date"`
	Source     string    `json:"source"` // "transaction", "lease", "obligation" or "loan"
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId,omitempty"`
	Label      string    `json:"label,omitempty"`
	Class      string    `json:"class"`  // "rent" or "charge"
	Amount     Amount    `json:"amount"` // signed, negative for a charge
}

// KPIs are the summary indicators of a snapshot. A nil field could not be
// computed.
type KPIs struct {
	ParkValue             *Amount  `json:"parkValue"`
	OutstandingDebt       *Amount  `json:"outstandingDebt"`
	LTV                   *Percent `json:"ltv"`
	MonthCashflow         *Amount  `json:"monthCashflow"`
	AverageAnnualCashflow *Amount  `json:"averageAnnualCashflow"`
	NetYield              *Percent `json:"netYield"`
	VacancyPct            *Percent `json:"vacancyPct"`
}

// PortfolioSnapshot is the result of an aggregation.
type PortfolioSnapshot struct {
	Mode        Mode                `json:"mode"`
	Period      Period              `json:"period"`
	Rent        MonthlySeries       `json:"rent"`
	Charge      MonthlySeries       `json:"charge"`
	Cashflow    MonthlySeries       `json:"cashflow"`
	Properties  []PropertyBreakdown `json:"properties"`
	Agenda      []AgendaEvent       `json:"agenda"`
	KPIs        KPIs                `json:"kpis"`
	Diagnostics Diagnostics         `json:"diagnostics"`
}

// emptySnapshot returns a snapshot with no data, all collections non-nil.
func emptySnapshot(mode Mode, window date.MonthRange) *PortfolioSnapshot {
	return &PortfolioSnapshot{
		Mode:        mode,
		Period:      Period{From: window.From, To: window.To, Months: window.Len()},
		Rent:        MonthlySeries{},
		Charge:      MonthlySeries{},
		Cashflow:    MonthlySeries{},
		Properties:  []PropertyBreakdown{},
		Agenda:      []AgendaEvent{},
		Diagnostics: Diagnostics{},
	}
}
