package immo

import (
	"cmp"
	"slices"

	"github.com/etnz/immo/date"
)

// Aggregate computes the snapshot of the portfolio in for req.
//
// Aggregate never fails on data: invalid records are skipped and reported in
// the snapshot diagnostics. A request whose From is after To returns an empty
// snapshot. Only an unknown mode is an error.
func Aggregate(in Inputs, req Request) (*PortfolioSnapshot, error) {
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	window := date.NewMonthRange(req.From, req.To)
	snap := emptySnapshot(mode, window)
	if window.IsEmpty() {
		return snap, nil
	}

	sc := newScope(in, req.Filters, &snap.Diagnostics)
	var flows []flow
	if mode == Projected {
		flows = sc.projectedFlows(window, &snap.Diagnostics)
	} else {
		flows = sc.realizedFlows(window)
	}

	months := window.List()
	b := newBuckets(window, flows)
	snap.Rent = fold(months, b.rentAt)
	snap.Charge = fold(months, b.chargeAt)
	snap.Cashflow = snap.Rent.sub(snap.Charge)
	if mode == Smoothed {
		snap.Rent = Smooth(snap.Rent)
		snap.Charge = Smooth(snap.Charge)
		snap.Cashflow = Smooth(snap.Cashflow)
	}

	asOf := req.AsOfMonth()
	snap.Properties = sc.breakdown(flows, asOf)
	snap.Agenda = agenda(flows)
	snap.KPIs = sc.kpis(snap, window, asOf, req.heuristics())
	return snap, nil
}

// scheduledLoan is an active loan with its payment plan.
type scheduledLoan struct {
	Loan
	schedule *Schedule
}

// scope holds the valid records selected by the filters.
type scope struct {
	properties   []Property // sorted by id
	leases       []Lease    // status filter applied
	knownLeases  int        // leases of the selected properties, any status
	transactions []Transaction
	obligations  []Obligation
	loans        []scheduledLoan
	typeFilter   TypeFilter
}

func newScope(in Inputs, f Filters, diags *Diagnostics) *scope {
	inScope := func(propertyID string) bool {
		return f.PropertyID == "" || f.PropertyID == propertyID
	}
	sc := &scope{typeFilter: f.Type}

	for _, p := range in.Properties {
		if !inScope(p.ID) {
			continue
		}
		if err := p.Validate(); err != nil {
			diags.add("property", p.ID, err)
			continue
		}
		sc.properties = append(sc.properties, p)
	}
	slices.SortStableFunc(sc.properties, func(a, b Property) int { return cmp.Compare(a.ID, b.ID) })

	for _, l := range in.Leases {
		if !inScope(l.PropertyID) {
			continue
		}
		sc.knownLeases++
		if !l.matches(f.LeaseStatus) {
			continue
		}
		if err := l.Validate(); err != nil {
			diags.add("lease", l.ID, err)
			continue
		}
		sc.leases = append(sc.leases, l)
	}

	for _, tx := range in.Transactions {
		if inScope(tx.PropertyID) {
			sc.transactions = append(sc.transactions, tx)
		}
	}
	for _, o := range in.Obligations {
		if inScope(o.PropertyID) {
			sc.obligations = append(sc.obligations, o)
		}
	}
	for _, l := range in.Loans {
		if !l.IsActive || !inScope(l.PropertyID) {
			continue
		}
		s, err := BuildSchedule(l)
		if err != nil {
			diags.add("loan", l.ID, err)
			continue
		}
		sc.loans = append(sc.loans, scheduledLoan{Loan: l, schedule: s})
	}
	return sc
}

// flow is one contribution to the rent or charge series.
type flow struct {
	date       date.Date
	month      date.Month
	source, id string
	propertyID string
	label      string
	class      Class
	rent       Amount
	charge     Amount
}

// realizedFlows returns the settled transactions booked in window.
func (sc *scope) realizedFlows(window date.MonthRange) []flow {
	var flows []flow
	for _, tx := range sc.transactions {
		if !tx.IsSettled() || !window.Contains(tx.Month()) {
			continue
		}
		class := Classify(tx, sc.typeFilter)
		if class == Unclassified {
			continue
		}
		rent, charge := contribution(tx, sc.typeFilter)
		flows = append(flows, flow{
			date:       tx.Date,
			month:      tx.Month(),
			source:     "transaction",
			id:         tx.ID,
			propertyID: tx.PropertyID,
			label:      tx.Label,
			class:      class,
			rent:       rent,
			charge:     charge,
		})
	}
	return flows
}

// projectedFlows returns the expected rent calls, obligation occurrences and
// loan payments of window.
func (sc *scope) projectedFlows(window date.MonthRange, diags *Diagnostics) []flow {
	var flows []flow
	for _, l := range sc.leases {
		period := l.Period()
		for m := range window.Months() {
			if !period.Overlaps(m) {
				continue
			}
			day := m.First()
			if day.Before(l.Start) {
				day = l.Start
			}
			flows = append(flows, flow{
				date:       day,
				month:      m,
				source:     "lease",
				id:         l.ID,
				propertyID: l.PropertyID,
				label:      l.Tenant,
				class:      RentLike,
				rent:       l.MonthlyCall(),
			})
		}
	}

	occurrences, ds := ExpandEcheances(sc.obligations, window.From, window.To)
	*diags = append(*diags, ds...)
	for _, o := range occurrences {
		f := flow{
			date:       o.Date,
			month:      o.Date.YearMonth(),
			source:     "obligation",
			id:         o.ObligationID,
			propertyID: o.PropertyID,
			label:      o.Label,
		}
		if o.Direction == Credit {
			f.class, f.rent = RentLike, o.Amount
		} else {
			f.class, f.charge = ChargeLike, o.Amount
		}
		flows = append(flows, f)
	}

	for _, l := range sc.loans {
		for _, r := range l.schedule.Rows {
			if !window.Contains(r.Month) {
				continue
			}
			flows = append(flows, flow{
				date:       r.Month.Day(l.StartDate.Day()),
				month:      r.Month,
				source:     "loan",
				id:         l.ID,
				propertyID: l.PropertyID,
				label:      l.Label,
				class:      ChargeLike,
				charge:     r.PaymentTotal,
			})
		}
	}
	return flows
}

// buckets holds the flows summed per month of a window.
type buckets struct {
	window       date.MonthRange
	rent, charge []Amount
}

func newBuckets(window date.MonthRange, flows []flow) buckets {
	b := buckets{window: window, rent: make([]Amount, window.Len()), charge: make([]Amount, window.Len())}
	for _, f := range flows {
		i, ok := window.Index(f.month)
		if !ok {
			continue
		}
		b.rent[i] = b.rent[i].Add(f.rent)
		b.charge[i] = b.charge[i].Add(f.charge)
	}
	return b
}

func (b buckets) rentAt(m date.Month) Amount {
	i, _ := b.window.Index(m)
	return b.rent[i]
}

func (b buckets) chargeAt(m date.Month) Amount {
	i, _ := b.window.Index(m)
	return b.charge[i]
}

// breakdown sums the flows of each selected property.
func (sc *scope) breakdown(flows []flow, asOf date.Month) []PropertyBreakdown {
	out := make([]PropertyBreakdown, 0, len(sc.properties))
	for _, p := range sc.properties {
		b := PropertyBreakdown{PropertyID: p.ID, Name: p.Name, Value: p.Value()}
		for _, f := range flows {
			if f.propertyID != p.ID {
				continue
			}
			b.Rent = b.Rent.Add(f.rent)
			b.Charge = b.Charge.Add(f.charge)
		}
		b.Cashflow = b.Rent.Sub(b.Charge)
		for _, l := range sc.loans {
			if l.PropertyID == p.ID {
				b.OutstandingDebt = b.OutstandingDebt.Add(l.schedule.CRD(asOf))
			}
		}
		out = append(out, b)
	}
	return out
}

// agenda lists the flows as dated events, by date then source id.
func agenda(flows []flow) []AgendaEvent {
	events := make([]AgendaEvent, 0, len(flows))
	for _, f := range flows {
		events = append(events, AgendaEvent{
			Date:       f.date,
			Source:     f.source,
			ID:         f.id,
			PropertyID: f.propertyID,
			Label:      f.label,
			Class:      f.class.String(),
			Amount:     f.rent.Sub(f.charge),
		})
	}
	slices.SortStableFunc(events, func(a, b AgendaEvent) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Source, b.Source)
	})
	return events
}
