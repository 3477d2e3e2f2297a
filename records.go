package immo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/immo/date"
)

// Transaction is a ledger movement on a property account.
type Transaction struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"propertyId,omitempty"`
	LeaseID         string     `json:"leaseId,omitempty"`
	Label           string     `json:"label,omitempty"`
	Date            date.Date  `json:"date"`
	AccountingMonth date.Month `json:"accountingMonth,omitzero"` // zero means the month of Date
	Amount          Amount     `json:"amount"`                   // signed, positive when money comes in
	Nature          string     `json:"nature,omitempty"`         // free form, "LOYER", "CHARGES_COPRO", ...
	SettledAt       *date.Date `json:"settledAt,omitempty"`
}

// Month returns the accounting month of the transaction.
func (t Transaction) Month() date.Month {
	if t.AccountingMonth.IsZero() {
		return t.Date.YearMonth()
	}
	return t.AccountingMonth
}

// IsSettled reports whether the transaction has actually been paid.
func (t Transaction) IsSettled() bool { return t.SettledAt != nil && !t.SettledAt.IsZero() }

// LeaseStatus is the lifecycle state of a lease.
type LeaseStatus string

const (
	LeaseActive  LeaseStatus = "active"
	LeasePending LeaseStatus = "pending"
	LeaseEnded   LeaseStatus = "ended"
)

// Lease is a rental contract on a property.
type Lease struct {
	ID                 string      `json:"id"`
	PropertyID         string      `json:"propertyId"`
	Tenant             string      `json:"tenant,omitempty"`
	Start              date.Date   `json:"start"`
	End                *date.Date  `json:"end,omitempty"`
	RentAmount         Amount      `json:"rentAmount"`         // monthly, charges excluded
	RecoverableCharges Amount      `json:"recoverableCharges"` // monthly provision paid by the tenant
	Status             LeaseStatus `json:"status,omitempty"`
}

// Period returns the days covered by the lease.
func (l Lease) Period() date.Range {
	r := date.Range{From: l.Start}
	if l.End != nil {
		r.To = *l.End
	}
	return r
}

// Validate reports every inconsistency of the lease.
func (l Lease) Validate() error {
	var errs []error
	if l.Start.IsZero() {
		errs = append(errs, errors.New("missing start date"))
	}
	if l.End != nil && l.End.Before(l.Start) {
		errs = append(errs, fmt.Errorf("ends on %s before it starts on %s", l.End, l.Start))
	}
	if l.RentAmount.IsNegative() || l.RecoverableCharges.IsNegative() {
		errs = append(errs, fmt.Errorf("negative rent %v or charges %v", l.RentAmount, l.RecoverableCharges))
	}
	return errors.Join(errs...)
}

// MonthlyCall is the amount called from the tenant each month.
func (l Lease) MonthlyCall() Amount { return l.RentAmount.Add(l.RecoverableCharges) }

// matches reports whether the lease status passes the filter.
//
// Without filter only active leases are kept. An empty status counts as active.
func (l Lease) matches(filter LeaseStatus) bool {
	status := LeaseStatus(strings.ToLower(strings.TrimSpace(string(l.Status))))
	if status == "" {
		status = LeaseActive
	}
	if filter == "" {
		return status == LeaseActive
	}
	return status == LeaseStatus(strings.ToLower(string(filter)))
}

// Property is a real-estate asset of the portfolio.
type Property struct {
	ID               string    `json:"id"`
	Name             string    `json:"name,omitempty"`
	AcquisitionPrice Amount    `json:"acquisitionPrice"`
	CurrentValue     *Amount   `json:"currentValue,omitempty"`
	AcquiredAt       date.Date `json:"acquiredAt,omitzero"`
}

// Value returns the current value of the property, or its acquisition price
// when it has never been valued.
func (p Property) Value() Amount {
	if p.CurrentValue != nil {
		return *p.CurrentValue
	}
	return p.AcquisitionPrice
}

// Validate reports every inconsistency of the property.
func (p Property) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if p.AcquisitionPrice.IsNegative() {
		errs = append(errs, fmt.Errorf("negative acquisition price %v", p.AcquisitionPrice))
	}
	if p.CurrentValue != nil && p.CurrentValue.IsNegative() {
		errs = append(errs, fmt.Errorf("negative current value %v", *p.CurrentValue))
	}
	return errors.Join(errs...)
}
