package immo

import (
	"errors"
	"fmt"

	"github.com/etnz/immo/date"
)

// ErrInvalidLoan is returned when loan parameters cannot produce a schedule.
var ErrInvalidLoan = errors.New("invalid loan")

// Loan is a fixed-rate amortizing loan attached to a property.
type Loan struct {
	ID              string    `json:"id"`
	PropertyID      string    `json:"propertyId,omitempty"`
	Label           string    `json:"label,omitempty"`
	Principal       Amount    `json:"principal"`
	AnnualRatePct   float64   `json:"annualRatePct"`   // nominal annual rate, 3 means 3%
	DurationMonths  int       `json:"durationMonths"`  // total number of monthly payments
	DefermentMonths int       `json:"defermentMonths"` // leading interest-only months
	InsurancePct    float64   `json:"insurancePct"`    // annual % of the initial principal
	StartDate       date.Date `json:"startDate"`
	IsActive        bool      `json:"isActive"`
}

// Validate reports every invalid parameter of the loan.
//
// Invalid values are never clamped.
func (l Loan) Validate() error {
	var errs []error
	if !l.Principal.IsPositive() {
		errs = append(errs, fmt.Errorf("principal must be positive, got %s", l.Principal))
	}
	if l.AnnualRatePct < 0 {
		errs = append(errs, fmt.Errorf("annual rate must not be negative, got %v", l.AnnualRatePct))
	}
	if l.DurationMonths <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %d months", l.DurationMonths))
	}
	if l.DefermentMonths < 0 {
		errs = append(errs, fmt.Errorf("deferment must not be negative, got %d months", l.DefermentMonths))
	} else if l.DurationMonths > 0 && l.DefermentMonths >= l.DurationMonths {
		errs = append(errs, fmt.Errorf("deferment (%d months) must be shorter than the duration (%d months)", l.DefermentMonths, l.DurationMonths))
	}
	if l.InsurancePct < 0 {
		errs = append(errs, fmt.Errorf("insurance rate must not be negative, got %v", l.InsurancePct))
	}
	if l.StartDate.IsZero() {
		errs = append(errs, errors.New("start date is missing"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidLoan, errors.Join(errs...))
}
