package immo

import (
	"fmt"
	"strings"

	"github.com/etnz/immo/date"
)

// Direction tells whether money leaves (DEBIT) or enters (CREDIT) the portfolio.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// normalize returns the canonical direction, accepting any letter case.
func (d Direction) normalize() (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(string(d)))) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return d, fmt.Errorf("unknown direction %q", string(d))
	}
}

// Sign returns amount signed by the direction: negative for a debit.
func (d Direction) Sign(amount Amount) Amount {
	if d == Debit {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// ObligationType classifies recurring obligations.
type ObligationType string

const (
	TypeLoan        ObligationType = "loan"
	TypeCondoFees   ObligationType = "condo-fees"
	TypeInsurance   ObligationType = "insurance"
	TypeTax         ObligationType = "tax"
	TypeMaintenance ObligationType = "maintenance"
	TypeOther       ObligationType = "other"
)

// Label returns the canonical type label, TypeOther for unknown values.
func (t ObligationType) Label() ObligationType {
	switch v := ObligationType(strings.ToLower(strings.TrimSpace(string(t)))); v {
	case TypeLoan, TypeCondoFees, TypeInsurance, TypeTax, TypeMaintenance:
		return v
	case "copropriete", "copro", "condo":
		return TypeCondoFees
	case "assurance":
		return TypeInsurance
	case "taxe", "taxe-fonciere":
		return TypeTax
	case "pret", "emprunt":
		return TypeLoan
	case "entretien", "travaux":
		return TypeMaintenance
	default:
		return TypeOther
	}
}

// Obligation is a recurring charge or revenue ("échéance") not tied to a
// one-off transaction.
type Obligation struct {
	ID          string         `json:"id"`
	PropertyID  string         `json:"propertyId,omitempty"`
	LeaseID     string         `json:"leaseId,omitempty"`
	Label       string         `json:"label"`
	Type        ObligationType `json:"type"`
	Periodicity string         `json:"periodicity"` // parsed with date.ParsePeriodicity
	Amount      RawAmount      `json:"amount"`
	Recoverable bool           `json:"recoverable"` // charge re-invoiced to the tenant
	Direction   Direction      `json:"direction"`
	StartAt     date.Date      `json:"startAt"`
	EndAt       *date.Date     `json:"endAt,omitempty"`
	IsActive    bool           `json:"isActive"`
}

// Occurrence is one dated instance of an Obligation.
type Occurrence struct {
	ID           string // stable across runs, derived from the obligation and the date
	Date         date.Date
	Amount       Amount // always positive, Direction carries the sign
	Direction    Direction
	Type         ObligationType
	Label        string
	ObligationID string
	PropertyID   string
	Recoverable  bool
}

// Signed returns the occurrence amount, negative for a debit.
func (o Occurrence) Signed() Amount { return o.Direction.Sign(o.Amount) }

func (o Occurrence) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", o.ID)
	w.Append("date", o.Date)
	w.Append("amount", o.Amount)
	w.Append("direction", o.Direction)
	w.Append("type", o.Type)
	w.Optional("label", o.Label)
	w.Append("obligationId", o.ObligationID)
	w.Optional("propertyId", o.PropertyID)
	w.Optional("recoverable", o.Recoverable)
	return w.MarshalJSON()
}
