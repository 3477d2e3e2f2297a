package date

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPeriodicity is returned by ParsePeriodicity.
var ErrUnknownPeriodicity = errors.New("unknown periodicity")

// Periodicity is the recurrence step of an obligation.
type Periodicity int

const (
	Monthly Periodicity = iota
	Bimonthly
	Quarterly
	Semiannual
	Yearly
	Once
)

func (p Periodicity) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Bimonthly:
		return "bimonthly"
	case Quarterly:
		return "quarterly"
	case Semiannual:
		return "semiannual"
	case Yearly:
		return "yearly"
	case Once:
		return "once"
	default:
		return fmt.Sprintf("periodicity(%d)", int(p))
	}
}

// Step returns the number of months between two occurrences, 0 for Once.
func (p Periodicity) Step() int {
	switch p {
	case Monthly:
		return 1
	case Bimonthly:
		return 2
	case Quarterly:
		return 3
	case Semiannual:
		return 6
	case Yearly:
		return 12
	default:
		return 0
	}
}

// ParsePeriodicity accepts english and french labels ("quarterly", "trimestriel", ...).
func ParsePeriodicity(p string) (Periodicity, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "monthly", "month", "mensuel", "mensuelle":
		return Monthly, nil
	case "bimonthly", "bimestriel", "bimestrielle":
		return Bimonthly, nil
	case "quarterly", "quarter", "trimestriel", "trimestrielle":
		return Quarterly, nil
	case "semiannual", "semiannually", "semestriel", "semestrielle":
		return Semiannual, nil
	case "yearly", "year", "annual", "annuel", "annuelle":
		return Yearly, nil
	case "once", "ponctuel", "ponctuelle":
		return Once, nil
	default:
		return Monthly, fmt.Errorf("%w %q", ErrUnknownPeriodicity, p)
	}
}
