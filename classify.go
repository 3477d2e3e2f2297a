package immo

import (
	"fmt"
	"strings"
)

// Class is the side of the cashflow a transaction contributes to.
type Class int

const (
	Unclassified Class = iota
	RentLike
	ChargeLike
)

func (c Class) String() string {
	switch c {
	case RentLike:
		return "rent"
	case ChargeLike:
		return "charge"
	default:
		return "unclassified"
	}
}

// TypeFilter is an explicit transaction type requested by the user.
type TypeFilter string

const (
	NoTypeFilter TypeFilter = ""
	RentFilter   TypeFilter = "loyer"
	ChargeFilter TypeFilter = "charges"
)

// ParseTypeFilter parses a type filter, accepting French and English names.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return NoTypeFilter, nil
	case "loyer", "loyers", "rent":
		return RentFilter, nil
	case "charges", "charge":
		return ChargeFilter, nil
	default:
		return NoTypeFilter, fmt.Errorf("unknown transaction type %q", s)
	}
}

// Classify tells whether tx is rent-like or charge-like.
//
// A transaction is rent-like when its nature is LOYER, or when it is positive
// and no type filter is set, or when the rent filter is set. Otherwise it is
// charge-like when its nature contains CHARGE, or when it is negative, or when
// the charge filter is set. Rent-like wins when both apply.
func Classify(tx Transaction, filter TypeFilter) Class {
	nature := strings.ToUpper(strings.TrimSpace(tx.Nature))
	switch {
	case nature == "LOYER",
		tx.Amount.IsPositive() && filter == NoTypeFilter,
		filter == RentFilter:
		return RentLike
	case strings.Contains(nature, "CHARGE"),
		tx.Amount.IsNegative(),
		filter == ChargeFilter:
		return ChargeLike
	}
	return Unclassified
}

// contribution returns how much tx adds to the rent and charge series.
//
// Rent keeps the transaction sign, charge is always its absolute value.
func contribution(tx Transaction, filter TypeFilter) (rent, charge Amount) {
	switch Classify(tx, filter) {
	case RentLike:
		return tx.Amount, Amount{}
	case ChargeLike:
		return Amount{}, tx.Amount.Abs()
	}
	return Amount{}, Amount{}
}
