package immo

import (
	"errors"
	"fmt"
)

// Heuristics holds the placeholder ratios used by the KPIs when the data does
// not tell.
type Heuristics struct {
	// NonRecoverableChargesRate is the share of the annual rent assumed lost in
	// non recoverable charges when computing the net yield.
	NonRecoverableChargesRate float64 `json:"nonRecoverableChargesRate" yaml:"non_recoverable_charges_rate"`
	// DefaultOccupancyRate is the occupancy assumed when no lease is known at
	// all.
	DefaultOccupancyRate float64 `json:"defaultOccupancyRate" yaml:"default_occupancy_rate"`
}

// DefaultHeuristics are the historical values of the heuristics.
var DefaultHeuristics = Heuristics{
	NonRecoverableChargesRate: 0.10,
	DefaultOccupancyRate:      0.80,
}

// Validate checks that every ratio is within [0, 1].
func (h Heuristics) Validate() error {
	var errs []error
	if h.NonRecoverableChargesRate < 0 || h.NonRecoverableChargesRate > 1 {
		errs = append(errs, fmt.Errorf("non recoverable charges rate %v is not within [0, 1]", h.NonRecoverableChargesRate))
	}
	if h.DefaultOccupancyRate < 0 || h.DefaultOccupancyRate > 1 {
		errs = append(errs, fmt.Errorf("default occupancy rate %v is not within [0, 1]", h.DefaultOccupancyRate))
	}
	return errors.Join(errs...)
}
