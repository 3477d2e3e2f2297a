// Package immo provides the financial projection engine of a real estate
// portfolio. It is a pure library: it never reads files nor the network, every
// record is handed over by the caller, and the results are plain values.
//
// The core functionalities include:
//   - Amortization: the monthly payment plan of a fixed-rate loan, with
//     interest-only deferment and insurance, and the remaining capital (CRD)
//     at any month.
//   - Recurring obligations: the expansion of échéances (condo fees, taxes,
//     insurance, loan payments) into dated occurrences over a window of months.
//   - Aggregation: the monthly rent, charge and cashflow series of the
//     portfolio in realised, projected or smoothed mode, the per property
//     totals, the agenda and the indicators (park value, outstanding debt, LTV,
//     net yield, vacancy).
//   - Revaluation: property values updated from a price index series.
//
// Records that cannot be used are skipped and reported as Diagnostics, a
// single bad record never fails a whole computation.
//
// This package serves as the foundational logic for the `imc` command-line
// tool.
package immo
