// Package source loads the collections of a portfolio from a repository.
//
// The engine in package immo never reads anything: Fetch gathers every
// collection it needs and hands them over as immo.Inputs.
package source

import (
	"context"
	"fmt"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
	"golang.org/x/sync/errgroup"
)

// Query selects the records a repository returns.
type Query struct {
	PropertyID string     // all properties when empty
	From, To   date.Month // transactions booked in [From, To]; no bound when zero
}

// matches reports whether propertyID is selected.
func (q Query) matches(propertyID string) bool {
	return q.PropertyID == "" || q.PropertyID == propertyID
}

// books reports whether the accounting month m is selected.
func (q Query) books(m date.Month) bool {
	if !q.From.IsZero() && m.Before(q.From) {
		return false
	}
	return q.To.IsZero() || !m.After(q.To)
}

// Repository reads the collections of a portfolio.
//
// Each read is independent from the others and may run concurrently.
type Repository interface {
	Properties(ctx context.Context, q Query) ([]immo.Property, error)
	Leases(ctx context.Context, q Query) ([]immo.Lease, error)
	Transactions(ctx context.Context, q Query) ([]immo.Transaction, error)
	Obligations(ctx context.Context, q Query) ([]immo.Obligation, error)
	Loans(ctx context.Context, q Query) ([]immo.Loan, error)
}

// Fetch reads the five collections of q concurrently and returns once all of
// them are read. The first failure cancels the other reads.
func Fetch(ctx context.Context, repo Repository, q Query) (immo.Inputs, error) {
	var in immo.Inputs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Properties, err = repo.Properties(ctx, q)
		return wrap("properties", err)
	})
	g.Go(func() (err error) {
		in.Leases, err = repo.Leases(ctx, q)
		return wrap("leases", err)
	})
	g.Go(func() (err error) {
		in.Transactions, err = repo.Transactions(ctx, q)
		return wrap("transactions", err)
	})
	g.Go(func() (err error) {
		in.Obligations, err = repo.Obligations(ctx, q)
		return wrap("obligations", err)
	})
	g.Go(func() (err error) {
		in.Loans, err = repo.Loans(ctx, q)
		return wrap("loans", err)
	})
	if err := g.Wait(); err != nil {
		return immo.Inputs{}, err
	}
	return in, nil
}

func wrap(collection string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("reading %s: %w", collection, err)
}
