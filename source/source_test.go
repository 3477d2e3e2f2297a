package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
)

const datasetHJSON = `
{
  # a small portfolio
  currency: EUR
  properties: [
    {
      id: p1
      name: Rue des Lilas
      acquisitionPrice: 200000
      acquiredAt: 2020-06-15
    }
    {
      id: p2
      acquisitionPrice: "95 000,00"
    }
  ]
  leases: [
    {
      id: l1
      propertyId: p1
      tenant: Martin
      start: 2023-09-01
      rentAmount: 700
      recoverableCharges: 50
      status: active
    }
  ]
  transactions: [
    {
      id: t1
      propertyId: p1
      date: 2024-02-05
      amount: 750
      nature: LOYER
      settledAt: 2024-02-05
    }
    {
      // booked on the month after
      id: t2
      propertyId: p1
      date: 2023-12-28
      accountingMonth: 2024-01
      amount: -120.5
      settledAt: 2023-12-30
    }
    {
      id: t3
      propertyId: p2
      date: 2024-02-10
      amount: -40
    }
  ]
  obligations: [
    {
      id: o1
      propertyId: p1
      label: Copropriété
      type: condo-fees
      periodicity: quarterly
      amount: "300"
      direction: DEBIT
      startAt: 2024-01-01
      isActive: true
    }
    {
      id: o2
      propertyId: p2
      label: Taxe foncière
      type: tax
      periodicity: yearly
      amount: null
      direction: DEBIT
      startAt: 2022-10-15
      isActive: true
    }
  ]
  loans: [
    {
      id: k1
      propertyId: p1
      principal: 200000
      annualRatePct: 3
      durationMonths: 240
      insurancePct: 0.3
      startDate: 2024-01-01
      isActive: true
    }
  ]
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileRepository_HJSON(t *testing.T) {
	repo := NewFileRepository(writeFile(t, "portfolio.hjson", datasetHJSON), nil)
	ds, err := repo.Dataset()
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if ds.Currency != "EUR" || len(ds.Properties) != 2 || len(ds.Transactions) != 3 || len(ds.Loans) != 1 {
		t.Fatalf("Dataset() = %+v, want 2 properties, 3 transactions and 1 loan in EUR", ds)
	}
	if !ds.Properties[1].AcquisitionPrice.Equal(immo.A(95000)) {
		t.Errorf("p2 acquisition price = %v, want 95000", ds.Properties[1].AcquisitionPrice)
	}
	if got := ds.Transactions[1]; got.Month() != date.MustParseMonth("2024-01") || !got.Amount.Equal(immo.A(-120.5)) {
		t.Errorf("t2 = %v %v, want 2024-01 -120.5", got.Month(), got.Amount)
	}
	if ds.Transactions[2].IsSettled() {
		t.Errorf("t3 should not be settled")
	}
	if ds.Obligations[1].Amount != "" {
		t.Errorf("o2 amount = %q, want empty", ds.Obligations[1].Amount)
	}
	if ds.Loans[0].StartDate != date.New(2024, 1, 1) || ds.Loans[0].DurationMonths != 240 {
		t.Errorf("k1 = %+v", ds.Loans[0])
	}
}

func TestFileRepository_JSON(t *testing.T) {
	path := writeFile(t, "portfolio.json", `{"properties":[{"id":"p1","acquisitionPrice":1000}],"loans":[]}`)
	in, err := Fetch(context.Background(), NewFileRepository(path, nil), Query{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(in.Properties) != 1 || len(in.Loans) != 0 {
		t.Errorf("Fetch() = %+v", in)
	}
}

func TestFileRepository_Invalid(t *testing.T) {
	testCases := []struct {
		name, file, content string
	}{
		{"bad json", "p.json", `{"properties": [`},
		{"bad hjson", "p.hjson", `{ properties: [ }`},
		{"bad amount", "p.json", `{"properties":[{"id":"p1","acquisitionPrice":"douze"}]}`},
		{"bad date", "p.json", `{"loans":[{"id":"k","startDate":"yesterday"}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDataset(writeFile(t, tc.file, tc.content))
			if err == nil {
				t.Errorf("LoadDataset() should fail")
			}
		})
	}
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDataset(missing) error = %v, want ErrNotExist", err)
	}
}

func TestFetch_Query(t *testing.T) {
	repo := NewFileRepository(writeFile(t, "portfolio.hjson", datasetHJSON), nil)
	testCases := []struct {
		name                                                 string
		q                                                    Query
		properties, leases, transactions, obligations, loans int
	}{
		{"everything", Query{}, 2, 1, 3, 2, 1},
		{"one property", Query{PropertyID: "p2"}, 1, 0, 1, 1, 0},
		{"booked in january", Query{From: date.MustParseMonth("2024-01"), To: date.MustParseMonth("2024-01")}, 2, 1, 1, 2, 1},
		{"from february", Query{From: date.MustParseMonth("2024-02")}, 2, 1, 2, 2, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := Fetch(context.Background(), repo, tc.q)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			got := []int{len(in.Properties), len(in.Leases), len(in.Transactions), len(in.Obligations), len(in.Loans)}
			want := []int{tc.properties, tc.leases, tc.transactions, tc.obligations, tc.loans}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("Fetch() counts = %v, want %v", got, want)
					break
				}
			}
		})
	}
}

// failingRepository fails to read its loans and waits for cancellation on
// every other read.
type failingRepository struct{}

var errDown = errors.New("database is down")

func (failingRepository) wait(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (r failingRepository) Properties(ctx context.Context, q Query) ([]immo.Property, error) {
	return nil, r.wait(ctx)
}
func (r failingRepository) Leases(ctx context.Context, q Query) ([]immo.Lease, error) {
	return nil, r.wait(ctx)
}
func (r failingRepository) Transactions(ctx context.Context, q Query) ([]immo.Transaction, error) {
	return nil, r.wait(ctx)
}
func (r failingRepository) Obligations(ctx context.Context, q Query) ([]immo.Obligation, error) {
	return nil, r.wait(ctx)
}
func (failingRepository) Loans(ctx context.Context, q Query) ([]immo.Loan, error) {
	return nil, errDown
}

func TestFetch_Failure(t *testing.T) {
	_, err := Fetch(context.Background(), failingRepository{}, Query{})
	if !errors.Is(err, errDown) {
		t.Errorf("Fetch() error = %v, want %v", err, errDown)
	}
}

func TestFetch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewFileRepository(writeFile(t, "portfolio.hjson", datasetHJSON), nil)
	if _, err := Fetch(ctx, repo, Query{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}
