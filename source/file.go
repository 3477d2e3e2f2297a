package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/etnz/immo"
	"github.com/hjson/hjson-go/v4"
	"github.com/sirupsen/logrus"
)

// Dataset is the content of a portfolio file.
type Dataset struct {
	Currency string `json:"currency,omitempty"`
	immo.Inputs
}

// DecodeDataset reads a dataset in JSON, or in Hjson when hjson is true.
//
// Hjson is first decoded generically then converted to JSON, so that the
// custom decoding of amounts and dates applies the same in both formats.
func DecodeDataset(data []byte, hjsonFormat bool) (*Dataset, error) {
	if hjsonFormat {
		var generic interface{}
		if err := hjson.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("invalid hjson: %w", err)
		}
		var err error
		if data, err = json.Marshal(generic); err != nil {
			return nil, err
		}
	}
	ds := new(Dataset)
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(ds); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return ds, nil
}

// LoadDataset reads the dataset file at path. Files ending in .hjson are read
// as Hjson, any other as JSON.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := DecodeDataset(data, strings.EqualFold(filepath.Ext(path), ".hjson"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// FileRepository is a Repository over a dataset file, read once on first use.
type FileRepository struct {
	Path string
	Log  logrus.FieldLogger

	once sync.Once
	ds   *Dataset
	err  error
}

// NewFileRepository returns the repository of the dataset file at path.
func NewFileRepository(path string, log logrus.FieldLogger) *FileRepository {
	return &FileRepository{Path: path, Log: log}
}

// Dataset returns the whole content of the file.
func (r *FileRepository) Dataset() (*Dataset, error) {
	r.once.Do(func() {
		r.ds, r.err = LoadDataset(r.Path)
		if r.err == nil && r.Log != nil {
			r.Log.WithFields(logrus.Fields{
				"path":         r.Path,
				"properties":   len(r.ds.Properties),
				"leases":       len(r.ds.Leases),
				"transactions": len(r.ds.Transactions),
				"obligations":  len(r.ds.Obligations),
				"loans":        len(r.ds.Loans),
			}).Debug("dataset loaded")
		}
	})
	return r.ds, r.err
}

// load returns the dataset unless ctx is done.
func (r *FileRepository) load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Dataset()
}

func (r *FileRepository) Properties(ctx context.Context, q Query) ([]immo.Property, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ds.Properties, func(p immo.Property) bool { return q.matches(p.ID) }), nil
}

func (r *FileRepository) Leases(ctx context.Context, q Query) ([]immo.Lease, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ds.Leases, func(l immo.Lease) bool { return q.matches(l.PropertyID) }), nil
}

func (r *FileRepository) Transactions(ctx context.Context, q Query) ([]immo.Transaction, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ds.Transactions, func(t immo.Transaction) bool {
		return q.matches(t.PropertyID) && q.books(t.Month())
	}), nil
}

func (r *FileRepository) Obligations(ctx context.Context, q Query) ([]immo.Obligation, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ds.Obligations, func(o immo.Obligation) bool { return q.matches(o.PropertyID) }), nil
}

func (r *FileRepository) Loans(ctx context.Context, q Query) ([]immo.Loan, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ds.Loans, func(l immo.Loan) bool { return q.matches(l.PropertyID) }), nil
}

// filter returns a new slice with the items kept by keep.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

var _ Repository = (*FileRepository)(nil)
