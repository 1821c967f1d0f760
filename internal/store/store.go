// Package store keeps the reference catalog of customers and engineers the
// create form picks from.
package store

import (
	"context"
	"errors"

	"github.com/nhle/fieldservice/internal/model"
)

// ErrNotFound is returned when a catalog lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Catalog defines read and seed access to customers and engineers.
type Catalog interface {
	// === Customers ===

	UpsertCustomers(ctx context.Context, customers []model.Customer) error
	GetCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*model.Customer, error)

	// SearchCustomers matches query against company and contact names,
	// ignoring case. An empty query returns every customer.
	SearchCustomers(ctx context.Context, query string) ([]model.Customer, error)

	// === Engineers ===

	UpsertEngineers(ctx context.Context, engineers []model.Engineer) error
	GetEngineers(ctx context.Context) ([]model.Engineer, error)
	GetEngineerByID(ctx context.Context, id string) (*model.Engineer, error)

	// SearchEngineers matches query against engineer names, ignoring case.
	SearchEngineers(ctx context.Context, query string) ([]model.Engineer, error)

	Close() error
}
