package core

import "context"

// Store is the persistence contract for products and inventory logs.
// Satisfied by the Postgres implementation and by the in-memory store used
// in tests and local development.
//
// Name lookups are case-insensitive. The store is expected to enforce a
// uniqueness constraint on the normalized name as a backstop for the
// service-level pre-check: two concurrent writers can both pass the
// pre-check, and only the constraint closes that race.
type Store interface {
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// ListProducts returns all products ordered by id.
	ListProducts(ctx context.Context) ([]Product, error)

	// SearchProducts returns products whose name contains the given
	// substring, case-insensitively. An empty term matches everything.
	SearchProducts(ctx context.Context, name string) ([]Product, error)

	// GetProduct returns the product with the given id, or ErrNotFound.
	GetProduct(ctx context.Context, id int64) (Product, error)

	// FindProductIDByName returns the id of the product with the given
	// name, if one exists.
	FindProductIDByName(ctx context.Context, name string) (int64, bool, error)

	// FindProductIDByNameExcept is FindProductIDByName but ignores the
	// product with id exceptID. Used by the update uniqueness check.
	FindProductIDByNameExcept(ctx context.Context, name string, exceptID int64) (int64, bool, error)

	// InsertProduct persists a new product and returns it with its
	// assigned id and timestamps. Returns ErrDuplicateName when the
	// uniqueness constraint rejects the row.
	InsertProduct(ctx context.Context, p Product) (Product, error)

	// UpdateProductWithLog replaces the stored field values of p (matched
	// by p.ID), refreshes updated_at, and, when entry is non-nil, appends
	// entry to the inventory log. Both writes happen in one transaction:
	// a log row exists if and only if the update committed.
	// Returns ErrNotFound when p.ID does not exist.
	UpdateProductWithLog(ctx context.Context, p Product, entry *InventoryLogEntry) (Product, error)

	// DeleteProduct removes the product with the given id. Deleting an
	// unknown id is not an error, and log entries referencing the product
	// are left in place.
	DeleteProduct(ctx context.Context, id int64) error

	// ProductHistory returns the inventory log entries for a product,
	// newest first.
	ProductHistory(ctx context.Context, productID int64) ([]InventoryLogEntry, error)
}
