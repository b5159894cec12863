package core

import (
	"context"
	"strings"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/logging"
)

// Service provides the inventory business logic on top of a Store.
type Service struct {
	store Store
}

// NewService creates a new Service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ping verifies the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ListProducts returns all products.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.store.ListProducts(ctx)
}

// SearchProducts returns products whose name contains term,
// case-insensitively. An empty term returns all products.
func (s *Service) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	return s.store.SearchProducts(ctx, term)
}

// GetProduct returns a single product by id.
func (s *Service) GetProduct(ctx context.Context, id int64) (Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateProduct validates the payload, enforces name uniqueness, and
// persists a new product. A missing status is derived from the stock level.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	stock, err := in.validate(false)
	if err != nil {
		return Product{}, err
	}

	if _, found, err := s.store.FindProductIDByName(ctx, in.Name); err != nil {
		return Product{}, err
	} else if found {
		return Product{}, ErrDuplicateName
	}

	status := in.Status
	if status == "" {
		status = DeriveStatus(stock)
	}

	return s.store.InsertProduct(ctx, Product{
		Name:     in.Name,
		Unit:     in.Unit,
		Category: in.Category,
		Brand:    in.Brand,
		Stock:    stock,
		Status:   status,
	})
}

// UpdateProduct applies a full replacement payload to the product with the
// given id. The sequence is fixed: validation, uniqueness check, existence
// check, field update, conditional log append. The update and the log
// append share one transaction, so a stock change can never commit
// unlogged.
//
// Exactly one inventory log entry is written when the stored stock differs
// from the new stock; none otherwise. The actor falls back to DefaultActor
// when the payload carries no changedBy.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (Product, error) {
	stock, err := in.validate(true)
	if err != nil {
		return Product{}, err
	}

	if _, found, err := s.store.FindProductIDByNameExcept(ctx, in.Name, id); err != nil {
		return Product{}, err
	} else if found {
		return Product{}, ErrDuplicateName
	}

	old, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}

	updated := old
	updated.Name = in.Name
	updated.Unit = in.Unit
	updated.Category = in.Category
	updated.Brand = in.Brand
	updated.Stock = stock
	updated.Status = in.Status

	var entry *InventoryLogEntry
	if old.Stock != stock {
		actor := in.ChangedBy
		if actor == "" {
			actor = DefaultActor
		}
		entry = &InventoryLogEntry{
			ProductID: id,
			OldStock:  old.Stock,
			NewStock:  stock,
			ChangedBy: actor,
		}
	}

	result, err := s.store.UpdateProductWithLog(ctx, updated, entry)
	if err != nil {
		return Product{}, err
	}

	if entry != nil {
		logging.FromContext(ctx).Info("stock changed",
			"product_id", id,
			"old_stock", old.Stock,
			"new_stock", stock,
			"changed_by", entry.ChangedBy,
		)
	}

	return result, nil
}

// DeleteProduct removes a product by id. Deleting an unknown id succeeds,
// and the product's inventory log entries are preserved as history.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

// ProductHistory returns the inventory log entries for a product, newest
// first.
func (s *Service) ProductHistory(ctx context.Context, productID int64) ([]InventoryLogEntry, error) {
	return s.store.ProductHistory(ctx, productID)
}

// normalizeName is the comparison key for case-insensitive uniqueness.
func normalizeName(name string) string {
	return strings.ToLower(name)
}
