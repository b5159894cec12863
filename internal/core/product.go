// Package core provides the business logic for the product inventory:
// the product and inventory-log models, the CSV import/export pipelines,
// and the update rules that keep the audit trail consistent.
// This package has no HTTP dependencies and is backed by a Store.
package core

import "time"

// Product status values. Status is stored as free text but the system only
// ever writes these two values.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// DefaultActor is recorded in inventory logs when no changedBy is supplied.
const DefaultActor = "admin"

// Product is a single inventory item. Name is unique case-insensitively
// across all products; stock is never negative.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	Stock     int64     `json:"stock"`
	Status    string    `json:"status"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryLogEntry is an immutable record of a single stock-level change.
// Entries are append-only: nothing in the system mutates or deletes them,
// and they deliberately survive deletion of the product they reference.
type InventoryLogEntry struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	OldStock  int64     `json:"oldStock"`
	NewStock  int64     `json:"newStock"`
	ChangedBy string    `json:"changedBy"`
	Timestamp time.Time `json:"timestamp"`
}

// DeriveStatus returns the status implied by a stock level. Used when a CSV
// row or create request does not carry an explicit status.
func DeriveStatus(stock int64) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}
