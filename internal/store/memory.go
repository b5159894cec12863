package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
)

// Memory is an in-process core.Store. It mirrors the Postgres store's
// constraint behavior — the case-insensitive unique name, the non-negative
// stock check, append-only logs — so the business logic can be exercised
// without a database. Used by the test suites and for local development.
type Memory struct {
	mu sync.Mutex

	products      map[int64]core.Product
	logs          []core.InventoryLogEntry
	nextProductID int64
	nextLogID     int64

	// Now supplies timestamps; overridable in tests.
	Now func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		products:      make(map[int64]core.Product),
		nextProductID: 1,
		nextLogID:     1,
		Now:           time.Now,
	}
}

func (s *Memory) Ping(ctx context.Context) error {
	return nil
}

func (s *Memory) ListProducts(ctx context.Context) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(core.Product) bool { return true }), nil
}

func (s *Memory) SearchProducts(ctx context.Context, name string) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term := strings.ToLower(name)
	return s.snapshot(func(p core.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	}), nil
}

func (s *Memory) GetProduct(ctx context.Context, id int64) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return core.Product{}, core.ErrNotFound
	}
	return p, nil
}

func (s *Memory) FindProductIDByName(ctx context.Context, name string) (int64, bool, error) {
	return s.findIDByName(name, 0)
}

func (s *Memory) FindProductIDByNameExcept(ctx context.Context, name string, exceptID int64) (int64, bool, error) {
	return s.findIDByName(name, exceptID)
}

func (s *Memory) InsertProduct(ctx context.Context, p core.Product) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Stock < 0 {
		return core.Product{}, fmt.Errorf("stock check constraint violated: %d", p.Stock)
	}
	for _, existing := range s.products {
		if strings.EqualFold(existing.Name, p.Name) {
			return core.Product{}, core.ErrDuplicateName
		}
	}

	now := s.Now()
	p.ID = s.nextProductID
	s.nextProductID++
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = p
	return p, nil
}

func (s *Memory) UpdateProductWithLog(ctx context.Context, p core.Product, entry *core.InventoryLogEntry) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[p.ID]
	if !ok {
		return core.Product{}, core.ErrNotFound
	}
	if p.Stock < 0 {
		return core.Product{}, fmt.Errorf("stock check constraint violated: %d", p.Stock)
	}
	for id, existing := range s.products {
		if id != p.ID && strings.EqualFold(existing.Name, p.Name) {
			return core.Product{}, core.ErrDuplicateName
		}
	}

	stored.Name = p.Name
	stored.Unit = p.Unit
	stored.Category = p.Category
	stored.Brand = p.Brand
	stored.Stock = p.Stock
	stored.Status = p.Status
	stored.UpdatedAt = s.Now()
	s.products[p.ID] = stored

	if entry != nil {
		e := *entry
		e.ID = s.nextLogID
		s.nextLogID++
		e.Timestamp = s.Now()
		s.logs = append(s.logs, e)
	}

	return stored, nil
}

func (s *Memory) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Log entries referencing the product survive deletion.
	delete(s.products, id)
	return nil
}

func (s *Memory) ProductHistory(ctx context.Context, productID int64) ([]core.InventoryLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []core.InventoryLogEntry{}
	for _, e := range s.logs {
		if e.ProductID == productID {
			entries = append(entries, e)
		}
	}
	// Newest first; log IDs are assigned in insertion order.
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return entries, nil
}

// LogCount returns the total number of log entries across all products.
func (s *Memory) LogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

func (s *Memory) findIDByName(name string, exceptID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deterministic: the lowest matching id wins, like the SQL lookup.
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if id == exceptID {
			continue
		}
		if strings.EqualFold(s.products[id].Name, name) {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// snapshot returns products matching the filter, ordered by id.
func (s *Memory) snapshot(match func(core.Product) bool) []core.Product {
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := []core.Product{}
	for _, id := range ids {
		if p := s.products[id]; match(p) {
			result = append(result, p)
		}
	}
	return result
}
