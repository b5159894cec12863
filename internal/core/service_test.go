package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
	"github.com/Prathamesh-265/skillwise-inventory-project/internal/store"
)

func newTestService(t *testing.T) (*core.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return core.NewService(mem), mem
}

func mustCreate(t *testing.T, svc *core.Service, name string, stock float64) core.Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), core.ProductInput{
		Name:     name,
		Unit:     "pcs",
		Category: "Grocery",
		Brand:    "Acme",
		Stock:    stock,
	})
	if err != nil {
		t.Fatalf("CreateProduct(%q) error = %v", name, err)
	}
	return p
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("derives status from stock", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)
		if p.Status != core.StatusInStock {
			t.Errorf("status = %q, want %q", p.Status, core.StatusInStock)
		}
		empty := mustCreate(t, svc, "Salt", 0)
		if empty.Status != core.StatusOutOfStock {
			t.Errorf("status = %q, want %q", empty.Status, core.StatusOutOfStock)
		}
	})

	t.Run("rejects duplicate name regardless of case", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreate(t, svc, "Apple", 5)
		_, err := svc.CreateProduct(ctx, core.ProductInput{
			Name: "APPLE", Unit: "pcs", Category: "Fruit", Brand: "Acme", Stock: float64(3),
		})
		if !errors.Is(err, core.ErrDuplicateName) {
			t.Fatalf("CreateProduct error = %v, want ErrDuplicateName", err)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateProduct(ctx, core.ProductInput{Name: "Sugar"})
		if err == nil || err.Error() != "Missing required fields" {
			t.Fatalf("CreateProduct error = %v, want missing fields", err)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("unchanged stock writes no log entry", func(t *testing.T) {
		svc, mem := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)

		updated, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "Sugar", Unit: "kg", Category: "Grocery", Brand: "Acme",
			Stock: float64(10), Status: core.StatusInStock,
		})
		if err != nil {
			t.Fatalf("UpdateProduct error = %v", err)
		}
		if updated.Unit != "kg" {
			t.Errorf("unit = %q, want %q", updated.Unit, "kg")
		}
		if got := mem.LogCount(); got != 0 {
			t.Errorf("log count = %d, want 0", got)
		}
	})

	t.Run("stock change writes exactly one log entry", func(t *testing.T) {
		svc, mem := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)

		_, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "Sugar", Unit: "pcs", Category: "Grocery", Brand: "Acme",
			Stock: float64(7), Status: core.StatusInStock, ChangedBy: "alice",
		})
		if err != nil {
			t.Fatalf("UpdateProduct error = %v", err)
		}
		if got := mem.LogCount(); got != 1 {
			t.Fatalf("log count = %d, want 1", got)
		}

		history, err := svc.ProductHistory(ctx, p.ID)
		if err != nil {
			t.Fatalf("ProductHistory error = %v", err)
		}
		entry := history[0]
		if entry.OldStock != 10 || entry.NewStock != 7 {
			t.Errorf("entry stock = %d -> %d, want 10 -> 7", entry.OldStock, entry.NewStock)
		}
		if entry.ChangedBy != "alice" {
			t.Errorf("changedBy = %q, want %q", entry.ChangedBy, "alice")
		}
		if entry.Timestamp.IsZero() {
			t.Error("entry timestamp is zero")
		}
	})

	t.Run("actor defaults when payload omits changedBy", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)

		if _, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "Sugar", Unit: "pcs", Category: "Grocery", Brand: "Acme",
			Stock: float64(4), Status: core.StatusInStock,
		}); err != nil {
			t.Fatalf("UpdateProduct error = %v", err)
		}

		history, _ := svc.ProductHistory(ctx, p.ID)
		if history[0].ChangedBy != core.DefaultActor {
			t.Errorf("changedBy = %q, want %q", history[0].ChangedBy, core.DefaultActor)
		}
	})

	t.Run("stock accepted as numeric string", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)

		updated, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "Sugar", Unit: "pcs", Category: "Grocery", Brand: "Acme",
			Stock: "7", Status: core.StatusInStock,
		})
		if err != nil {
			t.Fatalf("UpdateProduct error = %v", err)
		}
		if updated.Stock != 7 {
			t.Errorf("stock = %d, want 7", updated.Stock)
		}
	})

	t.Run("name conflict with another product", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreate(t, svc, "Apple", 5)
		banana := mustCreate(t, svc, "Banana", 5)

		_, err := svc.UpdateProduct(ctx, banana.ID, core.ProductInput{
			Name: "apple", Unit: "pcs", Category: "Fruit", Brand: "Acme",
			Stock: float64(5), Status: core.StatusInStock,
		})
		if !errors.Is(err, core.ErrDuplicateName) {
			t.Fatalf("UpdateProduct error = %v, want ErrDuplicateName", err)
		}
	})

	t.Run("keeping own name is not a conflict", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreate(t, svc, "Apple", 5)

		if _, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "APPLE", Unit: "pcs", Category: "Fruit", Brand: "Acme",
			Stock: float64(5), Status: core.StatusInStock,
		}); err != nil {
			t.Fatalf("UpdateProduct error = %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateProduct(ctx, 404, core.ProductInput{
			Name: "Ghost", Unit: "pcs", Category: "x", Brand: "y",
			Stock: float64(1), Status: core.StatusInStock,
		})
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("UpdateProduct error = %v, want ErrNotFound", err)
		}
	})

	t.Run("validation failure leaves store untouched", func(t *testing.T) {
		svc, mem := newTestService(t)
		p := mustCreate(t, svc, "Sugar", 10)

		_, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
			Name: "Sugar", Unit: "pcs", Category: "Grocery", Brand: "Acme",
			Stock: float64(-1), Status: core.StatusInStock,
		})
		if err == nil || err.Error() != "Stock must be a non-negative number" {
			t.Fatalf("UpdateProduct error = %v, want stock validation error", err)
		}

		stored, _ := svc.GetProduct(ctx, p.ID)
		if stored.Stock != 10 {
			t.Errorf("stored stock = %d, want 10", stored.Stock)
		}
		if got := mem.LogCount(); got != 0 {
			t.Errorf("log count = %d, want 0", got)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)
	p := mustCreate(t, svc, "Sugar", 10)

	if _, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
		Name: "Sugar", Unit: "pcs", Category: "Grocery", Brand: "Acme",
		Stock: float64(3), Status: core.StatusInStock,
	}); err != nil {
		t.Fatalf("UpdateProduct error = %v", err)
	}

	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct error = %v", err)
	}
	if _, err := svc.GetProduct(ctx, p.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetProduct after delete error = %v, want ErrNotFound", err)
	}

	// History survives the product.
	history, err := svc.ProductHistory(ctx, p.ID)
	if err != nil {
		t.Fatalf("ProductHistory error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history length = %d, want 1", len(history))
	}
	if got := mem.LogCount(); got != 1 {
		t.Errorf("log count = %d, want 1", got)
	}

	// Deleting an id that was never there still succeeds.
	if err := svc.DeleteProduct(ctx, 9999); err != nil {
		t.Errorf("DeleteProduct(9999) error = %v", err)
	}
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	mustCreate(t, svc, "Green Tea", 5)
	mustCreate(t, svc, "Black Tea", 0)
	mustCreate(t, svc, "Coffee", 7)

	t.Run("case-insensitive substring", func(t *testing.T) {
		got, err := svc.SearchProducts(ctx, "tEa")
		if err != nil {
			t.Fatalf("SearchProducts error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("result length = %d, want 2", len(got))
		}
	})

	t.Run("empty term returns everything", func(t *testing.T) {
		got, err := svc.SearchProducts(ctx, "")
		if err != nil {
			t.Fatalf("SearchProducts error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("result length = %d, want 3", len(got))
		}
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		got, err := svc.SearchProducts(ctx, "cocoa")
		if err != nil {
			t.Fatalf("SearchProducts error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("result = %#v, want empty non-nil slice", got)
		}
	})

	t.Run("history ordering newest first", func(t *testing.T) {
		p := mustCreate(t, svc, "Milk", 10)
		for _, stock := range []float64{8, 12} {
			if _, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
				Name: "Milk", Unit: "pcs", Category: "Grocery", Brand: "Acme",
				Stock: stock, Status: core.StatusInStock,
			}); err != nil {
				t.Fatalf("UpdateProduct error = %v", err)
			}
		}
		history, err := svc.ProductHistory(ctx, p.ID)
		if err != nil {
			t.Fatalf("ProductHistory error = %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("history length = %d, want 2", len(history))
		}
		if history[0].NewStock != 12 || history[1].NewStock != 8 {
			t.Errorf("history order = [%d, %d], want [12, 8]",
				history[0].NewStock, history[1].NewStock)
		}
	})
}
