package core_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields the header only", func(t *testing.T) {
		svc, _ := newTestService(t)
		out, err := svc.ExportCSV(ctx)
		if err != nil {
			t.Fatalf("ExportCSV error = %v", err)
		}
		if got := string(out); got != core.ExportHeader+"\n" {
			t.Errorf("export = %q, want header only", got)
		}
	})

	t.Run("quotes text fields and leaves numbers bare", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreate(t, svc, "Sugar", 10)

		out, err := svc.ExportCSV(ctx)
		if err != nil {
			t.Fatalf("ExportCSV error = %v", err)
		}
		lines := strings.Split(string(out), "\n")
		if len(lines) != 2 {
			t.Fatalf("line count = %d, want 2", len(lines))
		}
		if !strings.HasPrefix(lines[1], `1,"Sugar","pcs","Grocery","Acme",10,"In Stock",`) {
			t.Errorf("row = %q", lines[1])
		}
		if strings.HasSuffix(string(out), "\n") {
			t.Error("export carries a trailing newline")
		}
	})

	t.Run("doubles embedded quotes", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreate(t, svc, `Jam "Extra", 1kg`, 3)

		out, err := svc.ExportCSV(ctx)
		if err != nil {
			t.Fatalf("ExportCSV error = %v", err)
		}
		want := `"Jam ""Extra"", 1kg"`
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("export %q does not contain %q", out, want)
		}
	})

	t.Run("round-trips through import", func(t *testing.T) {
		src, _ := newTestService(t)
		mustCreate(t, src, "Green Tea", 5)
		mustCreate(t, src, `Jam "Extra"`, 0)

		out, err := src.ExportCSV(ctx)
		if err != nil {
			t.Fatalf("ExportCSV error = %v", err)
		}

		dst, _ := newTestService(t)
		result, err := dst.ImportCSV(ctx, bytes.NewReader(out))
		if err != nil {
			t.Fatalf("ImportCSV error = %v", err)
		}
		if result.Added != 2 || result.Skipped != 0 {
			t.Fatalf("result = %+v, want added=2", result)
		}

		want, _ := src.ListProducts(ctx)
		got, _ := dst.ListProducts(ctx)
		for i := range want {
			if got[i].Name != want[i].Name || got[i].Stock != want[i].Stock {
				t.Errorf("product %d = %s/%d, want %s/%d",
					i, got[i].Name, got[i].Stock, want[i].Name, want[i].Stock)
			}
		}
	})
}
