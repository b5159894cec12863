package core

// import.go implements the CSV import pipeline.
//
// Rows are processed strictly sequentially: each row's uniqueness check
// depends on the cumulative effect of the rows before it in the same run.
// A set of names inserted so far in the run answers intra-run duplicate
// checks without a store round-trip; the store remains the authority for
// names persisted by earlier runs.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/logging"
	"github.com/google/uuid"
)

// Expected CSV columns. The import file carries no id, image, or timestamp
// columns; status is optional and derived from stock when absent.
var importColumns = []string{"name", "unit", "category", "brand", "stock", "status"}

// ImportDuplicate identifies a CSV row that was skipped because its name
// already belongs to an existing product.
type ImportDuplicate struct {
	Name       string `json:"name"`
	ExistingID int64  `json:"existingId"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Added      int               `json:"added"`
	Skipped    int               `json:"skipped"`
	Duplicates []ImportDuplicate `json:"duplicates"`
}

// ImportCSV reads CSV data from r and inserts one product per valid row.
//
// Per row, in order: an empty name skips the row outright; a name matching
// an existing product (persisted earlier, or inserted earlier in this run)
// counts as a duplicate; otherwise the row is inserted with stock coerced
// to a non-negative integer and status derived when absent. A single row's
// insert failure increments Skipped and the run continues — partial success
// is an expected outcome, not a failure mode.
//
// A malformed record aborts the run with ErrCSVParse. Rows already
// inserted before the failure stay inserted.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	runID := uuid.NewString()
	log := logging.FromContext(ctx).With("import_run", runID)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &ImportResult{Duplicates: []ImportDuplicate{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrCSVParse, err)
	}
	headerIdx := indexHeader(header)

	result := &ImportResult{Duplicates: []ImportDuplicate{}}

	// Names inserted during this run, keyed case-insensitively.
	inserted := make(map[string]int64)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error("import aborted on malformed record",
				"added", result.Added,
				"skipped", result.Skipped,
				"error", err.Error(),
			)
			return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
		}

		name := fieldValue(record, headerIdx, "name")
		if name == "" {
			result.Skipped++
			continue
		}

		key := normalizeName(name)
		if id, ok := inserted[key]; ok {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, ImportDuplicate{Name: name, ExistingID: id})
			continue
		}

		if id, found, err := s.store.FindProductIDByName(ctx, name); err != nil {
			log.Error("import aborted on lookup failure", "name", name, "error", err.Error())
			return nil, err
		} else if found {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, ImportDuplicate{Name: name, ExistingID: id})
			continue
		}

		stock := coerceImportStock(fieldValue(record, headerIdx, "stock"))
		status := fieldValue(record, headerIdx, "status")
		if status == "" {
			status = DeriveStatus(stock)
		}

		p, err := s.store.InsertProduct(ctx, Product{
			Name:     name,
			Unit:     fieldValue(record, headerIdx, "unit"),
			Category: fieldValue(record, headerIdx, "category"),
			Brand:    fieldValue(record, headerIdx, "brand"),
			Stock:    stock,
			Status:   status,
		})
		if err != nil {
			// Includes losing a race against a concurrent writer on the
			// name constraint; the row is skipped and the run continues.
			result.Skipped++
			log.Warn("import row failed", "name", name, "error", err.Error())
			continue
		}

		inserted[key] = p.ID
		result.Added++
	}

	log.Info("import run complete",
		"added", result.Added,
		"skipped", result.Skipped,
		"duplicates", len(result.Duplicates),
	)
	return result, nil
}

// indexHeader maps lowercased column names to their position.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// fieldValue returns the named column from record, or "" when the column
// is absent or the record is short.
func fieldValue(record []string, headerIdx map[string]int, col string) string {
	pos, ok := headerIdx[col]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// coerceImportStock converts a raw CSV stock value to a non-negative
// integer. Missing, non-numeric, and negative values all become 0.
func coerceImportStock(raw string) int64 {
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}
