package core

// export.go implements the CSV export pipeline: a pure read-then-format
// operation over the full product table. Every field except the numeric id
// and stock is wrapped in double quotes with internal quotes doubled, so
// the output is stable regardless of commas or quotes in product names.

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"
)

// ExportHeader is the fixed column set of an export file. Import accepts
// the same columns minus id and the timestamps.
const ExportHeader = "id,name,unit,category,brand,stock,status,created_at,updated_at"

// exportTimeLayout matches the timestamp texture of the store.
const exportTimeLayout = "2006-01-02 15:04:05"

// ExportCSV serializes all products to CSV. The whole document is built
// before returning so a storage-read failure surfaces wholesale instead of
// truncating a response mid-stream.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(ExportHeader)
	buf.WriteByte('\n')

	for i, p := range products {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(strconv.FormatInt(p.ID, 10))
		buf.WriteByte(',')
		buf.WriteString(quoteField(p.Name))
		buf.WriteByte(',')
		buf.WriteString(quoteField(p.Unit))
		buf.WriteByte(',')
		buf.WriteString(quoteField(p.Category))
		buf.WriteByte(',')
		buf.WriteString(quoteField(p.Brand))
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatInt(p.Stock, 10))
		buf.WriteByte(',')
		buf.WriteString(quoteField(p.Status))
		buf.WriteByte(',')
		buf.WriteString(quoteField(formatExportTime(p.CreatedAt)))
		buf.WriteByte(',')
		buf.WriteString(quoteField(formatExportTime(p.UpdatedAt)))
	}

	return buf.Bytes(), nil
}

// quoteField wraps a value in double quotes, doubling internal quotes.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// formatExportTime renders a timestamp for export. Zero times render as an
// empty quoted string.
func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(exportTimeLayout)
}
