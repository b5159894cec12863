package core

// validation.go holds the payload checks shared by the create and update
// paths. Validation and uniqueness checks always run before any mutating
// store call, so a rejected request leaves no trace.

import (
	"encoding/json"
	"math"
	"strconv"
)

// ProductInput is a full replacement payload for a product. Stock is kept
// as the raw decoded JSON value because callers send it as either a number
// or a numeric string; the service coerces it.
type ProductInput struct {
	Name      string
	Unit      string
	Category  string
	Brand     string
	Stock     any
	Status    string
	ChangedBy string
}

// validate rejects payloads with missing required fields or a stock value
// that does not coerce to a non-negative number. requireStatus is false on
// the create path, where a missing status is derived from stock instead.
func (in ProductInput) validate(requireStatus bool) (int64, error) {
	if in.Name == "" || in.Unit == "" || in.Category == "" || in.Brand == "" || in.Stock == nil {
		return 0, validationErr("Missing required fields")
	}
	if requireStatus && in.Status == "" {
		return 0, validationErr("Missing required fields")
	}

	stock, ok := coerceStock(in.Stock)
	if !ok || stock < 0 {
		return 0, validationErr("Stock must be a non-negative number")
	}
	return stock, nil
}

// coerceStock converts a decoded JSON value to an integer stock level.
// Accepts numbers and numeric strings; fractions truncate toward zero.
func coerceStock(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case string:
		// An empty string coerces to zero, matching loose numeric
		// conversion in the clients this API grew up with.
		if n == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}
