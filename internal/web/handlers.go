package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
	"github.com/Prathamesh-265/skillwise-inventory-project/internal/logging"
	"github.com/go-chi/chi/v5"
)

// productPayload is the request body for create and update. Stock stays a
// raw JSON value because clients send it as either a number or a numeric
// string; the service coerces and validates it.
type productPayload struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	Stock     any    `json:"stock"`
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
}

func (p productPayload) input() core.ProductInput {
	return core.ProductInput{
		Name:      p.Name,
		Unit:      p.Unit,
		Category:  p.Category,
		Brand:     p.Brand,
		Stock:     p.Stock,
		Status:    p.Status,
		ChangedBy: p.ChangedBy,
	}
}

// handleHealthz reports liveness and store reachability.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleListProducts returns all products.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.ListProducts(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, products)
}

// handleSearchProducts returns products whose name contains the query
// term, case-insensitively. An empty term returns everything.
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("name")
	products, err := s.service.SearchProducts(r.Context(), term)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, products)
}

// handleGetProduct returns a single product by id.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}
	product, err := s.service.GetProduct(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// handleCreateProduct validates and persists a new product.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := s.service.CreateProduct(r.Context(), payload.input())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// handleUpdateProduct applies a full replacement payload and returns the
// updated product. A stock change appends one inventory log entry.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := s.service.UpdateProduct(r.Context(), id, payload.input())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// handleDeleteProduct removes a product. Deleting an unknown id still
// reports success; the product's log entries are preserved either way.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// An unparseable id matches nothing, which deletion treats the
		// same as deleting an unknown id.
		writeJSON(w, map[string]bool{"success": true})
		return
	}

	if err := s.service.DeleteProduct(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// handleProductHistory returns a product's inventory log, newest first.
func (s *Server) handleProductHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}
	entries, err := s.service.ProductHistory(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, entries)
}

// handleImportCSV processes a multipart CSV upload. Multipart temp storage
// is released on every exit path.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()

	result, err := s.service.ImportCSV(r.Context(), file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("csv import finished",
		"added", result.Added,
		"skipped", result.Skipped,
	)
	writeJSON(w, result)
}

// handleExportCSV serializes the full product table as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportCSV(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.Write(data)
}

// productID parses the id route parameter. An unparseable id matches no
// product and responds 404.
func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusNotFound, "Product not found")
		return 0, false
	}
	return id, true
}
