package web

// errors.go maps service errors to HTTP responses.
//
// Validation and conflict errors carry client-safe messages and map to 400;
// unknown ids map to 404; CSV parse failures map to 500 with a fixed
// message. Anything else is a storage failure: the technical detail is
// logged server-side and the client only sees a generic message.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Prathamesh-265/skillwise-inventory-project/internal/core"
	"github.com/Prathamesh-265/skillwise-inventory-project/internal/logging"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError writes the HTTP response for err.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classifyError(err)

	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err.Error(),
		)
	}

	writeErrorMessage(w, status, message)
}

// classifyError resolves an error to a status code and client message.
func classifyError(err error) (int, string) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, core.ErrDuplicateName):
		return http.StatusBadRequest, "Product name must be unique"
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, core.ErrCSVParse):
		return http.StatusInternalServerError, "CSV parse error"
	default:
		return http.StatusInternalServerError, "Database error"
	}
}

// writeErrorMessage writes a JSON error body with the given status.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing to do but log.
		slog.Error("json encode error", "error", err.Error())
	}
}
