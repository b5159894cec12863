package core

import "errors"

// Sentinel errors returned by the service and store layers. The web layer
// maps these to HTTP statuses; anything unrecognized is treated as a
// storage failure and reported generically.
var (
	// ErrNotFound means no product exists with the requested id.
	ErrNotFound = errors.New("product not found")

	// ErrDuplicateName means another product already holds the requested
	// name under case-insensitive comparison.
	ErrDuplicateName = errors.New("product name must be unique")

	// ErrCSVParse means the uploaded file could not be parsed as CSV.
	// Rows processed before the failure are not rolled back.
	ErrCSVParse = errors.New("csv parse error")
)

// ValidationError reports a rejected request payload. The message is safe
// to return to clients verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// validationErr is a convenience constructor.
func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
