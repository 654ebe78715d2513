package usecase

import (
	"cinema-catalog/pkg/utils"
	"errors"
)

var (
	ErrNotFound            = errors.New("movie not found")
	ErrGenreNotFound       = errors.New("genre not found")
	ErrReferentialConflict = errors.New("movie is still scheduled in showtimes")
)

// ValidationError reports rejected input. Fields maps a field name to a
// human-readable reason and may be empty.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}
