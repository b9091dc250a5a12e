package newsroom

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means the slug was taken concurrently and disambiguation
	// did not recover. The whole create may be retried.
	ErrConflict = errors.New("slug conflict")
	ErrStorage  = errors.New("storage failure")
)

const emptyReplyBody = "empty reply body"

// ValidationError lists the offending input fields.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
