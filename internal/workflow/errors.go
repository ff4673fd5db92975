package workflow

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no entry exists with the requested ID.
var ErrNotFound = errors.New("entry not found")

// ErrInvalidStateTransition is returned when reviewing an entry that is no
// longer pending. Approved and rejected are terminal.
var ErrInvalidStateTransition = errors.New("entry is not pending")

// ValidationError reports required draft fields that were empty, in the
// order they are checked.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
