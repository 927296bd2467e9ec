package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the resource's current
// state, e.g. deactivating an account that still carries a balance.
var ErrConflict = errors.New("conflict with current state")

// ErrStateTransition indicates an operation not permitted by the entry's
// lifecycle, e.g. editing or approving an already-decided journal entry.
var ErrStateTransition = errors.New("invalid state transition")

// ErrForbidden indicates the authenticated actor's role does not permit the
// operation.
var ErrForbidden = errors.New("operation not permitted for role")

// ErrPostingFailed indicates the balance application step of an approval
// failed and the whole transaction was rolled back.
var ErrPostingFailed = errors.New("posting failed")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// FieldError ties a single validation failure to the field that caused it.
// Field uses dotted paths for line-level failures, e.g. "lines[2].debit".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field failure found in one pass so callers
// see the full list rather than the first problem only.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match a *ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add appends a field failure.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any failure was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error if any failures were recorded, nil otherwise.
// Returning the concrete type through an error interface would make nil
// checks lie, so collection sites call this instead.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
