package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a field validation failure.
type ErrorKind int

const (
	// ErrKindTooShort means the value is shorter than the field minimum.
	ErrKindTooShort ErrorKind = iota
	// ErrKindRequired means a selection is missing.
	ErrKindRequired
	// ErrKindNotListed means a selection is not in the catalog.
	ErrKindNotListed
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindTooShort:
		return "TooShort"
	case ErrKindRequired:
		return "Required"
	case ErrKindNotListed:
		return "NotListed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FieldError is a validation failure scoped to one field.
type FieldError struct {
	Field   Field
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewTooShortError creates a TooShort error for field.
func NewTooShortError(field Field, message string) *FieldError {
	return &FieldError{Field: field, Kind: ErrKindTooShort, Message: message}
}

// NewRequiredError creates a Required error for field.
func NewRequiredError(field Field, message string) *FieldError {
	return &FieldError{Field: field, Kind: ErrKindRequired, Message: message}
}

// NewNotListedError creates a NotListed error for field.
func NewNotListedError(field Field, message string) *FieldError {
	return &FieldError{Field: field, Kind: ErrKindNotListed, Message: message}
}

func isKind(err error, kind ErrorKind) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// IsTooShort checks if an error is a TooShort field error
func IsTooShort(err error) bool {
	return isKind(err, ErrKindTooShort)
}

// IsRequired checks if an error is a Required field error
func IsRequired(err error) bool {
	return isKind(err, ErrKindRequired)
}

// IsNotListed checks if an error is a NotListed field error
func IsNotListed(err error) bool {
	return isKind(err, ErrKindNotListed)
}

// FieldErrors holds at most one error per field.
type FieldErrors map[Field]*FieldError

// Message returns the error message for field f, or "".
func (fe FieldErrors) Message(f Field) string {
	if e, ok := fe[f]; ok {
		return e.Message
	}
	return ""
}

// Has reports whether field f has an error.
func (fe FieldErrors) Has(f Field) bool {
	_, ok := fe[f]
	return ok
}

// List returns the errors in form field order.
func (fe FieldErrors) List() []*FieldError {
	var list []*FieldError
	for _, f := range Fields {
		if e, ok := fe[f]; ok {
			list = append(list, e)
		}
	}
	return list
}

// Names returns the failing field names in form field order.
func (fe FieldErrors) Names() []string {
	var names []string
	for _, e := range fe.List() {
		names = append(names, string(e.Field))
	}
	return names
}

// Messages returns field name to message, the shape front ends render.
func (fe FieldErrors) Messages() map[string]string {
	m := make(map[string]string, len(fe))
	for f, e := range fe {
		m[string(f)] = e.Message
	}
	return m
}

// Clone returns a copy of fe. The FieldError values are shared.
func (fe FieldErrors) Clone() FieldErrors {
	c := make(FieldErrors, len(fe))
	for f, e := range fe {
		c[f] = e
	}
	return c
}

// FormatValidationErrors formats field errors into a user-friendly message.
func FormatValidationErrors(errs FieldErrors) string {
	if len(errs) == 0 {
		return "No validation errors"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Order validation failed with %d error(s):\n", len(errs)))

	for i, e := range errs.List() {
		b.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, e.Field.Label(), e.Message))
	}

	return b.String()
}
