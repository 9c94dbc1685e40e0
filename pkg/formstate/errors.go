package formstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNameRequired is returned when registering a field without a name.
	ErrNameRequired = errors.New("formstate: field name is required")
	// ErrDuplicateField is returned when a name is registered twice.
	ErrDuplicateField = errors.New("formstate: field already registered")
	// ErrUnknownField is returned for operations on unregistered fields.
	ErrUnknownField = errors.New("formstate: field not registered")
)

// Error types recorded for built-in constraints. Rule failures use the rule
// name as their type.
const (
	ErrorTypePattern = "pattern"
	ErrorTypeMin     = "min"
	ErrorTypeMax     = "max"
)

// FieldError is a single validation failure attached to a field.
type FieldError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ValidationErrors maps field names to their failure messages. It implements
// error so whole-form validation can be returned directly.
type ValidationErrors map[string][]string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "formstate: validation failed"
	}
	fields := ve.Fields()
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(ve[field], ", ")))
	}
	return "formstate: validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one message.
func (ve ValidationErrors) Has(field string) bool {
	return len(ve[field]) > 0
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	return ve[field]
}

// Fields returns the failing field names sorted alphabetically.
func (ve ValidationErrors) Fields() []string {
	names := make([]string, 0, len(ve))
	for name := range ve {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
