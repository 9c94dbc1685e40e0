package openapi

import (
	"errors"

	"github.com/goliatone/go-formfield/pkg/field"
)

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoPaths is returned for documents without paths.
	ErrNoPaths = errors.New("openapi: document does not contain any paths")
)

// Operation is one OpenAPI operation reduced to the form it submits.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Fields      []field.Config
	// Defaults holds schema defaults keyed by field name.
	Defaults map[string]string
}

// Field returns the config for name.
func (op Operation) Field(name string) (field.Config, bool) {
	for _, cfg := range op.Fields {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return field.Config{}, false
}
