package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/descriptor"
	"github.com/goliatone/go-formfield/pkg/field"
)

// DocumentKind names the format of a form document.
type DocumentKind string

const (
	// KindAuto detects the format from the top level keys.
	KindAuto       DocumentKind = ""
	KindDescriptor DocumentKind = "descriptor"
	KindOpenAPI    DocumentKind = "openapi"
)

// ErrUnknownDocument is returned when the format cannot be detected.
var ErrUnknownDocument = errors.New("orchestrator: document is neither a descriptor nor an OpenAPI specification")

// Definition is a form reduced to what the pipeline binds and renders.
type Definition struct {
	ID       string
	Title    string
	Action   string
	Method   string
	Submit   string
	Fields   []field.Config
	Defaults map[string]string
}

func detectKind(data []byte) (DocumentKind, error) {
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return KindAuto, fmt.Errorf("%w: %v", ErrUnknownDocument, err)
	}
	if _, ok := top["openapi"]; ok {
		return KindOpenAPI, nil
	}
	if _, ok := top["forms"]; ok {
		return KindDescriptor, nil
	}
	return KindAuto, ErrUnknownDocument
}

func (o *Orchestrator) definition(ctx context.Context, data []byte, kind DocumentKind, id string) (Definition, error) {
	if kind == KindAuto {
		detected, err := detectKind(data)
		if err != nil {
			return Definition{}, err
		}
		kind = detected
	}

	switch kind {
	case KindDescriptor:
		store, err := descriptor.Parse(data, "request")
		if err != nil {
			return Definition{}, err
		}
		form, err := store.Form(id)
		if err != nil {
			return Definition{}, err
		}
		return Definition{
			ID:       form.ID,
			Title:    form.Title,
			Action:   form.Action,
			Method:   form.Method,
			Submit:   form.Submit,
			Fields:   form.Fields,
			Defaults: form.Defaults,
		}, nil
	case KindOpenAPI:
		op, err := o.parser.Operation(ctx, data, id)
		if err != nil {
			return Definition{}, err
		}
		return Definition{
			ID:       op.ID,
			Title:    op.Summary,
			Action:   op.Path,
			Method:   strings.ToUpper(op.Method),
			Fields:   op.Fields,
			Defaults: op.Defaults,
		}, nil
	default:
		return Definition{}, fmt.Errorf("orchestrator: unsupported document kind %q", kind)
	}
}
