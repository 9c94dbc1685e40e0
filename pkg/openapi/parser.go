package openapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/rules"
)

// Option configures a Parser.
type Option func(*Parser)

// WithValidation validates the whole document before extracting operations.
func WithValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// WithExternalRefs allows $ref pointers to other documents.
func WithExternalRefs(enabled bool) Option {
	return func(p *Parser) {
		p.externalRefs = enabled
	}
}

// WithLogger routes skipped-operation diagnostics through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser turns OpenAPI documents into operations.
type Parser struct {
	validate     bool
	externalRefs bool
	logger       *slog.Logger
}

// NewParser constructs a Parser.
func NewParser(options ...Option) *Parser {
	p := &Parser{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH"}

// Operations returns every operation keyed by operationId. Operations
// without an id are keyed as "<method>:<path>" in lower case method.
func (p *Parser) Operations(ctx context.Context, data []byte) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: p.externalRefs}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if p.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, ErrNoPaths
	}

	operations := make(map[string]Operation)
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range methods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			converted, err := p.convert(method, path, op)
			if err != nil {
				return nil, err
			}
			operations[converted.ID] = converted
		}
	}
	return operations, nil
}

// Operation returns the single operation identified by id.
func (p *Parser) Operation(ctx context.Context, data []byte, id string) (Operation, error) {
	operations, err := p.Operations(ctx, data)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

func (p *Parser) convert(method, path string, op *openapi3.Operation) (Operation, error) {
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	out := Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil {
		p.logger.Debug("openapi: operation has no request body", slog.String("operation", id))
		return out, nil
	}

	fields, defaults, err := convertProperties(schema)
	if err != nil {
		return Operation{}, fmt.Errorf("openapi: operation %q: %w", id, err)
	}
	out.Fields = fields
	out.Defaults = defaults
	return out, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type property struct {
	name  string
	order int
	cfg   field.Config
}

func convertProperties(schema *openapi3.Schema) ([]field.Config, map[string]string, error) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var (
		props    []property
		defaults map[string]string
	)
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		ext, err := decodeExtension(prop.Extensions)
		if err != nil {
			return nil, nil, fmt.Errorf("property %q: %w", name, err)
		}
		if ext.Skip || prop.ReadOnly {
			continue
		}
		cfg, err := convertProperty(name, prop, ext, required[name])
		if err != nil {
			return nil, nil, fmt.Errorf("property %q: %w", name, err)
		}
		order := len(schema.Properties) + 1
		if ext.Order != nil {
			order = *ext.Order
		}
		props = append(props, property{name: name, order: order, cfg: cfg})

		if prop.Default != nil {
			if defaults == nil {
				defaults = make(map[string]string)
			}
			defaults[name] = fmt.Sprint(prop.Default)
		}
	}

	sort.SliceStable(props, func(i, j int) bool {
		if props[i].order != props[j].order {
			return props[i].order < props[j].order
		}
		return props[i].name < props[j].name
	})
	fields := make([]field.Config, 0, len(props))
	for _, p := range props {
		fields = append(fields, p.cfg)
	}
	return fields, defaults, nil
}

func convertProperty(name string, prop *openapi3.Schema, ext fieldExtension, required bool) (field.Config, error) {
	cfg := field.Config{
		Name:          name,
		Label:         prop.Title,
		Hint:          prop.Description,
		Pattern:       prop.Pattern,
		Min:           prop.Min,
		Max:           prop.Max,
		Placeholder:   ext.Placeholder,
		CustomMessage: ext.CustomMessage,
		CustomError:   ext.CustomError,
		Theme:         ext.Theme,
		AutoComplete:  ext.AutoComplete,
		Optional:      ext.Optional,
	}
	if ext.Hint != "" {
		cfg.Hint = ext.Hint
	}

	var names []rules.Name
	if required {
		names = append(names, rules.Required)
	}
	switch prop.Format {
	case "email":
		cfg.Type = "email"
		names = append(names, rules.Email)
	case "password":
		cfg.Type = "password"
		names = append(names, rules.Password)
	}
	if cfg.Type == "" && prop.Type != nil && (prop.Type.Is(openapi3.TypeInteger) || prop.Type.Is(openapi3.TypeNumber)) {
		cfg.Type = "number"
	}
	if ext.Type != "" {
		cfg.Type = ext.Type
	}

	extra, err := rules.ParseNames(ext.Rules)
	if err != nil {
		return field.Config{}, err
	}
	for _, n := range extra {
		if !rules.Contains(names, n) {
			names = append(names, n)
		}
	}
	cfg.Rules = names
	if !required {
		cfg.Optional = true
	}
	return cfg, nil
}
