// Package formfield is the entry point for binding form fields to a form
// state and rendering them. The packages under pkg/ hold the rule engine
// (rules, strength, field, formstate), the loaders (descriptor, openapi,
// source) and the renderers.
package formfield

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/formstate"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/source"
)

// Config aliases field.Config.
type Config = field.Config

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewForm returns an empty in-memory form state.
func NewForm(options ...formstate.Option) *formstate.Form {
	return formstate.New(options...)
}

// NewField binds cfg to provider.
func NewField(provider field.Provider, cfg Config, options ...field.Option) (*field.Field, error) {
	return field.New(provider, cfg, options...)
}

// NewOrchestrator exposes the orchestrator constructor.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads src and renders the form identified by formID (a
// descriptor form id or an OpenAPI operation id) as HTML.
func GenerateHTML(ctx context.Context, src source.Source, formID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   src,
		FormID:   formID,
		Renderer: "html",
	})
}

// GenerateHTMLFromDocument renders formID from an in-memory document.
func GenerateHTMLFromDocument(ctx context.Context, document []byte, formID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: document,
		FormID:   formID,
		Renderer: "html",
	})
}
