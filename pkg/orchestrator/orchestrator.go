package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/formstate"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/html"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/source"
)

const defaultRendererName = html.Name

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithLogger routes pipeline diagnostics through logger. The form state of
// every session logs through it too.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLoader injects the document loader.
func WithLoader(loader *source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects the OpenAPI parser.
func WithParser(parser *openapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves request themes through selector.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithFieldOptions applies opts to every bound field.
func WithFieldOptions(opts ...field.Option) Option {
	return func(o *Orchestrator) {
		o.fieldOptions = append(o.fieldOptions, opts...)
	}
}

// Orchestrator coordinates loading, binding and rendering. The zero
// configuration reads local files and registers the html and tui renderers.
type Orchestrator struct {
	logger          *slog.Logger
	loader          *source.Loader
	parser          *openapi.Parser
	registry        *render.Registry
	defaultRenderer string
	themes          ThemeSelector
	fieldOptions    []field.Option
	initialiseErr   error
}

// New constructs an Orchestrator.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form to bind and render.
type Request struct {
	// Source locates the document. Ignored when Document is set.
	Source source.Source
	// Document is a document already in memory.
	Document []byte
	// Kind forces the document format. Empty detects it.
	Kind DocumentKind
	// FormID selects the descriptor form or the OpenAPI operation id.
	FormID string
	// Renderer names the renderer. Empty uses the default.
	Renderer string
	// Values prefill fields on top of document defaults.
	Values map[string]string
	// Validate runs whole-form validation before rendering so errors show.
	Validate bool
	// RenderOptions are passed through to the renderer.
	RenderOptions render.RenderOptions
	// ThemeName and ThemeVariant are resolved through the theme selector.
	ThemeName    string
	ThemeVariant string
}

// Session is a bound form: the provider plus one field per config.
type Session struct {
	Definition Definition
	State      *formstate.Form
	Fields     []*field.Field
}

// Form snapshots the current views.
func (s *Session) Form() render.Form {
	form := render.NewForm(s.Definition.ID, s.Fields...)
	form.Title = s.Definition.Title
	form.Action = s.Definition.Action
	form.Method = s.Definition.Method
	form.Submit = s.Definition.Submit
	return form
}

// Field returns the bound field named name.
func (s *Session) Field(name string) (*field.Field, bool) {
	for _, f := range s.Fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Close releases every field subscription.
func (s *Session) Close() {
	for _, f := range s.Fields {
		f.Close()
	}
}

// Bind loads the document and binds its fields to a fresh form state. The
// caller closes the session.
func (o *Orchestrator) Bind(ctx context.Context, req Request) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FormID) == "" {
		return nil, errors.New("orchestrator: form id is required")
	}

	data, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	def, err := o.definition(ctx, data, req.Kind, req.FormID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: form %q: %w", req.FormID, err)
	}

	defaults := make(map[string]string, len(def.Defaults)+len(req.Values))
	for name, value := range def.Defaults {
		defaults[name] = value
	}
	for name, value := range req.Values {
		defaults[name] = value
	}

	state := formstate.New(formstate.WithLogger(o.logger), formstate.WithDefaults(defaults))
	session := &Session{Definition: def, State: state}
	for _, cfg := range def.Fields {
		f, err := field.New(state, cfg, o.fieldOptions...)
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("orchestrator: bind form %q: %w", def.ID, err)
		}
		session.Fields = append(session.Fields, f)
	}
	o.logger.Debug("orchestrator: form bound",
		slog.String("form", def.ID),
		slog.Int("fields", len(session.Fields)),
	)
	return session, nil
}

// Generate binds the requested form, renders it and releases the session.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	session, err := o.Bind(ctx, req)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if req.Validate {
		if err := session.State.Validate(); err != nil {
			verrs, ok := formstate.AsValidationErrors(err)
			if !ok {
				return nil, err
			}
			o.logger.Debug("orchestrator: form has validation errors",
				slog.String("form", session.Definition.ID),
				slog.Any("fields", verrs.Fields()),
			)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.themeConfig(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}
	options = methodOverride(session.Form().EffectiveMethod(options), options)

	output, err := renderer.Render(ctx, session.Form(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// methodOverride rewrites methods HTML forms cannot submit into POST plus a
// _method hidden field.
func methodOverride(method string, options render.RenderOptions) render.RenderOptions {
	if method == "GET" || method == "POST" {
		return options
	}
	options.Hidden = render.MergeHiddenFields(options.Hidden, render.Hidden("_method", method))
	options.Method = "POST"
	return options
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) ([]byte, error) {
	if len(req.Document) > 0 {
		return req.Document, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or document is required")
	}
	data, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return data, nil
}

func (o *Orchestrator) themeConfig(req Request) (*theme.RendererConfig, error) {
	if o.themes == nil {
		return nil, nil
	}
	selection, err := o.themes.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = source.NewLoader()
	}
	if o.parser == nil {
		o.parser = openapi.NewParser(openapi.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		htmlRenderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(htmlRenderer)
		tuiRenderer, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
			return
		}
		o.registry.MustRegister(tuiRenderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
