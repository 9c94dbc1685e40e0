package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/render"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	"github.com/goliatone/go-formfield/pkg/render/template/pongo"
)

const (
	// Name is the registry key of the renderer.
	Name = "html"

	formTemplate = "templates/form.tmpl"

	// StylesheetAsset is the theme asset key linked from the form when present.
	StylesheetAsset = "formfield.stylesheet"

	defaultFormClass   = "formfield-form flex flex-col gap-6"
	defaultSubmitLabel = "Submit"
)

var attrNamePattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:.-]*$`)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	formClass        string
	submitLabel      string
}

// WithTemplatesFS replaces the embedded template bundle. The bundle must
// provide templates/form.tmpl and templates/field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads the template bundle from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormClass overrides the class attribute of the form element.
func WithFormClass(class string) Option {
	return func(cfg *config) {
		cfg.formClass = strings.TrimSpace(class)
	}
}

// WithSubmitLabel sets the default submit caption. Form.Submit wins when set.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer renders render.Form values into HTML.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	formClass   string
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer, defaulting to the embedded templates and the pongo
// engine.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		formClass:   defaultFormClass,
		submitLabel: defaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{
		templates:   renderer,
		formClass:   cfg.formClass,
		submitLabel: cfg.submitLabel,
	}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	prepared := form
	prepared.Fields = make([]field.View, 0, len(form.Fields))
	for _, view := range form.Fields {
		prepared.Fields = append(prepared.Fields, prepareView(view, options.Theme))
	}

	submit := strings.TrimSpace(form.Submit)
	if submit == "" {
		submit = r.submitLabel
	}

	payload := map[string]any{
		"form":       prepared,
		"formClass":  r.formClass,
		"method":     form.EffectiveMethod(options),
		"hidden":     render.SortedHidden(options.Hidden),
		"formErrors": options.FormErrors,
		"submit":     submit,
		"cssVars":    cssVarsStyle(options.Theme),
		"stylesheet": themeAsset(options.Theme, StylesheetAsset),
	}

	result, err := r.templates.RenderTemplate(formTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// prepareView sanitises markup carried by the view and applies theme token
// overrides to the input classes.
func prepareView(view field.View, cfg *theme.RendererConfig) field.View {
	out := view
	out.Left = SanitizeDecoration(view.Left)
	out.Right = SanitizeDecoration(view.Right)
	out.Message.Text = SanitizeText(view.Message.Text)

	if themeClass, ok := themeToken(cfg, view.Theme, view.Invalid); ok {
		out.ThemeClass = themeClass
		out.InputClass = field.ComposeInputClass(themeClass, view.ExtraClass)
	}

	if len(view.Attrs) > 0 {
		out.Attrs = make([]field.Attr, 0, len(view.Attrs))
		for _, attr := range view.Attrs {
			if attrNamePattern.MatchString(attr.Key) && !strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				out.Attrs = append(out.Attrs, attr)
			}
		}
	}
	return out
}

// themeToken looks up "input.<theme>" or, for invalid fields,
// "input.<theme>.error" first.
func themeToken(cfg *theme.RendererConfig, name string, invalid bool) (string, bool) {
	if cfg == nil || len(cfg.Tokens) == 0 || name == "" {
		return "", false
	}
	key := "input." + name
	if invalid {
		if value, ok := cfg.Tokens[key+".error"]; ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	value, ok := cfg.Tokens[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func themeAsset(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.NewReplacer("<", "", ">", "", ";", "").Replace(cfg.CSSVars[key]))
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}
