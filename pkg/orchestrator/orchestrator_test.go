package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/descriptor"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/source"
)

const signupDescriptor = `
forms:
  signup:
    title: Create account
    action: /signup
    defaults:
      username: jane
    fields:
      - name: username
        label: Username
        rules: [required, noSpaces]
      - name: email
        label: Email
        rules: [required, email]
`

const profileOpenAPI = `
openapi: 3.0.3
info: {title: Profiles, version: 1.0.0}
paths:
  /profile:
    put:
      operationId: updateProfile
      summary: Update profile
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [nickname]
              properties:
                nickname: {type: string, title: Nickname}
      responses:
        '204': {description: updated}
`

type captureRenderer struct {
	form    render.Form
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	r.form = form
	r.options = opts
	return []byte(form.ID), nil
}

func newCaptureOrchestrator(t *testing.T, opts ...Option) (*Orchestrator, *captureRenderer) {
	t.Helper()
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []Option{WithRegistry(registry), WithDefaultRenderer(renderer.Name())}
	return New(append(base, opts...)...), renderer
}

func TestGenerateDescriptor(t *testing.T) {
	orch, renderer := newCaptureOrchestrator(t)
	out, err := orch.Generate(context.Background(), Request{
		Document: []byte(signupDescriptor),
		FormID:   "signup",
		Values:   map[string]string{"email": "jane@example.com"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "signup" {
		t.Fatalf("unexpected output %q", out)
	}
	form := renderer.form
	if form.Title != "Create account" || form.Action != "/signup" {
		t.Fatalf("unexpected form metadata: %+v", form)
	}
	if len(form.Fields) != 2 || len(form.Bindings) != 2 {
		t.Fatalf("expected two fields, got %d", len(form.Fields))
	}
	if form.Fields[0].Value != "jane" || form.Fields[1].Value != "jane@example.com" {
		t.Fatalf("defaults not applied: %q %q", form.Fields[0].Value, form.Fields[1].Value)
	}
	if form.Fields[0].Invalid {
		t.Fatalf("fields must not be invalid before validation")
	}
}

func TestGenerateValidateShowsErrors(t *testing.T) {
	orch, renderer := newCaptureOrchestrator(t)
	_, err := orch.Generate(context.Background(), Request{
		Document: []byte(signupDescriptor),
		FormID:   "signup",
		Validate: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	email, ok := renderer.form.Field("email")
	if !ok {
		t.Fatalf("email view missing")
	}
	if !email.Invalid || email.Message.Kind != field.MessageError {
		t.Fatalf("expected email error, got %+v", email.Message)
	}
	if email.Message.Text != "The Email field is required" {
		t.Fatalf("unexpected message %q", email.Message.Text)
	}
}

func TestGenerateOpenAPIMethodOverride(t *testing.T) {
	orch, renderer := newCaptureOrchestrator(t)
	_, err := orch.Generate(context.Background(), Request{
		Document: []byte(profileOpenAPI),
		FormID:   "updateProfile",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.form.Action != "/profile" || renderer.form.Title != "Update profile" {
		t.Fatalf("unexpected form metadata: %+v", renderer.form)
	}
	if renderer.options.Method != "POST" || renderer.options.Hidden["_method"] != "PUT" {
		t.Fatalf("expected method override, got %q %v", renderer.options.Method, renderer.options.Hidden)
	}
	view, ok := renderer.form.Field("nickname")
	if !ok || view.Label != "Nickname" {
		t.Fatalf("unexpected nickname view: %+v", view)
	}
}

func TestGenerateFromSource(t *testing.T) {
	files := fstest.MapFS{"forms/signup.yaml": {Data: []byte(signupDescriptor)}}
	orch, renderer := newCaptureOrchestrator(t, WithLoader(source.NewLoader(source.WithFileSystem(files))))
	if _, err := orch.Generate(context.Background(), Request{
		Source: source.FromFS("forms/signup.yaml"),
		FormID: "signup",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.form.ID != "signup" {
		t.Fatalf("unexpected form id %q", renderer.form.ID)
	}
}

func TestGenerateErrors(t *testing.T) {
	orch, _ := newCaptureOrchestrator(t)
	ctx := context.Background()

	if _, err := orch.Generate(ctx, Request{Document: []byte(signupDescriptor)}); err == nil {
		t.Fatalf("expected error for missing form id")
	}
	if _, err := orch.Generate(ctx, Request{FormID: "signup"}); err == nil {
		t.Fatalf("expected error for missing document")
	}
	if _, err := orch.Generate(ctx, Request{Document: []byte(signupDescriptor), FormID: "login"}); !errors.Is(err, descriptor.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := orch.Generate(ctx, Request{Document: []byte("title: nothing"), FormID: "x"}); !errors.Is(err, ErrUnknownDocument) {
		t.Fatalf("expected ErrUnknownDocument, got %v", err)
	}
	if _, err := orch.Generate(ctx, Request{Document: []byte(signupDescriptor), FormID: "signup", Renderer: "pdf"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestBindSession(t *testing.T) {
	orch := New()
	session, err := orch.Bind(context.Background(), Request{Document: []byte(signupDescriptor), FormID: "signup"})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer session.Close()

	username, ok := session.Field("username")
	if !ok {
		t.Fatalf("username field missing")
	}
	username.Change("jane doe")
	if got := username.Message().Text; got != "The Username field is not allowed to contain spaces" {
		t.Fatalf("unexpected message %q", got)
	}
	if !session.State.IsDirty() {
		t.Fatalf("expected dirty state after change")
	}
}

func TestGenerateDefaultHTMLRenderer(t *testing.T) {
	out, err := New().Generate(context.Background(), Request{
		Document: []byte(signupDescriptor),
		FormID:   "signup",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`id="signup"`, `name="username"`, `value="jane"`, "Create account"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":         "#123456",
			"input.outline": "border-2 border-brand",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"formfield.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Files: map[string]string{"formfield.stylesheet": "theme.dark.css"},
				},
			},
		},
	}
}

func TestGenerateWithCatalog(t *testing.T) {
	catalog, err := NewCatalog("acme", "dark", acmeManifest())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	orch, renderer := newCaptureOrchestrator(t, WithThemeSelector(catalog))
	if _, err := orch.Generate(context.Background(), Request{Document: []byte(signupDescriptor), FormID: "signup"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not merged: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--input-outline"] != "border-2 border-brand" {
		t.Fatalf("expected dotted token as css var, got %v", cfg.CSSVars)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("partials not propagated: %v", cfg.Partials)
	}
	if got := cfg.AssetURL("formfield.stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestCatalogSelect(t *testing.T) {
	catalog, err := NewCatalog("acme", "", acmeManifest())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	selection, err := catalog.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "" {
		t.Fatalf("unexpected selection %+v", selection)
	}
	if _, err := catalog.Select("other", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := catalog.Select("acme", "neon"); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if err := catalog.Register(acmeManifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

type stubThemeSelector struct {
	calls [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return &theme.Selection{Theme: name, Variant: variant}, nil
}

func TestGeneratePassesThemeRequest(t *testing.T) {
	selector := &stubThemeSelector{}
	orch, renderer := newCaptureOrchestrator(t, WithThemeSelector(selector))
	_, err := orch.Generate(context.Background(), Request{
		Document:     []byte(signupDescriptor),
		FormID:       "signup",
		ThemeName:    "custom",
		ThemeVariant: "compact",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != [2]string{"custom", "compact"} {
		t.Fatalf("unexpected selector calls %v", selector.calls)
	}
	if renderer.options.Theme == nil || renderer.options.Theme.Theme != "custom" {
		t.Fatalf("expected theme config for custom")
	}
	if renderer.options.Theme.AssetURL("anything") != "" {
		t.Fatalf("expected empty asset url without manifest")
	}
}
