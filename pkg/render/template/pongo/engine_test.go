package pongo_test

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formfield/pkg/render/template/pongo"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

var filterSeq atomic.Int64

func newEngine(t *testing.T, opts ...pongo.Option) *pongo.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"classes.tmpl":    {Data: []byte(`<input class="{{ base|classes:extra }}">`)},
		"view.tmpl":       {Data: []byte("{{ field.name }}:{{ field.inputType }}")},
	}
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}
}

func TestEngine_RenderDispatchesInlineContent(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "1", "b": "two"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-two" {
		t.Fatalf("got %q", got)
	}
	if got, err := engine.Render("hello.tmpl", map[string]any{"name": "Grace"}); err != nil || got != "Hello Grace!" {
		t.Fatalf("got %q err %v", got, err)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	type view struct {
		Name      string `json:"name"`
		InputType string `json:"inputType"`
	}
	got, err := engine.RenderTemplate("view", map[string]any{"field": view{Name: "password", InputType: "text"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "password:text" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobalData(map[string]any{"settings": map[string]any{"env": "dev"}}))
	if got, _ := engine.RenderTemplate("use-global", nil); got != "env=dev" {
		t.Fatalf("got %q", got)
	}
	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	if got, _ := engine.RenderString("env={{ settings.env }}", nil); got != "env=staging" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_ClassesFilter(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("classes", map[string]any{"base": " a  b ", "extra": "c"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<input class="a b c">` {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	name := fmt.Sprintf("shout%d", filterSeq.Add(1))
	if err := engine.RegisterFilter(name, func(input any, _ any) (any, error) {
		return strings.ToUpper(fmt.Sprint(input)) + "!", nil
	}); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter(name, func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	got, err := engine.RenderString("{{ name|"+name+" }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected load error")
	}
}
