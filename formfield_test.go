package formfield

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/rules"
	"github.com/goliatone/go-formfield/pkg/source"
)

const loginDescriptor = `{
  "forms": {
    "login": {
      "title": "Sign in",
      "fields": [
        {"name": "email", "label": "Email", "type": "email", "rules": ["required", "email"]},
        {"name": "password", "label": "Password", "type": "password", "rules": ["required"]}
      ]
    }
  }
}`

func TestGenerateHTMLFromDocument(t *testing.T) {
	out, err := GenerateHTMLFromDocument(context.Background(), []byte(loginDescriptor), "login")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`id="login"`, `name="email"`, `type="password"`, `data-toggle="password"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestGenerateHTMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.json")
	if err := os.WriteFile(path, []byte(loginDescriptor), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := GenerateHTML(context.Background(), source.FromFile(path), "login")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Sign in") {
		t.Fatalf("expected title in output:\n%s", out)
	}
}

func TestNewFieldBindsToForm(t *testing.T) {
	form := NewForm()
	f, err := NewField(form, Config{Name: "username", Label: "Username", Rules: []rules.Name{rules.Required}})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	defer f.Close()

	f.Change("")
	if got := f.Message().Text; got != "The Username field is required" {
		t.Fatalf("unexpected message %q", got)
	}
	f.Change("jane")
	if !f.Message().Empty() {
		t.Fatalf("expected no message, got %+v", f.Message())
	}
}
