package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	if err := os.WriteFile(path, []byte("forms: {}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := NewLoader().Load(context.Background(), FromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "forms: {}\n" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestLoaderFS(t *testing.T) {
	files := fstest.MapFS{"specs/api.json": {Data: []byte(`{"openapi":"3.0.0"}`)}}

	if _, err := NewLoader().Load(context.Background(), FromFS("specs/api.json")); !errors.Is(err, ErrNoFileSystem) {
		t.Fatalf("expected ErrNoFileSystem, got %v", err)
	}
	data, err := NewLoader(WithFileSystem(files)).Load(context.Background(), FromFS("specs/api.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"openapi":"3.0.0"}` {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("forms: {}"))
	}))
	defer server.Close()

	src := MustFromURL(server.URL + "/forms.yaml")
	if _, err := NewLoader().Load(context.Background(), src); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	loader := NewLoader(WithHTTPClient(server.Client()))
	data, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "forms: {}" {
		t.Fatalf("unexpected data %q", data)
	}
	if _, err := loader.Load(context.Background(), MustFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{in: "forms.yaml", kind: KindFile},
		{in: "https://example.com/openapi.json", kind: KindURL},
		{in: "HTTP://example.com/forms.yaml", kind: KindURL},
	}
	for _, tt := range tests {
		src, err := Detect(tt.in)
		if err != nil {
			t.Fatalf("detect %q: %v", tt.in, err)
		}
		if src.Kind() != tt.kind {
			t.Fatalf("detect %q: got %s want %s", tt.in, src.Kind(), tt.kind)
		}
	}
	if _, err := Detect("  "); !errors.Is(err, ErrEmptyLocation) {
		t.Fatalf("expected ErrEmptyLocation, got %v", err)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader().Load(ctx, FromFile("missing.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
