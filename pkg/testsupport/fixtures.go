package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/formstate"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// NewFields binds every config to a fresh form state and fails the test on
// configuration errors. Fields are closed on cleanup.
func NewFields(t *testing.T, configs ...field.Config) (*formstate.Form, []*field.Field) {
	t.Helper()

	form := formstate.New()
	fields := make([]*field.Field, 0, len(configs))
	for _, cfg := range configs {
		f, err := field.New(form, cfg)
		if err != nil {
			t.Fatalf("new field %q: %v", cfg.Name, err)
		}
		t.Cleanup(f.Close)
		fields = append(fields, f)
	}
	return form, fields
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render with a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
