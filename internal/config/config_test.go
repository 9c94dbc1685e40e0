package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Renderer != "html" || cfg.TUIFormat != "json" || cfg.MaxAttempts != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formfield.env")
	content := "FORMFIELD_SOURCE=forms.yaml\nFORMFIELD_FORM=signup\nFORMFIELD_RENDERER=tui\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("FORMFIELD_RENDERER", "html")
	t.Setenv("FORMFIELD_HTTP_TIMEOUT", "2s")
	t.Cleanup(func() {
		_ = os.Unsetenv("FORMFIELD_SOURCE")
		_ = os.Unsetenv("FORMFIELD_FORM")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source != "forms.yaml" || cfg.Form != "signup" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Renderer != "html" {
		t.Fatalf("environment must win over file, got %q", cfg.Renderer)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
	t.Setenv("FORMFIELD_MAX_ATTEMPTS", "many")
	chdir(t, t.TempDir())
	if _, err := Load(); !errors.Is(err, ErrParsingConfig) {
		t.Fatalf("expected ErrParsingConfig, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{LogLevel: "debug", LogFormat: "json"}.Logger(&buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Debug("hello", "form", "signup")
	if !strings.Contains(buf.String(), `"form":"signup"`) {
		t.Fatalf("expected json output, got %s", buf.String())
	}

	if _, err := (Config{LogLevel: "info", LogFormat: "xml"}).Logger(&buf); !errors.Is(err, ErrInvalidLogFormat) {
		t.Fatalf("expected ErrInvalidLogFormat, got %v", err)
	}
	if _, err := (Config{LogLevel: "loud"}).Logger(&buf); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
