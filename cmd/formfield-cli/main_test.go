package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

const descriptor = `forms:
  signup:
    title: Create account
    fields:
      - name: username
        label: Username
        rules: [required, noSpaces]
`

func writeDescriptor(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forms.yaml")
	if err := os.WriteFile(path, []byte(descriptor), 0o600); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return path
}

func writeEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("FORMFIELD_LOG_LEVEL=error\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	return path
}

type scriptedDriver struct {
	answers []string
}

func (d *scriptedDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	next := d.answers[0]
	d.answers = d.answers[1:]
	return next, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestRunHTMLToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-env", writeEnv(t),
		"-source", writeDescriptor(t),
		"-form", "signup",
		"-renderer", "html",
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), `name="username"`) {
		t.Fatalf("expected username input in output:\n%s", stdout.String())
	}
}

func TestRunTUIToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "values.json")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-env", writeEnv(t),
		"-source", writeDescriptor(t),
		"-form", "signup",
		"-renderer", "tui",
		"-output", output,
	}, &stdout, &stderr, &scriptedDriver{answers: []string{"jane doe", "jane"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != `{"username":"jane"}` {
		t.Fatalf("unexpected output %s", data)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-env", writeEnv(t), "-form", "signup"}, &stdout, &stderr, nil); err == nil {
		t.Fatalf("expected error without source")
	}
	if err := run(context.Background(), []string{"-env", writeEnv(t), "-source", writeDescriptor(t), "-form", "login"}, &stdout, &stderr, nil); err == nil {
		t.Fatalf("expected error for unknown form")
	}
}
