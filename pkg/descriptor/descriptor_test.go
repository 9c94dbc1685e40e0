package descriptor

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/rules"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

func floatPtr(v float64) *float64 { return &v }

func TestLoadFS(t *testing.T) {
	store, err := LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"otp", "signup"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	signup, err := store.Form("signup")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	want := Form{
		ID:       "signup",
		Source:   "forms.yaml",
		Title:    "Create account",
		Action:   "/signup",
		Method:   "POST",
		Submit:   "Sign up",
		Defaults: map[string]string{"username": "jane"},
		Fields: []field.Config{
			{
				Name:        "username",
				Label:       "Username",
				Placeholder: "jane_doe",
				Rules:       []rules.Name{rules.Required, rules.NoSpaces},
				Hint:        "Letters and digits only",
			},
			{Name: "password", Label: "Password", Type: "password", Rules: []rules.Name{rules.Password}},
			{Name: "confirmPassword", Label: "Confirm password", Type: "password", Rules: []rules.Name{rules.ConfirmPassword}},
			{
				Name:     "age",
				Label:    "Age",
				Type:     "number",
				Min:      floatPtr(18),
				Max:      floatPtr(99),
				Optional: true,
				Attrs:    map[string]string{"inputmode": "numeric"},
			},
		},
	}
	if diff := cmp.Diff(want, signup); diff != "" {
		t.Fatalf("signup mismatch (-want +got):\n%s", diff)
	}

	otp, err := store.Form("otp")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if otp.Method != "" || len(otp.Fields) != 1 || otp.Fields[0].Pattern != "^[0-9]+$" {
		t.Fatalf("unexpected otp form: %+v", otp)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{name: "empty", doc: "   "},
		{name: "garbage", doc: "forms: [unclosed", target: ErrInvalidDocument},
		{name: "unknown rule", doc: "forms:\n  a:\n    fields:\n      - name: x\n        rules: [luhn]\n", target: rules.ErrUnknownRule},
		{name: "missing name", doc: "forms:\n  a:\n    fields:\n      - label: X\n", target: field.ErrNameRequired},
		{name: "duplicate field", doc: "forms:\n  a:\n    fields:\n      - name: x\n      - name: x\n"},
		{name: "bad method", doc: "forms:\n  a:\n    method: delete\n    fields: []\n"},
		{name: "unknown default", doc: "forms:\n  a:\n    defaults: {y: '1'}\n    fields:\n      - name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "inline.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadFSDuplicateForm(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  signup:\n    fields: []\n")},
		"b.json": {Data: []byte(`{"forms":{"signup":{"fields":[]}}}`)},
	}
	if _, err := LoadFS(files); err == nil {
		t.Fatalf("expected duplicate form error")
	}
}

func TestStoreFormNotFound(t *testing.T) {
	store, err := Parse([]byte(`{"forms":{"a":{"fields":[{"name":"x"}]}}}`), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one form, got %d", store.Len())
	}
	if _, err := store.Form("b"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestSignupGolden(t *testing.T) {
	store, err := LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := store.Form("signup")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	const golden = "testdata/signup.golden.json"
	encoded, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, golden, append(encoded, '\n')) {
		return
	}

	var want Form
	if err := json.Unmarshal(testsupport.MustReadGolden(t, golden), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}
