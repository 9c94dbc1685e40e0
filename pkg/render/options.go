package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data that does not belong to the field
// views themselves.
type RenderOptions struct {
	// Method overrides the method declared on the form.
	Method string
	// Hidden is emitted as hidden inputs (CSRF tokens, versions).
	Hidden map[string]string
	// FormErrors are displayed above the fields.
	FormErrors []string
	// Theme carries the resolved theme tokens, partials and asset resolver.
	Theme *theme.RendererConfig
}

// HiddenField is a single hidden input.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden builds a HiddenField from any value.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken builds the hidden field carrying a CSRF token.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Later fields
// win and blank names are skipped.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, hidden := range fields {
		if hidden.Name == "" {
			continue
		}
		out[hidden.Name] = hidden.Value
	}
	return out
}

// SortedHidden returns hidden fields ordered by name.
func SortedHidden(hidden map[string]string) []HiddenField {
	if len(hidden) == 0 {
		return nil
	}
	names := make([]string, 0, len(hidden))
	for name := range hidden {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: hidden[name]})
	}
	return out
}
