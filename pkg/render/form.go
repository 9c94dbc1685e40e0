package render

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Form groups the views of every field bound to one form state.
type Form struct {
	ID     string       `json:"id"`
	Title  string       `json:"title,omitempty"`
	Action string       `json:"action,omitempty"`
	Method string       `json:"method,omitempty"`
	Submit string       `json:"submit,omitempty"`
	Fields []field.View `json:"fields"`

	// Bindings holds the live fields behind Fields. Interactive renderers
	// drive them; static renderers only read the views.
	Bindings []*field.Field `json:"-"`
}

// NewForm snapshots fields in the given order.
func NewForm(id string, fields ...*field.Field) Form {
	form := Form{ID: strings.TrimSpace(id)}
	for _, f := range fields {
		if f == nil {
			continue
		}
		form.Fields = append(form.Fields, f.View())
		form.Bindings = append(form.Bindings, f)
	}
	return form
}

// Field returns the view for name.
func (f Form) Field(name string) (field.View, bool) {
	for _, view := range f.Fields {
		if view.Name == name {
			return view, true
		}
	}
	return field.View{}, false
}

// EffectiveMethod returns the method to render, upper-cased, defaulting to
// POST.
func (f Form) EffectiveMethod(options RenderOptions) string {
	method := strings.TrimSpace(options.Method)
	if method == "" {
		method = strings.TrimSpace(f.Method)
	}
	if method == "" {
		return "POST"
	}
	return strings.ToUpper(method)
}
