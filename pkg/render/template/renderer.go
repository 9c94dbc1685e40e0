package template

import (
	"io"
)

// TemplateRenderer is the engine contract. Render accepts either a template
// name or inline template content. Every method writes the rendered output to
// out in addition to returning it.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
