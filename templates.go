package formfield

import (
	"io/fs"

	"github.com/goliatone/go-formfield/pkg/renderers/html"
)

// EmbeddedTemplates exposes the html renderer templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
