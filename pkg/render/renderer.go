package render

import (
	"context"
)

// Renderer turns a Form into a byte representation (HTML, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
