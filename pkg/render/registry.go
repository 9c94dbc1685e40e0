package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrRendererNotFound is returned by Get for unknown names.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	// ErrNoRenderers is returned by Resolve on an empty registry.
	ErrNoRenderers = errors.New("render: no renderers registered")
	// ErrInvalidRenderer is returned for nil or unnamed renderers.
	ErrInvalidRenderer = errors.New("render: renderer must be non-nil and named")
)

// Registry maps output names ("html", "tui") to renderers. Names are matched
// case-insensitively and remembered in registration order so Resolve has a
// stable last resort.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return ErrInvalidRenderer
	}
	key := normalizeName(renderer.Name())
	if key == "" {
		return ErrInvalidRenderer
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, key)
	}
	r.byName[key] = renderer
	r.order = append(r.order, key)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[normalizeName(name)]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
}

// Resolve picks the renderer for a request. An explicit name must exist.
// Without one the fallback name is tried, then the first renderer
// registered.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if normalizeName(name) != "" {
		return r.Get(name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[normalizeName(fallback)]; ok {
		return renderer, nil
	}
	if len(r.order) == 0 {
		return nil, ErrNoRenderers
	}
	return r.byName[r.order[0]], nil
}

// List returns the registered names sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := slices.Clone(r.order)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}
