package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

var (
	// ErrEmptyLocation is returned by Detect for blank input.
	ErrEmptyLocation = errors.New("source: location is required")
	// ErrNilSource is returned when Load receives no source.
	ErrNilSource = errors.New("source: source is nil")
	// ErrHTTPDisabled is returned for URL sources when no HTTP client is set.
	ErrHTTPDisabled = errors.New("source: http support disabled")
	// ErrNoFileSystem is returned for fs sources when no fs.FS is set.
	ErrNoFileSystem = errors.New("source: filesystem is not configured")
)

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem serves fs sources from files.
func WithFileSystem(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithHTTPFallback enables URL sources with a default client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{Timeout: timeout}
		}
	}
}

// Loader reads documents. HTTP is disabled unless a client is configured.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

// NewLoader constructs a Loader.
func NewLoader(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case KindFile:
		data, err = os.ReadFile(src.Location())
	case KindFS:
		if l.fs == nil {
			return nil, ErrNoFileSystem
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case KindURL:
		data, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("source: unsupported kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("source: load %s: %w", src.Location(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("source: %s is empty", src.Location())
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, raw string) ([]byte, error) {
	if l.http == nil {
		return nil, ErrHTTPDisabled
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
