package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/render"
)

// Name is the registry key of the renderer.
const Name = "tui"

// Renderer prompts for every bound field and serializes the collected values.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a renderer with the survey driver and JSON output.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for each field in order. Invalid answers print the field
// message and prompt again.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if len(form.Bindings) == 0 {
		return nil, ErrNoBindings
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(form.Bindings)+len(opts.Hidden))
	for name, value := range opts.Hidden {
		values[name] = value
	}
	for _, f := range form.Bindings {
		if f == nil {
			continue
		}
		if err := r.promptField(ctx, f); err != nil {
			return nil, err
		}
		values[f.Name()] = f.Value()
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, f *field.Field) error {
	cfg := f.Config()
	if cfg.Disabled {
		return nil
	}

	label := cfg.Label
	if label == "" {
		label = cfg.Name
	}
	if cfg.Optional {
		label += " (optional)"
	}
	secret := cfg.Type == "password"

	f.Focus()
	defer f.Blur()

	for attempt := 1; ; attempt++ {
		prompt := InputConfig{Message: label, Help: cfg.Hint}
		var (
			answer string
			err    error
		)
		if secret {
			answer, err = r.driver.Password(ctx, prompt)
		} else {
			prompt.Default = f.Value()
			answer, err = r.driver.Input(ctx, prompt)
		}
		if err != nil {
			return err
		}

		f.Change(answer)
		lines := r.problems(f)
		if len(lines) == 0 {
			if msg := f.Message(); msg.Kind == field.MessageSuccess {
				return r.driver.Info(ctx, r.theme.SuccessPrefix+msg.Text)
			}
			return nil
		}
		for _, line := range lines {
			if err := r.driver.Info(ctx, line); err != nil {
				return err
			}
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, cfg.Name)
		}
	}
}

// problems returns the lines to print for an invalid field, or nil when the
// provider holds no error.
func (r *Renderer) problems(f *field.Field) []string {
	state := f.State()
	if !state.Invalid() {
		return nil
	}
	msg := f.Message()
	switch msg.Kind {
	case field.MessageStrength:
		lines := make([]string, 0, len(msg.Strength))
		for _, item := range msg.Strength {
			mark := r.theme.UnmetMark
			if item.Met {
				mark = r.theme.MetMark
			}
			lines = append(lines, fmt.Sprintf("%s Must contain %s", mark, item.Label))
		}
		return lines
	case field.MessageError:
		return []string{r.theme.ErrorPrefix + msg.Text}
	default:
		return []string{r.theme.ErrorPrefix + state.Error.Message}
	}
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s=%s\n", key, values[key])
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}
