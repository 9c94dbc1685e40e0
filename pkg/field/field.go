package field

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/goliatone/go-formfield/pkg/formstate"
	"github.com/goliatone/go-formfield/pkg/rules"
	"github.com/goliatone/go-formfield/pkg/strength"
)

var (
	// ErrNameRequired is returned when the config has no name.
	ErrNameRequired = errors.New("field: name is required")
	// ErrInvalidPattern is returned when the pattern does not compile.
	ErrInvalidPattern = errors.New("field: invalid pattern")
	// ErrProviderRequired is returned when New receives a nil provider.
	ErrProviderRequired = errors.New("field: provider is required")
)

// Provider is the form state the field registers with.
type Provider interface {
	Register(name string, constraints formstate.Constraints) (formstate.Registration, error)
	GetFieldState(name string) formstate.FieldState
	Watch(name string) string
	Subscribe(name string, fn func(value string)) (cancel func())
	Value(name string) (string, bool)
	IsDirty() bool
}

// Option customises a Field.
type Option func(*Field)

// WithRegistryOptions forwards options to the rule registry built for the
// field.
func WithRegistryOptions(opts ...rules.RegistryOption) Option {
	return func(f *Field) {
		f.registryOptions = append(f.registryOptions, opts...)
	}
}

// WithChangeHandlers appends handlers that run after the caller's OnChange.
func WithChangeHandlers(handlers ...ChangeHandler) Option {
	return func(f *Field) {
		f.extraHandlers = append(f.extraHandlers, handlers...)
	}
}

// Field is one bound input.
type Field struct {
	cfg      Config
	provider Provider

	registryOptions []rules.RegistryOption
	extraHandlers   []ChangeHandler

	set           rules.Set
	passwordField string
	registration  formstate.Registration
	onChange      handlerChain
	tracker       *strength.Tracker

	mu           sync.Mutex
	element      formstate.Element
	focused      bool
	showPassword bool
}

// New composes the rules in cfg, registers the field with provider and, when
// the rules include password, starts a strength tracker on the watched
// password field. The watched field is the one named by
// rules.WithPasswordField, so the tracker, the confirmPassword validator and
// its dependency all follow the same field.
func New(provider Provider, cfg Config, opts ...Option) (*Field, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	resolved := cfg.resolve()
	if resolved.Name == "" {
		return nil, ErrNameRequired
	}

	f := &Field{
		cfg:          resolved,
		provider:     provider,
		focused:      resolved.Focused,
		showPassword: resolved.ShowPassword,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}

	constraints, err := f.constraints()
	if err != nil {
		return nil, err
	}
	registration, err := provider.Register(resolved.Name, constraints)
	if err != nil {
		return nil, fmt.Errorf("field: register %q: %w", resolved.Name, err)
	}
	f.registration = registration

	handlers := append([]ChangeHandler{ChangeHandler(resolved.OnChange)}, f.extraHandlers...)
	f.onChange = newHandlerChain(registration.OnChange, handlers...)

	if resolved.HasRule(rules.Password) {
		f.tracker = strength.NewTracker(provider, strength.WithField(f.passwordField))
	}
	return f, nil
}

// MustNew panics when New fails.
func MustNew(provider Provider, cfg Config, opts ...Option) *Field {
	f, err := New(provider, cfg, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Field) constraints() (formstate.Constraints, error) {
	label := f.cfg.DisplayLabel()
	reg := rules.NewRegistry(f.provider, f.registryOptions...)
	f.passwordField = reg.PasswordField()
	set, err := rules.Compose(reg, f.cfg.Rules, label)
	if err != nil {
		return formstate.Constraints{}, fmt.Errorf("field: %q: %w", f.cfg.Name, err)
	}
	f.set = set

	out := formstate.Constraints{Validate: set}

	if f.cfg.Pattern != "" {
		compiled, err := regexp.Compile(f.cfg.Pattern)
		if err != nil {
			return formstate.Constraints{}, fmt.Errorf("%w %q for field %q: %v", ErrInvalidPattern, f.cfg.Pattern, f.cfg.Name, err)
		}
		message := f.cfg.CustomError
		if message == "" {
			message = fmt.Sprintf("The %s field doesn't satisfy the regex %s", label, f.cfg.Pattern)
		}
		out.Pattern = &formstate.PatternConstraint{Value: compiled, Message: message}
	}
	if f.cfg.Min != nil {
		out.Min = &formstate.NumericConstraint{
			Value:   *f.cfg.Min,
			Message: fmt.Sprintf("The %s field must be greater than or equal to %s", label, formatNumber(*f.cfg.Min)),
		}
	}
	if f.cfg.Max != nil {
		out.Max = &formstate.NumericConstraint{
			Value:   *f.cfg.Max,
			Message: fmt.Sprintf("The %s field must be less than or equal to %s", label, formatNumber(*f.cfg.Max)),
		}
	}
	if set.Has(rules.ConfirmPassword) {
		out.Deps = []string{f.passwordField}
	}
	return out, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Config returns the resolved configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Name returns the provider key of the field.
func (f *Field) Name() string {
	return f.cfg.Name
}

// PasswordField returns the field confirmPassword and the strength tracker
// follow.
func (f *Field) PasswordField() string {
	return f.passwordField
}

// Rules returns the composed rule set.
func (f *Field) Rules() rules.Set {
	return f.set
}

// Tracker returns the strength tracker, or nil when the field has no password
// rule.
func (f *Field) Tracker() *strength.Tracker {
	return f.tracker
}

// State returns the provider state of the field.
func (f *Field) State() formstate.FieldState {
	return f.provider.GetFieldState(f.cfg.Name)
}

// Value returns the current stored value.
func (f *Field) Value() string {
	return f.provider.Watch(f.cfg.Name)
}

// Mount attaches the input element. It is forwarded to the provider and
// focused once when the field requests initial focus.
func (f *Field) Mount(el formstate.Element) {
	f.mu.Lock()
	f.element = el
	focus := f.focused && el != nil
	f.mu.Unlock()

	if f.registration.Ref != nil {
		f.registration.Ref(el)
	}
	if focus {
		el.Focus()
	}
}

// SetFocused updates the focus request. A false to true transition focuses a
// mounted element again.
func (f *Field) SetFocused(focused bool) {
	f.mu.Lock()
	previous := f.focused
	f.focused = focused
	el := f.element
	f.mu.Unlock()

	if focused && !previous && el != nil {
		el.Focus()
	}
}

// Change forwards a value change through the handler chain.
func (f *Field) Change(value string) {
	f.onChange.run(value)
}

// Blur forwards the blur event to the provider.
func (f *Field) Blur() {
	if f.registration.OnBlur != nil {
		f.registration.OnBlur()
	}
}

// Focus records a focus event. The first one reveals the strength breakdown.
func (f *Field) Focus() {
	if f.tracker != nil {
		f.tracker.Focus()
	}
}

// TogglePasswordVisibility flips between masked and plain text rendering. The
// stored value is untouched.
func (f *Field) TogglePasswordVisibility() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showPassword = !f.showPassword
	return f.showPassword
}

// PasswordVisible reports whether a password input is rendered as text.
func (f *Field) PasswordVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showPassword
}

// InputType returns the type attribute to render.
func (f *Field) InputType() string {
	if f.PasswordVisible() {
		return defaultType
	}
	return f.cfg.Type
}

// Close releases the strength subscription.
func (f *Field) Close() {
	if f.tracker != nil {
		f.tracker.Close()
	}
}
