package formstate

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Option configures a Form.
type Option func(*Form)

// WithLogger routes debug output through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDefaults seeds initial values. Defaults never mark the form dirty.
func WithDefaults(values map[string]string) Option {
	return func(f *Form) {
		for name, value := range values {
			if key := strings.TrimSpace(name); key != "" {
				f.defaults[key] = value
			}
		}
	}
}

// FieldState is a snapshot of one field.
type FieldState struct {
	Value   string       `json:"value"`
	Error   *FieldError  `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Dirty   bool         `json:"dirty"`
	Touched bool         `json:"touched"`
}

// Invalid reports whether the field currently has an error.
func (s FieldState) Invalid() bool {
	return s.Error != nil
}

type entry struct {
	constraints Constraints
	element     Element
}

type listener struct {
	id int
	fn func(value string)
}

// Form is the in-memory provider for one form instance.
type Form struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	defaults  map[string]string
	values    map[string]string
	fields    map[string]*entry
	order     []string
	errors    map[string][]FieldError
	dirty     map[string]bool
	touched   map[string]bool
	listeners map[string][]listener
	nextID    int
}

// New constructs an empty Form.
func New(options ...Option) *Form {
	f := &Form{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults:  make(map[string]string),
		values:    make(map[string]string),
		fields:    make(map[string]*entry),
		errors:    make(map[string][]FieldError),
		dirty:     make(map[string]bool),
		touched:   make(map[string]bool),
		listeners: make(map[string][]listener),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	for name, value := range f.defaults {
		f.values[name] = value
	}
	return f
}

// Register adds a field and returns the handlers the binder must forward
// events to.
func (f *Form) Register(name string, constraints Constraints) (Registration, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Registration{}, ErrNameRequired
	}

	f.mu.Lock()
	if _, exists := f.fields[name]; exists {
		f.mu.Unlock()
		return Registration{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	constraints.Deps = append([]string(nil), constraints.Deps...)
	f.fields[name] = &entry{constraints: constraints}
	f.order = append(f.order, name)
	if _, ok := f.values[name]; !ok {
		f.values[name] = ""
	}
	f.mu.Unlock()

	f.logger.Debug("formstate: field registered",
		slog.String("field", name),
		slog.Int("rules", constraints.Validate.Len()),
		slog.Bool("pattern", constraints.Pattern != nil),
	)

	return Registration{
		Name:     name,
		OnChange: func(value string) { f.change(name, value) },
		OnBlur:   func() { f.blur(name) },
		Ref:      func(el Element) { f.setRef(name, el) },
	}, nil
}

// Unregister removes a field together with its value and errors.
func (f *Form) Unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.fields[name]; !ok {
		return
	}
	delete(f.fields, name)
	delete(f.values, name)
	delete(f.errors, name)
	delete(f.dirty, name)
	delete(f.touched, name)
	for i, candidate := range f.order {
		if candidate == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Fields returns registered field names in registration order.
func (f *Form) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.order...)
}

// GetFieldState returns a snapshot of the named field.
func (f *Form) GetFieldState(name string) FieldState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	state := FieldState{
		Value:   f.values[name],
		Dirty:   f.dirty[name],
		Touched: f.touched[name],
	}
	if errs := f.errors[name]; len(errs) > 0 {
		state.Errors = append([]FieldError(nil), errs...)
		first := errs[0]
		state.Error = &first
	}
	return state
}

// Watch returns the current value of name ("" when unknown).
func (f *Form) Watch(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name]
}

// Value implements rules.FieldValueReader. ok is false when the form has no
// such field and no default for it.
func (f *Form) Value(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.values[name]
	return value, ok
}

// Values returns a copy of every value.
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.values))
	for name, value := range f.values {
		out[name] = value
	}
	return out
}

// IsDirty reports whether any field differs from its default.
func (f *Form) IsDirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, dirty := range f.dirty {
		if dirty {
			return true
		}
	}
	return false
}

// Subscribe registers fn for changes of name. Listeners run synchronously
// after validation, in subscription order. Subscribing to a field that is not
// registered yet is allowed.
func (f *Form) Subscribe(name string, fn func(value string)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.listeners[name] = append(f.listeners[name], listener{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			current := f.listeners[name]
			for i, l := range current {
				if l.id == id {
					f.listeners[name] = append(current[:i:i], current[i+1:]...)
					break
				}
			}
		})
	}
}

// SetValue updates a registered field as if the user had typed value.
func (f *Form) SetValue(name, value string) error {
	f.mu.RLock()
	_, ok := f.fields[name]
	f.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.change(name, value)
	return nil
}

// SetFocus focuses the element bound to name. It reports false when no
// element is attached.
func (f *Form) SetFocus(name string) bool {
	f.mu.RLock()
	var el Element
	if e, ok := f.fields[name]; ok {
		el = e.element
	}
	f.mu.RUnlock()
	if el == nil {
		return false
	}
	el.Focus()
	return true
}

// Trigger re-validates name and reports whether it is valid.
func (f *Form) Trigger(name string) bool {
	return len(f.validateField(name)) == 0
}

// Validate runs every field, marks all fields touched and returns
// ValidationErrors when any field fails.
func (f *Form) Validate() error {
	verrs := ValidationErrors{}
	for _, name := range f.Fields() {
		f.mu.Lock()
		f.touched[name] = true
		f.mu.Unlock()
		for _, fe := range f.validateField(name) {
			verrs[name] = append(verrs[name], fe.Message)
		}
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// HandleSubmit validates the form and, when valid, calls fn with a copy of
// the values.
func (f *Form) HandleSubmit(fn func(values map[string]string) error) error {
	if err := f.Validate(); err != nil {
		f.logger.Debug("formstate: submit blocked", slog.String("error", err.Error()))
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(f.Values())
}

// Reset restores defaults and clears errors and flags. Watchers are notified
// for every registered field.
func (f *Form) Reset() {
	f.mu.Lock()
	names := append([]string(nil), f.order...)
	for _, name := range names {
		f.values[name] = f.defaults[name]
	}
	f.errors = make(map[string][]FieldError)
	f.dirty = make(map[string]bool)
	f.touched = make(map[string]bool)
	f.mu.Unlock()

	for _, name := range names {
		f.notify(name, f.Watch(name))
	}
}

func (f *Form) change(name, value string) {
	f.mu.Lock()
	if _, ok := f.fields[name]; !ok {
		f.mu.Unlock()
		f.logger.Debug("formstate: change for unregistered field", slog.String("field", name))
		return
	}
	f.values[name] = value
	f.dirty[name] = value != f.defaults[name]
	f.mu.Unlock()

	f.validateField(name)
	for _, dep := range f.dependants(name) {
		f.validateField(dep)
	}
	f.notify(name, value)
}

func (f *Form) blur(name string) {
	f.mu.Lock()
	if _, ok := f.fields[name]; !ok {
		f.mu.Unlock()
		return
	}
	f.touched[name] = true
	f.mu.Unlock()
	f.validateField(name)
}

func (f *Form) setRef(name string, el Element) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.fields[name]; ok {
		e.element = el
	}
}

// dependants returns fields that declared name as a dependency and have
// already been interacted with.
func (f *Form) dependants(name string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []string
	for _, candidate := range f.order {
		if candidate == name {
			continue
		}
		e := f.fields[candidate]
		if !e.constraints.dependsOn(name) {
			continue
		}
		if f.touched[candidate] || f.dirty[candidate] {
			out = append(out, candidate)
		}
	}
	return out
}

// validateField runs constraints outside the lock so rules may read sibling
// values through Value.
func (f *Form) validateField(name string) []FieldError {
	f.mu.RLock()
	e, ok := f.fields[name]
	if !ok {
		f.mu.RUnlock()
		return nil
	}
	constraints := e.constraints
	value := f.values[name]
	f.mu.RUnlock()

	errs := constraints.evaluate(value)

	f.mu.Lock()
	if len(errs) == 0 {
		delete(f.errors, name)
	} else {
		f.errors[name] = errs
	}
	f.mu.Unlock()

	if len(errs) > 0 {
		f.logger.Debug("formstate: field invalid",
			slog.String("field", name),
			slog.String("type", errs[0].Type),
			slog.Int("failures", len(errs)),
		)
	}
	return errs
}

func (f *Form) notify(name, value string) {
	f.mu.RLock()
	current := append([]listener(nil), f.listeners[name]...)
	f.mu.RUnlock()
	for _, l := range current {
		l.fn(value)
	}
}
