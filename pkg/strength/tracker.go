package strength

import (
	"sync"

	"github.com/goliatone/go-formfield/pkg/rules"
)

// State holds the five independent strength checks for a password value.
type State struct {
	HasUppercase bool `json:"hasUppercase"`
	HasLowercase bool `json:"hasLowercase"`
	HasDigit     bool `json:"hasDigit"`
	HasSpecial   bool `json:"hasSpecial"`
	HasMinLength bool `json:"hasMinLength"`
}

// Evaluate computes the strength state for value.
func Evaluate(value string) State {
	checks := rules.CheckPassword(value)
	return State{
		HasUppercase: checks.Uppercase,
		HasLowercase: checks.Lowercase,
		HasDigit:     checks.Number,
		HasSpecial:   checks.Special,
		HasMinLength: checks.Length,
	}
}

// Item is one line of the displayed breakdown.
type Item struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

// Items returns the breakdown in display order.
func (s State) Items() []Item {
	return []Item{
		{Key: "uppercase", Label: "an uppercase letter", Met: s.HasUppercase},
		{Key: "lowercase", Label: "a lowercase letter", Met: s.HasLowercase},
		{Key: "number", Label: "a number", Met: s.HasDigit},
		{Key: "special", Label: "a special character", Met: s.HasSpecial},
		{Key: "length", Label: "at least 8 characters", Met: s.HasMinLength},
	}
}

// Phase gates whether the breakdown is displayed.
type Phase int

const (
	// Clean means the input has never been focused.
	Clean Phase = iota
	// Dirty means the input received focus at least once.
	Dirty
)

func (p Phase) String() string {
	if p == Dirty {
		return "dirty"
	}
	return "clean"
}

// Watcher exposes the live value of a named field and change notifications.
type Watcher interface {
	Watch(name string) string
	Subscribe(name string, fn func(value string)) (cancel func())
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithField overrides the watched field name.
func WithField(name string) Option {
	return func(t *Tracker) {
		if name != "" {
			t.field = name
		}
	}
}

// Tracker keeps State in sync with the watched password field.
type Tracker struct {
	mu     sync.RWMutex
	field  string
	state  State
	phase  Phase
	cancel func()
}

// NewTracker subscribes to the watched field (rules.PasswordField by default)
// and seeds the state from its current value. A nil watcher yields a tracker
// that only reacts to Update.
func NewTracker(w Watcher, options ...Option) *Tracker {
	t := &Tracker{field: rules.PasswordField}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	if w != nil {
		t.state = Evaluate(w.Watch(t.field))
		t.cancel = w.Subscribe(t.field, t.Update)
	}
	return t
}

// Field returns the watched field name.
func (t *Tracker) Field() string {
	return t.field
}

// Update recomputes the state from value.
func (t *Tracker) Update(value string) {
	next := Evaluate(value)
	t.mu.Lock()
	t.state = next
	t.mu.Unlock()
}

// Focus moves the tracker to Dirty. Later calls are no-ops.
func (t *Tracker) Focus() {
	t.mu.Lock()
	t.phase = Dirty
	t.mu.Unlock()
}

// Phase reports the display gate.
func (t *Tracker) Phase() Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase
}

// Dirty reports whether the breakdown should be displayed.
func (t *Tracker) Dirty() bool {
	return t.Phase() == Dirty
}

// State returns the latest computed state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Items returns the display breakdown for the latest state.
func (t *Tracker) Items() []Item {
	return t.State().Items()
}

// Close cancels the subscription.
func (t *Tracker) Close() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
