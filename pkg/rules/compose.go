package rules

import (
	"errors"
	"strings"
)

// Bound is a validator with the field label already applied.
type Bound func(value string) Outcome

// Failure pairs a failing rule with its message.
type Failure struct {
	Rule    Name
	Message string
}

// Set maps each requested rule to its bound validator. Request order is kept
// so callers can pick a deterministic first failure; it never changes which
// rules fail.
type Set struct {
	order []Name
	bound map[Name]Bound
}

// Compose binds names to label using the registry. Unknown names fail fast and
// duplicates collapse into a single entry.
func Compose(reg *Registry, names []Name, label string) (Set, error) {
	if reg == nil {
		return Set{}, errors.New("rules: registry is required")
	}
	set := Set{bound: make(map[Name]Bound, len(names))}
	for _, name := range names {
		if _, exists := set.bound[name]; exists {
			continue
		}
		validator, err := reg.Validator(name)
		if err != nil {
			return Set{}, err
		}
		set.order = append(set.order, name)
		set.bound[name] = bind(validator, label)
	}
	return set, nil
}

// MustCompose panics when Compose fails.
func MustCompose(reg *Registry, names []Name, label string) Set {
	set, err := Compose(reg, names, label)
	if err != nil {
		panic(err)
	}
	return set
}

func bind(validator Validator, label string) Bound {
	return func(value string) Outcome {
		return validator(value, label)
	}
}

// Names returns the composed rule names in request order.
func (s Set) Names() []Name {
	return append([]Name(nil), s.order...)
}

// Len reports how many rules are bound.
func (s Set) Len() int {
	return len(s.order)
}

// Has reports whether name is part of the set.
func (s Set) Has(name Name) bool {
	_, ok := s.bound[name]
	return ok
}

// Get returns the bound validator for name.
func (s Set) Get(name Name) (Bound, bool) {
	fn, ok := s.bound[name]
	return fn, ok
}

// Map returns a copy of the rule to validator mapping.
func (s Set) Map() map[Name]Bound {
	if len(s.bound) == 0 {
		return nil
	}
	out := make(map[Name]Bound, len(s.bound))
	for name, fn := range s.bound {
		out[name] = fn
	}
	return out
}

// Validate runs every rule and returns all failures in request order.
func (s Set) Validate(value string) []Failure {
	var failures []Failure
	for _, name := range s.order {
		outcome := s.bound[name](value)
		if outcome.OK() {
			continue
		}
		failures = append(failures, Failure{Rule: name, Message: outcome.Message()})
	}
	return failures
}

// ResolveLabel returns label, falling back to name when label is blank.
func ResolveLabel(label, name string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return name
}
