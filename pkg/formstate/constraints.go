package formstate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/rules"
)

// Element is the input a field binds to. The provider only ever focuses it.
type Element interface {
	Focus()
}

// PatternConstraint requires non-empty values to match Value.
type PatternConstraint struct {
	Value   *regexp.Regexp
	Message string
}

// NumericConstraint bounds the numeric value of the field.
type NumericConstraint struct {
	Value   float64
	Message string
}

// Constraints is everything a field registers with the provider.
type Constraints struct {
	// Validate holds the composed named rules.
	Validate rules.Set
	Pattern  *PatternConstraint
	Min      *NumericConstraint
	Max      *NumericConstraint
	// Deps lists fields whose changes re-validate this field once it has been
	// touched or edited.
	Deps []string
}

// Registration is handed back to the binder. OnChange must be invoked on every
// value change, OnBlur when the input loses focus and Ref once the element is
// available.
type Registration struct {
	Name     string
	OnChange func(value string)
	OnBlur   func()
	Ref      func(el Element)
}

// evaluate runs the built-in constraints and the named rules. Empty values skip
// pattern and numeric checks; non-numeric values skip min and max.
func (c Constraints) evaluate(value string) []FieldError {
	var out []FieldError

	if value != "" && (c.Min != nil || c.Max != nil) {
		if number, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			if c.Min != nil && number < c.Min.Value {
				out = append(out, FieldError{Type: ErrorTypeMin, Message: c.Min.Message})
			}
			if c.Max != nil && number > c.Max.Value {
				out = append(out, FieldError{Type: ErrorTypeMax, Message: c.Max.Message})
			}
		}
	}

	if value != "" && c.Pattern != nil && c.Pattern.Value != nil && !c.Pattern.Value.MatchString(value) {
		out = append(out, FieldError{Type: ErrorTypePattern, Message: c.Pattern.Message})
	}

	for _, failure := range c.Validate.Validate(value) {
		out = append(out, FieldError{Type: string(failure.Rule), Message: failure.Message})
	}
	return out
}

func (c Constraints) dependsOn(name string) bool {
	for _, dep := range c.Deps {
		if dep == name {
			return true
		}
	}
	return false
}
