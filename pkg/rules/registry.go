package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PasswordField is the form field confirmPassword compares against and the
// strength tracker watches.
const PasswordField = "password"

const (
	phoneMaxLength    = 10
	altPhoneMaxLength = 12
	otpLength         = 6
)

var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// Validator checks a value for the field identified by label.
type Validator func(value, label string) Outcome

// FieldValueReader exposes the live value of another field in the same form.
// A missing field reports ok == false.
type FieldValueReader interface {
	Value(name string) (string, bool)
}

// FieldValueReaderFunc adapts a function into a FieldValueReader.
type FieldValueReaderFunc func(name string) (string, bool)

// Value calls the underlying function.
func (fn FieldValueReaderFunc) Value(name string) (string, bool) {
	return fn(name)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPasswordField overrides the sibling field confirmPassword reads.
func WithPasswordField(name string) RegistryOption {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.passwordField = trimmed
		}
	}
}

// Registry resolves rule names to validators. It is stateless apart from the
// reader used by confirmPassword.
type Registry struct {
	reader        FieldValueReader
	passwordField string
}

// NewRegistry builds a registry. With a nil reader confirmPassword always
// fails, as if the password field did not exist.
func NewRegistry(reader FieldValueReader, options ...RegistryOption) *Registry {
	r := &Registry{
		reader:        reader,
		passwordField: PasswordField,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// PasswordField returns the sibling field confirmPassword compares against.
func (r *Registry) PasswordField() string {
	return r.passwordField
}

// Validator returns the validator registered for name.
func (r *Registry) Validator(name Name) (Validator, error) {
	switch name {
	case Required:
		return validateRequired, nil
	case Email:
		return validateEmail, nil
	case Phone:
		return validatePhone, nil
	case AltPhone:
		return validateAltPhone, nil
	case Password:
		return validatePassword, nil
	case OTP:
		return validateOTP, nil
	case ConfirmPassword:
		return r.validateConfirmPassword, nil
	case NoSpaces:
		return validateNoSpaces, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, string(name))
	}
}

// MustValidator panics when name is unknown. Useful for init-time wiring.
func (r *Registry) MustValidator(name Name) Validator {
	v, err := r.Validator(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate runs a single rule.
func (r *Registry) Validate(name Name, value, label string) (Outcome, error) {
	v, err := r.Validator(name)
	if err != nil {
		return Outcome{}, err
	}
	return v(value, label), nil
}

func validateRequired(value, label string) Outcome {
	if value != "" {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field is required", label))
}

func validateEmail(value, label string) Outcome {
	if emailPattern.MatchString(value) {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field has to be a valid email", label))
}

// Phone rules only bound the length. Both cite 12 digits in their message.
func validatePhone(value, label string) Outcome {
	if utf8.RuneCountInString(value) <= phoneMaxLength {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field must be less than or equal to 12 digits", label))
}

func validateAltPhone(value, label string) Outcome {
	if utf8.RuneCountInString(value) <= altPhoneMaxLength {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field must be less than or equal to 12 digits", label))
}

func validatePassword(value, label string) Outcome {
	missing := CheckPassword(value).Missing()
	if len(missing) == 0 {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field must have %s", label, joinWithAnd(missing)))
}

func validateOTP(value, label string) Outcome {
	if utf8.RuneCountInString(value) == otpLength {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field must be of length 6", label))
}

func (r *Registry) validateConfirmPassword(value, label string) Outcome {
	// A form without a password field never matches, not even an empty value.
	if r.reader != nil {
		if current, ok := r.reader.Value(r.passwordField); ok && value == current {
			return Valid()
		}
	}
	return Invalid(fmt.Sprintf("The %s field must be equal to the Password field", label))
}

func validateNoSpaces(value, label string) Outcome {
	if !strings.Contains(value, " ") {
		return Valid()
	}
	return Invalid(fmt.Sprintf("The %s field is not allowed to contain spaces", label))
}
