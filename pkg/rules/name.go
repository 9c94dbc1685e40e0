package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRule is returned when a rule name is outside the closed set.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Name identifies a validator in the registry.
type Name string

const (
	Required        Name = "required"
	Email           Name = "email"
	Phone           Name = "phone"
	AltPhone        Name = "altPhone"
	Password        Name = "password"
	OTP             Name = "otp"
	ConfirmPassword Name = "confirmPassword"
	NoSpaces        Name = "noSpaces"
)

var allNames = []Name{
	Required,
	Email,
	Phone,
	AltPhone,
	Password,
	OTP,
	ConfirmPassword,
	NoSpaces,
}

// Names returns every registered rule name in canonical order.
func Names() []Name {
	return append([]Name(nil), allNames...)
}

// Valid reports whether n belongs to the closed rule set.
func (n Name) Valid() bool {
	for _, candidate := range allNames {
		if n == candidate {
			return true
		}
	}
	return false
}

func (n Name) String() string {
	return string(n)
}

// ParseName converts a raw rule identifier (from descriptors or schema
// extensions) into a Name. Matching is exact after trimming whitespace.
func ParseName(raw string) (Name, error) {
	name := Name(strings.TrimSpace(raw))
	if !name.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownRule, raw)
	}
	return name, nil
}

// ParseNames converts a list of raw identifiers, failing on the first unknown
// entry.
func ParseNames(raw []string) ([]Name, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Name, 0, len(raw))
	for _, item := range raw {
		name, err := ParseName(item)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// Contains reports whether names includes target.
func Contains(names []Name, target Name) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}
