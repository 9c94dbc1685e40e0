package rules

import (
	"strings"
	"unicode/utf8"
)

// PasswordMinLength is the minimum number of characters a password needs.
const PasswordMinLength = 8

// SpecialCharacters is the fixed set counted as "special" by the password
// rule and the strength tracker.
const SpecialCharacters = `*|":<>[]{}` + "`" + `\()';@&$#!`

// PasswordChecks records which password categories a value satisfies.
type PasswordChecks struct {
	Uppercase bool
	Lowercase bool
	Number    bool
	Special   bool
	Length    bool
}

// CheckPassword evaluates every password category for value. Letter and digit
// classes are ASCII only.
func CheckPassword(value string) PasswordChecks {
	checks := PasswordChecks{
		Special: strings.ContainsAny(value, SpecialCharacters),
		Length:  utf8.RuneCountInString(value) >= PasswordMinLength,
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'A' && c <= 'Z':
			checks.Uppercase = true
		case c >= 'a' && c <= 'z':
			checks.Lowercase = true
		case c >= '0' && c <= '9':
			checks.Number = true
		}
	}
	return checks
}

// Satisfied reports whether every category passed.
func (c PasswordChecks) Satisfied() bool {
	return c.Uppercase && c.Lowercase && c.Number && c.Special && c.Length
}

// Missing lists the failing categories in their fixed order using the wording
// of the password failure message.
func (c PasswordChecks) Missing() []string {
	var missing []string
	if !c.Uppercase {
		missing = append(missing, "an uppercase letter")
	}
	if !c.Lowercase {
		missing = append(missing, "a lowercase letter")
	}
	if !c.Number {
		missing = append(missing, "a number")
	}
	if !c.Special {
		missing = append(missing, "a special character")
	}
	if !c.Length {
		missing = append(missing, "at least 8 digits")
	}
	return missing
}

// joinWithAnd renders ["a", "b", "c"] as "a, b and c".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
