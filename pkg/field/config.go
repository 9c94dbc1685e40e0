package field

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/rules"
)

// Theme names understood by the view assembler. Any other value falls back to
// the default look.
const (
	ThemeOutline = "outline"
	ThemePlain   = "plain"
)

const (
	defaultType         = "text"
	defaultAutoComplete = "off"
	passwordType        = "password"
)

// Config is the caller-facing description of one field.
type Config struct {
	Label        string       `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Type         string       `json:"type,omitempty" yaml:"type,omitempty"`
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string       `json:"name" yaml:"name"`
	Rules        []rules.Name `json:"rules,omitempty" yaml:"rules,omitempty"`
	Pattern      string       `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min          *float64     `json:"min,omitempty" yaml:"min,omitempty"`
	Max          *float64     `json:"max,omitempty" yaml:"max,omitempty"`
	AutoComplete string       `json:"autoComplete,omitempty" yaml:"autoComplete,omitempty"`
	Disabled     bool         `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Theme        string       `json:"theme,omitempty" yaml:"theme,omitempty"`
	Focused      bool         `json:"focused,omitempty" yaml:"focused,omitempty"`
	Optional     bool         `json:"optional,omitempty" yaml:"optional,omitempty"`
	ClassName    string       `json:"className,omitempty" yaml:"className,omitempty"`
	ShowPassword bool         `json:"showPassword,omitempty" yaml:"showPassword,omitempty"`

	// Left and Right hold decoration markup placed inside the input box.
	Left         string `json:"left,omitempty" yaml:"left,omitempty"`
	Right        string `json:"right,omitempty" yaml:"right,omitempty"`
	PaddingLeft  string `json:"paddingLeft,omitempty" yaml:"paddingLeft,omitempty"`
	PaddingRight string `json:"paddingRight,omitempty" yaml:"paddingRight,omitempty"`

	CustomError   string `json:"customError,omitempty" yaml:"customError,omitempty"`
	CustomMessage string `json:"customMessage,omitempty" yaml:"customMessage,omitempty"`
	Hint          string `json:"hint,omitempty" yaml:"hint,omitempty"`

	// Attrs are passed through to the rendered input untouched.
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// OnChange runs after the provider handled the change.
	OnChange func(value string) `json:"-" yaml:"-"`
}

// HasRule reports whether name was requested.
func (c Config) HasRule(name rules.Name) bool {
	return rules.Contains(c.Rules, name)
}

// resolve fills defaults once so the rest of the package never branches on
// zero values.
func (c Config) resolve() Config {
	out := c
	out.Name = strings.TrimSpace(c.Name)
	if strings.TrimSpace(out.Type) == "" {
		out.Type = defaultType
	}
	if strings.TrimSpace(out.AutoComplete) == "" {
		out.AutoComplete = defaultAutoComplete
	}
	if strings.TrimSpace(out.Theme) == "" {
		out.Theme = ThemeOutline
	}
	if out.OnChange == nil {
		out.OnChange = func(string) {}
	}
	if len(c.Rules) > 0 {
		out.Rules = append([]rules.Name(nil), c.Rules...)
	}
	if len(c.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(c.Attrs))
		for key, value := range c.Attrs {
			out.Attrs[key] = value
		}
	}
	return out
}

// DisplayLabel is the label used inside validation messages.
func (c Config) DisplayLabel() string {
	return rules.ResolveLabel(c.Label, c.Name)
}
