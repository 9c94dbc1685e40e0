package field

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/strength"
)

const baseInputClass = "w-full active:border-primary text-tc-main focus:bg-pc-02 text-sm h-[50px] overflow-hidden font-normal rounded-[5px] outline-none"

// View is the render model of a field. Renderers consume it without touching
// the provider.
type View struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Label        string   `json:"label,omitempty"`
	Placeholder  string   `json:"placeholder,omitempty"`
	Type         string   `json:"type"`
	InputType    string   `json:"inputType"`
	Value        string   `json:"value"`
	AutoComplete string   `json:"autoComplete"`
	Disabled     bool     `json:"disabled,omitempty"`
	Optional     bool     `json:"optional,omitempty"`
	Focused      bool     `json:"focused,omitempty"`
	Invalid      bool     `json:"invalid,omitempty"`
	Theme        string   `json:"theme"`
	InputClass   string   `json:"inputClass"`
	ThemeClass   string   `json:"themeClass"`
	ExtraClass   string   `json:"extraClass,omitempty"`
	Attrs        []Attr   `json:"attrs,omitempty"`
	Left         string   `json:"left,omitempty"`
	Right        string   `json:"right,omitempty"`
	Toggle       *Toggle  `json:"toggle,omitempty"`
	Message      Message  `json:"message"`
	Rules        []string `json:"rules,omitempty"`
	// Strength is the live breakdown of fields tracking password strength. It
	// is set before the first focus so renderers can ship it hidden.
	Strength []strength.Item `json:"strength,omitempty"`
}

// Attr is one passthrough attribute in a stable order.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Toggle describes the show/hide control of password inputs.
type Toggle struct {
	Visible bool   `json:"visible"`
	Caption string `json:"caption"`
}

// View snapshots the field for rendering.
func (f *Field) View() View {
	state := f.State()
	invalid := state.Error != nil

	f.mu.Lock()
	focused := f.focused
	f.mu.Unlock()

	view := View{
		ID:           f.cfg.ID,
		Name:         f.cfg.Name,
		Label:        f.cfg.Label,
		Placeholder:  f.cfg.Placeholder,
		Type:         f.cfg.Type,
		InputType:    f.InputType(),
		Value:        state.Value,
		AutoComplete: f.cfg.AutoComplete,
		Disabled:     f.cfg.Disabled,
		Optional:     f.cfg.Optional,
		Focused:      focused,
		Invalid:      invalid,
		Theme:        f.cfg.Theme,
		ThemeClass:   ThemeClass(f.cfg.Theme, f.cfg.Disabled, invalid),
		ExtraClass:   f.extraClass(),
		Attrs:        sortedAttrs(f.cfg.Attrs),
		Left:         f.cfg.Left,
		Right:        f.cfg.Right,
		Message:      f.Message(),
	}
	view.InputClass = ComposeInputClass(view.ThemeClass, view.ExtraClass)
	for _, name := range f.set.Names() {
		view.Rules = append(view.Rules, name.String())
	}
	if f.tracker != nil {
		view.Strength = f.tracker.Items()
	}
	if f.cfg.Type == passwordType {
		view.Toggle = &Toggle{Visible: f.PasswordVisible(), Caption: "Show"}
		if view.Toggle.Visible {
			view.Toggle.Caption = "Hide"
		}
	}
	return view
}

func (f *Field) extraClass() string {
	parts := []string{f.cfg.ClassName}
	if f.cfg.Type == passwordType {
		parts = append(parts, "pr-16")
	}
	if f.cfg.Left != "" {
		parts = append(parts, f.cfg.PaddingLeft)
	}
	if f.cfg.Right != "" {
		parts = append(parts, f.cfg.PaddingRight)
	}
	return joinClasses(parts...)
}

// ComposeInputClass joins the base input classes with a theme fragment and the
// caller classes. Renderers use it when a theme token replaces the fragment.
func ComposeInputClass(themeClass, extra string) string {
	return joinClasses(baseInputClass, themeClass, extra)
}

// ThemeClass returns the classes for a theme in the given state.
func ThemeClass(theme string, disabled, invalid bool) string {
	switch theme {
	case ThemeOutline:
		parts := []string{"p-4 bg-white text-tc-dark border-[1.5px]"}
		if disabled {
			parts = append(parts, "bg-[#F4FEFB]")
		}
		if invalid {
			parts = append(parts, "border-status-error-100 focus:border-status-error-100")
		} else {
			parts = append(parts, "border-[#545f7d26] focus:border-primary")
		}
		return joinClasses(parts...)
	case ThemePlain:
		return "p-4 bg-transparent border-[1.5px] border-transparent"
	default:
		return "bg-white border-[1.5px] border-gray-300"
	}
}

func joinClasses(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, " ")
}

func sortedAttrs(attrs map[string]string) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Attr, 0, len(keys))
	for _, key := range keys {
		out = append(out, Attr{Key: key, Value: attrs[key]})
	}
	return out
}
