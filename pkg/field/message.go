package field

import (
	"github.com/goliatone/go-formfield/pkg/rules"
	"github.com/goliatone/go-formfield/pkg/strength"
)

// MessageKind tells renderers how to style the message below the input.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageError
	MessageSuccess
	MessageHint
	MessageStrength
)

func (k MessageKind) String() string {
	switch k {
	case MessageError:
		return "error"
	case MessageSuccess:
		return "success"
	case MessageHint:
		return "hint"
	case MessageStrength:
		return "strength"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name so templates can compare against
// "error", "strength" and so on.
func (k MessageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name. Unknown names decode as MessageNone.
func (k *MessageKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*k = MessageError
	case "success":
		*k = MessageSuccess
	case "hint":
		*k = MessageHint
	case "strength":
		*k = MessageStrength
	default:
		*k = MessageNone
	}
	return nil
}

// Message is the single message displayed for a field. Strength carries the
// breakdown when Kind is MessageStrength.
type Message struct {
	Kind     MessageKind     `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Strength []strength.Item `json:"strength,omitempty"`
}

// Empty reports whether nothing should be displayed.
func (m Message) Empty() bool {
	return m.Kind == MessageNone
}

// Message derives the message to show right now. Password fields show the
// strength breakdown once focused and never a plain error. Otherwise the
// custom error wins over the provider error, then the custom success message,
// then the hint.
func (f *Field) Message() Message {
	if f.cfg.HasRule(rules.Password) {
		if f.tracker != nil && f.tracker.Dirty() {
			return Message{Kind: MessageStrength, Strength: f.tracker.Items()}
		}
	} else if text := f.errorText(); text != "" {
		return Message{Kind: MessageError, Text: text}
	}

	if f.cfg.CustomMessage != "" {
		return Message{Kind: MessageSuccess, Text: f.cfg.CustomMessage}
	}
	if f.cfg.Hint != "" && f.errorText() == "" {
		return Message{Kind: MessageHint, Text: f.cfg.Hint}
	}
	return Message{}
}

func (f *Field) errorText() string {
	if f.cfg.CustomError != "" {
		return f.cfg.CustomError
	}
	if state := f.State(); state.Error != nil {
		return state.Error.Message
	}
	return ""
}
