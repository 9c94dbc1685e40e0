package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoBindings is returned when a form carries views without live fields.
	ErrNoBindings = errors.New("tui: form has no bound fields")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of attempts.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
