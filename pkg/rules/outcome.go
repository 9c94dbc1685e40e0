package rules

// Outcome is the result of running a validator: either valid or invalid with a
// non-empty message.
type Outcome struct {
	message string
	failed  bool
}

// Valid returns a passing outcome.
func Valid() Outcome {
	return Outcome{}
}

// Invalid returns a failing outcome. Validators must always explain a failure,
// so an empty message panics.
func Invalid(message string) Outcome {
	if message == "" {
		panic("rules: invalid outcome requires a message")
	}
	return Outcome{message: message, failed: true}
}

// OK reports whether the value passed.
func (o Outcome) OK() bool {
	return !o.failed
}

// Message returns the failure message, or "" for a valid outcome.
func (o Outcome) Message() string {
	return o.message
}

func (o Outcome) String() string {
	if o.OK() {
		return "valid"
	}
	return o.message
}
