package field

// ChangeHandler receives every value change of the bound input.
type ChangeHandler func(value string)

// handlerChain runs its handlers in order. The provider handler is always
// first so validation lands before caller side effects.
type handlerChain []ChangeHandler

func newHandlerChain(provider ChangeHandler, extra ...ChangeHandler) handlerChain {
	chain := make(handlerChain, 0, len(extra)+1)
	if provider != nil {
		chain = append(chain, provider)
	}
	for _, handler := range extra {
		if handler != nil {
			chain = append(chain, handler)
		}
	}
	return chain
}

func (c handlerChain) run(value string) {
	for _, handler := range c {
		handler(value)
	}
}
