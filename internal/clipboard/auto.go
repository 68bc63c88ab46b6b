package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Chain tries each provider in order and returns the first stage acquired.
type Chain []Provider

// Acquire returns the first stage any provider hands out.
func (c Chain) Acquire() (Stage, error) {
	var errs []error
	for _, p := range c {
		stage, err := p.Acquire()
		if err == nil {
			return stage, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrUnavailable
	}
	return nil, errors.Join(errs...)
}

// Auto prefers the system clipboard and falls back to the terminal.
func Auto() Provider {
	if clipboard.Unsupported {
		return Chain{NewTerminal()}
	}
	return Chain{System{}, NewTerminal()}
}
