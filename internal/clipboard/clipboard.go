package clipboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when no clipboard can be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

// Stage is an acquired clipboard handle. Release must be called exactly once.
type Stage interface {
	Write(text string) error
	Release() error
}

// Provider hands out clipboard stages.
type Provider interface {
	Acquire() (Stage, error)
}

// Backend names accepted by New.
const (
	BackendAuto     = "auto"
	BackendSystem   = "system"
	BackendTerminal = "terminal"
	BackendNone     = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendAuto, BackendSystem, BackendTerminal, BackendNone}

// New returns the provider for a backend name. An empty name means auto.
func New(backend string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		return Auto(), nil
	case BackendSystem:
		return System{}, nil
	case BackendTerminal:
		return NewTerminal(), nil
	case BackendNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q (valid: %s)", backend, strings.Join(Backends, ", "))
	}
}

// Copy writes text through a freshly acquired stage and releases it.
// The first error wins; a release error is reported only when the write
// succeeded.
func Copy(p Provider, text string) (err error) {
	stage, err := p.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if relErr := stage.Release(); relErr != nil && err == nil {
			err = fmt.Errorf("failed to release clipboard: %w", relErr)
		}
	}()

	if err := stage.Write(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// None is a provider with no clipboard behind it.
type None struct{}

// Acquire always fails with ErrUnavailable.
func (None) Acquire() (Stage, error) {
	return nil, ErrUnavailable
}
