package clipboard

import (
	"github.com/atotto/clipboard"
)

// System uses the desktop clipboard (pbcopy, xclip, xsel, wl-copy or the
// Windows clipboard API).
type System struct{}

// Acquire returns a stage, or ErrUnavailable when no clipboard utility exists.
func (System) Acquire() (Stage, error) {
	if clipboard.Unsupported {
		return nil, ErrUnavailable
	}
	return systemStage{}, nil
}

type systemStage struct{}

func (systemStage) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (systemStage) Release() error {
	return nil
}
