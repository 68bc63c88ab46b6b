package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
)

// TTYPath is the controlling terminal device.
const TTYPath = "/dev/tty"

// Terminal copies through the OSC 52 escape sequence. Writes bypass stdout so
// a running full-screen program is not disturbed.
type Terminal struct {
	// Open returns the terminal to write to. Defaults to opening TTYPath.
	Open func() (io.WriteCloser, error)
	// Getenv is used for tmux detection. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewTerminal returns a Terminal writing to the controlling terminal.
func NewTerminal() *Terminal {
	return &Terminal{
		Open:   openTTY,
		Getenv: os.Getenv,
	}
}

func openTTY() (io.WriteCloser, error) {
	tty, err := os.OpenFile(TTYPath, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return tty, nil
}

// Acquire opens the terminal. The stage closes it on release.
func (t *Terminal) Acquire() (Stage, error) {
	open := t.Open
	if open == nil {
		open = openTTY
	}
	w, err := open()
	if err != nil {
		return nil, err
	}
	getenv := t.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return &terminalStage{w: w, tmux: inTmux(getenv)}, nil
}

type terminalStage struct {
	w    io.WriteCloser
	tmux bool
}

func (s *terminalStage) Write(text string) error {
	seq := OSC52(text)
	if s.tmux {
		// tmux passthrough first, then the plain sequence for
		// set-clipboard on/external configurations.
		if _, err := io.WriteString(s.w, TmuxPassthrough(seq)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.w, seq)
	return err
}

func (s *terminalStage) Release() error {
	return s.w.Close()
}

// OSC52 returns the escape sequence that sets the clipboard to text.
// BEL terminates the sequence; it survives more terminal multiplexers than ST.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
}

// TmuxPassthrough wraps seq in a tmux DCS passthrough block.
func TmuxPassthrough(seq string) string {
	return "\x1bPtmux;\x1b" + seq + "\x1b\\"
}

func inTmux(getenv func(string) string) bool {
	term := getenv("TERM")
	return getenv("TMUX") != "" ||
		strings.HasPrefix(term, "tmux") ||
		strings.HasPrefix(term, "screen")
}
