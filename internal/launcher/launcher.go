// Package launcher opens messaging links in the user's browser or app.
package launcher

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// Browser opens URLs with the platform handler (xdg-open, open, start).
type Browser struct {
	// Quiet discards the helper program's output. Full-screen front ends set
	// it so xdg-open chatter does not corrupt the screen.
	Quiet bool
}

// Open implements dispatch.Opener.
func (b Browser) Open(url string) error {
	if b.Quiet {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// Printer writes the URL instead of opening it, for headless machines.
type Printer struct {
	W io.Writer
}

// Open implements dispatch.Opener.
func (p Printer) Open(url string) error {
	_, err := fmt.Fprintf(p.W, "Open this link to send the order:\n  %s\n", url)
	return err
}

// Recorder remembers URLs without opening them. Dry runs use it.
type Recorder struct {
	URLs []string
}

// Open implements dispatch.Opener.
func (r *Recorder) Open(url string) error {
	r.URLs = append(r.URLs, url)
	return nil
}

// Last returns the most recently recorded URL, or "".
func (r *Recorder) Last() string {
	if len(r.URLs) == 0 {
		return ""
	}
	return r.URLs[len(r.URLs)-1]
}
