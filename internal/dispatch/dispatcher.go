package dispatch

import (
	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/logging"
	"go.uber.org/zap"
)

// Path identifies which submission path was taken.
type Path string

const (
	PathMobile  Path = "mobile"
	PathDesktop Path = "desktop"
)

// Opener invokes the messaging endpoint, usually by opening a browser.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open implements Opener.
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// Result describes a completed hand-off.
type Result struct {
	Path Path
	URL  string
	// Copied is true when the clipboard write succeeded. The desktop path
	// reports the copied status to the user either way.
	Copied bool
	// Opened is true when the opener accepted the URL.
	Opened bool
}

// Dispatcher routes order text to the messaging endpoint.
type Dispatcher struct {
	Link       Link
	Classifier Classifier
	Clipboard  clipboard.Provider
	// Opener may be nil, in which case the URL is only returned.
	Opener Opener
}

// Send hands text off along the path chosen by the classifier.
func (d *Dispatcher) Send(text string) Result {
	var res Result

	if d.isMobile() {
		res.Path = PathMobile
		res.URL = d.Link.WithText(text)
	} else {
		res.Path = PathDesktop
		res.Copied = d.copy(text)
		res.URL = d.Link.Plain()
	}

	res.Opened = d.open(res.URL)
	logging.LogDispatch(string(res.Path), res.URL, res.Copied)
	return res
}

func (d *Dispatcher) isMobile() bool {
	if d.Classifier == nil {
		return false
	}
	return d.Classifier.IsMobileClient()
}

func (d *Dispatcher) copy(text string) bool {
	if d.Clipboard == nil {
		logging.Warn("No clipboard configured, order text not copied")
		return false
	}
	if err := clipboard.Copy(d.Clipboard, text); err != nil {
		logging.Warn("Failed to copy order text", zap.Error(err))
		return false
	}
	return true
}

func (d *Dispatcher) open(url string) bool {
	if d.Opener == nil {
		return false
	}
	if err := d.Opener.Open(url); err != nil {
		logging.Warn("Failed to open messaging link", zap.Error(err))
		return false
	}
	return true
}
