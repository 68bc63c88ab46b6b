package launcher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muurk/orderdesk/internal/dispatch"
)

var (
	_ dispatch.Opener = Browser{}
	_ dispatch.Opener = Printer{}
	_ dispatch.Opener = (*Recorder)(nil)
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer

	if err := (Printer{W: &buf}).Open("https://wa.me/923152561004"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !strings.Contains(buf.String(), "https://wa.me/923152561004") {
		t.Errorf("output %q does not contain the URL", buf.String())
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	if r.Last() != "" {
		t.Error("expected empty Last() before any open")
	}

	_ = r.Open("a")
	_ = r.Open("b")

	if r.Last() != "b" || len(r.URLs) != 2 {
		t.Errorf("URLs = %v", r.URLs)
	}
}
