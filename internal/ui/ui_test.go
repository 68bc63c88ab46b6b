package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/orderdesk/internal/catalog"
)

func TestResultRender(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "success",
			result: NewSuccessResult("Order sent", Detail{Key: "Path", Value: "mobile"}),
			want:   []string{"SUCCESS", "Order sent", "Path:", "mobile"},
		},
		{
			name:   "failure",
			result: NewFailureResult("Order invalid", errors.New("name: too short"), []string{"Check the name"}),
			want:   []string{"FAILED", "Order invalid", "name: too short", "Troubleshooting:", "Check the name"},
		},
		{
			name:   "warning",
			result: NewWarningResult("Clipboard unavailable"),
			want:   []string{"WARNING", "Clipboard unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(80).Render()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Render() missing %q in:\n%s", w, out)
				}
			}
		})
	}
}

func TestDetailsKeepOrder(t *testing.T) {
	r := NewSuccessResult("x").AddDetail("First", "1").AddDetail("Second", "2").AddDetail("Third", "3")
	out := r.SetWidth(80).Render()

	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	third := strings.Index(out, "Third")
	if !(first < second && second < third) {
		t.Errorf("details rendered out of order:\n%s", out)
	}
}

func TestRenderCatalog(t *testing.T) {
	out := RenderCatalog(catalog.Default().Entries())

	for _, want := range []string{"Apple (8)", "Samsung (6)", "Google Pixel (5)", "iPhone SE", "Galaxy Z Flip 5", "Pixel 7a"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCatalog() missing %q", want)
		}
	}
}

func TestPrinterPreview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(70)

	p.PrintPreview("*New Order Request*")

	if !strings.Contains(buf.String(), "*New Order Request*") || !strings.Contains(buf.String(), "Message") {
		t.Errorf("unexpected preview output:\n%s", buf.String())
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, MinTerminalWidth},
		{80, 80},
		{500, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			if got := Confirm(strings.NewReader(tt.input), &out, "Overwrite?"); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
