package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/orderdesk/internal/catalog"
)

// Printer writes styled output for the non-interactive commands.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Width returns the width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	p.Println(RenderHeader(title, command, params, p.width))
}

// PrintResult prints a result box at the printer width
func (p *Printer) PrintResult(r *Result) {
	p.Println(r.SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.PrintResult(NewSuccessResult(title, details...))
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.PrintResult(NewFailureResult(title, err, troubleshooting))
}

// PrintPreview prints an order message in a muted box
func (p *Printer) PrintPreview(message string) {
	p.Println(RenderPreview(message, p.width))
}

// PrintCatalog prints every brand with its models
func (p *Printer) PrintCatalog(entries []catalog.Entry) {
	p.Print(RenderCatalog(entries))
}

// RenderHeader renders a command header box
func RenderHeader(title, command string, params []Detail, width int) string {
	width = clampWidth(width)

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(title)),
		HeaderCommandStyle.Render(command),
	)
	if len(params) == 0 {
		return HeaderBorderStyle(width).Render(top)
	}

	var paramLines []string
	for _, d := range params {
		paramLines = append(paramLines, HeaderParamKeyStyle.Render(d.Key+":")+" "+HeaderParamValueStyle.Render(d.Value))
	}

	divider := RenderHorizontalDivider(width-6, "─")
	content := lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(paramLines, "\n"))
	return HeaderBorderStyle(width).Render(content)
}

// RenderPreview renders an order message
func RenderPreview(message string, width int) string {
	width = clampWidth(width)
	return lipgloss.JoinVertical(lipgloss.Left,
		PreviewTitleStyle.Render("Message"),
		InnerBoxStyle(width-4).Render(message),
	)
}

// RenderCatalog renders brands and their models, one per line
func RenderCatalog(entries []catalog.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(BrandStyle.Render(fmt.Sprintf("%s (%d)", e.Brand, len(e.Models))))
		b.WriteString("\n")
		for _, m := range e.Models {
			b.WriteString(ModelStyle.Render(BulletMarker + " " + m))
			b.WriteString("\n")
		}
	}
	return b.String()
}
