package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/launcher"
	"github.com/muurk/orderdesk/internal/order"
)

type harness struct {
	clip   *clipboard.Memory
	opener *launcher.Recorder
}

func (h *harness) controller(mobile bool) *order.Controller {
	return order.NewController(order.Options{
		Sender: &dispatch.Dispatcher{
			Link:       dispatch.NewLink("", ""),
			Classifier: dispatch.Static(mobile),
			Clipboard:  h.clip,
			Opener:     h.opener,
		},
	})
}

func newHarness() *harness {
	return &harness{clip: &clipboard.Memory{}, opener: &launcher.Recorder{}}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// send feeds messages through Update in order.
func send(m FormModel, msgs ...tea.Msg) FormModel {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(FormModel)
	}
	return m
}

// typeText opens the editor on the focused row, types s and closes it.
func typeText(m FormModel, s string) FormModel {
	m = send(m, keyEnter)
	for _, r := range s {
		m = send(m, keyRunes(string(r)))
	}
	return send(m, keyEnter)
}

// pick opens the option editor on the focused row and selects option idx.
func pick(m FormModel, idx int) FormModel {
	m = send(m, keyEnter)
	for m.OptionEditor.Cursor != idx {
		m = send(m, keyDown)
	}
	return send(m, keyEnter)
}

func fillValid(m FormModel) FormModel {
	m.Cursor = RowName
	m = typeText(m, "Jane Doe")
	m = send(m, keyDown)
	m = typeText(m, "03001234567")
	m = send(m, keyDown)
	m = pick(m, 1) // Samsung
	m = pick(m, 5) // Galaxy A55, cursor moved to model
	return m
}

func TestCursorWraps(t *testing.T) {
	m := NewFormModel(newHarness().controller(false))

	m = send(m, keyUp)
	if m.Cursor != RowSubmit {
		t.Errorf("cursor after up from top = %d, want %d", m.Cursor, RowSubmit)
	}
	m = send(m, keyDown)
	if m.Cursor != RowName {
		t.Errorf("cursor after down from bottom = %d, want %d", m.Cursor, RowName)
	}
}

func TestTypingUpdatesController(t *testing.T) {
	c := newHarness().controller(false)
	m := NewFormModel(c)

	m = typeText(m, "Jo")

	if got := c.Form().Name; got != "Jo" {
		t.Errorf("controller name = %q, want %q", got, "Jo")
	}
	if m.Editing != EditorNone {
		t.Errorf("editor still open after enter")
	}
}

func TestEditClearsFieldError(t *testing.T) {
	c := newHarness().controller(false)
	m := NewFormModel(c)

	m = send(m, keyRunes("s"))
	if !c.Errors().Has(order.FieldName) {
		t.Fatal("expected name error after empty submit")
	}
	if m.Cursor != RowName {
		t.Errorf("cursor = %d, want first invalid row %d", m.Cursor, RowName)
	}

	m = send(m, keyEnter, keyRunes("J"))
	if c.Errors().Has(order.FieldName) {
		t.Error("name error should clear on edit")
	}
	if !c.Errors().Has(order.FieldMobile) {
		t.Error("mobile error should remain")
	}
}

func TestBrandChangeResetsModel(t *testing.T) {
	c := newHarness().controller(false)
	m := NewFormModel(c)

	m.Cursor = RowBrand
	m = pick(m, 0) // Apple
	if m.Cursor != RowModel {
		t.Errorf("cursor after brand pick = %d, want %d", m.Cursor, RowModel)
	}
	m = pick(m, 7) // iPhone SE
	if c.Form().Model != "iPhone SE" {
		t.Fatalf("model = %q", c.Form().Model)
	}

	m.Cursor = RowBrand
	m = pick(m, 0) // Apple again keeps the model
	if c.Form().Model != "iPhone SE" {
		t.Errorf("re-picking the same brand cleared model")
	}

	m.Cursor = RowBrand
	m = pick(m, 2) // Google Pixel
	if c.Form().Model != "" {
		t.Errorf("model = %q after brand change, want empty", c.Form().Model)
	}
}

func TestModelWithoutBrandShowsNotice(t *testing.T) {
	m := NewFormModel(newHarness().controller(false))
	m.Cursor = RowModel

	m = send(m, keyEnter)

	if m.Editing != EditorNone {
		t.Error("model editor opened without a brand")
	}
	if m.Notice == "" {
		t.Error("expected a notice")
	}
	m = send(m, keyDown)
	if m.Notice != "" {
		t.Error("notice should clear on the next key")
	}
}

func TestDesktopSubmitShowsCopiedBanner(t *testing.T) {
	h := newHarness()
	c := h.controller(false)
	m := fillValid(NewFormModel(c))

	m = send(m, keyRunes("s"))

	if !m.Submitted || m.LastResult == nil || !m.LastResult.Valid {
		t.Fatalf("submit failed: %+v", m.LastResult)
	}
	if c.Status() != order.StatusCopied {
		t.Errorf("status = %v, want copied", c.Status())
	}
	if !strings.HasPrefix(h.clip.Text(), order.MessageTitle) {
		t.Errorf("clipboard = %q", h.clip.Text())
	}
	if strings.Contains(h.opener.Last(), "text=") {
		t.Errorf("desktop link carries text: %s", h.opener.Last())
	}
	if !strings.Contains(m.renderStatus(), "copied") {
		t.Errorf("status line = %q", m.renderStatus())
	}

	m = send(m, keyRunes("d"))
	if c.Status() != order.StatusIdle {
		t.Errorf("status after dismiss = %v, want idle", c.Status())
	}
	if m.renderStatus() != "" {
		t.Errorf("status line after dismiss = %q", m.renderStatus())
	}
}

func TestMobileSubmitOpensPrefilledLink(t *testing.T) {
	h := newHarness()
	c := h.controller(true)
	m := fillValid(NewFormModel(c))

	m.Cursor = RowSubmit
	m = send(m, keyEnter)

	if c.Status() != order.StatusIdle {
		t.Errorf("status = %v, want idle", c.Status())
	}
	if !strings.Contains(h.opener.Last(), "?text=") {
		t.Errorf("mobile link = %s", h.opener.Last())
	}
	if h.clip.Acquired() != 0 {
		t.Errorf("clipboard used on mobile path")
	}
}

func TestHelpModalClosesOnAnyKey(t *testing.T) {
	m := NewFormModel(newHarness().controller(false))

	m = send(m, keyRunes("?"))
	if !m.ShowingHelp {
		t.Fatal("help not shown")
	}
	m = send(m, keyRunes("x"))
	if m.ShowingHelp {
		t.Error("help still shown")
	}
}

func TestEscClosesTextEditor(t *testing.T) {
	m := NewFormModel(newHarness().controller(false))

	m = send(m, keyEnter)
	if m.Editing != EditorText {
		t.Fatal("text editor not open")
	}
	m = send(m, keyEsc)
	if m.Editing != EditorNone {
		t.Error("esc did not close the editor")
	}
}

func TestAppNewOrder(t *testing.T) {
	h := newHarness()
	app := NewAppModel(func() *order.Controller { return h.controller(false) })
	app.Form = fillValid(app.Form)

	updated, _ := app.Update(keyRunes("s"))
	app = updated.(AppModel)
	if app.Orders() != 1 {
		t.Fatalf("orders = %d, want 1", app.Orders())
	}

	updated, _ = app.Update(keyRunes("n"))
	app = updated.(AppModel)
	if app.Form.Submitted || app.Form.Controller.Form() != (order.Form{}) {
		t.Error("new order did not reset the form")
	}
	if app.Orders() != 1 {
		t.Errorf("orders = %d after new order, want 1", app.Orders())
	}
}

func TestViewRenders(t *testing.T) {
	m := fillValid(NewFormModel(newHarness().controller(false)))
	view := m.View()

	for _, want := range []string{AppName, "Full Name", "Jane Doe", "Galaxy A55", "[Send Order]", order.MessageTitle} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
