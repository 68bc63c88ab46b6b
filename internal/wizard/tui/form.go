package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/order"
)

// Row indices. The first five map onto order.Fields.
const (
	RowName = iota
	RowMobile
	RowBrand
	RowModel
	RowAccessories
	RowSubmit
	rowCount
)

// EditorKind is the inline editor open on the focused row
type EditorKind int

const (
	EditorNone EditorKind = iota
	EditorText
	EditorOptions
)

// formKeyMap defines key bindings for the order form
type formKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Submit  key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Submit, k.Dismiss, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Submit, k.Dismiss, k.Help, k.Quit},
	}
}

// editorKeyMap is shown while an inline editor is open
type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.Cancel}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Accept, k.Cancel}}
}

// OptionEditorState tracks the brand/model picker
type OptionEditorState struct {
	Options []string
	Cursor  int
}

// FormModel is the order entry screen. All form state lives in the
// controller; the model only holds cursor and editor state.
type FormModel struct {
	Controller *order.Controller

	// UI state
	Width  int
	Height int

	// Navigation
	Cursor      int
	Editing     EditorKind
	ShowingHelp bool

	Inputs       map[order.Field]textinput.Model
	OptionEditor OptionEditorState

	// Notice is a one-shot hint shown under the form, cleared on the next key
	Notice string
	// LastResult is set by every submit
	LastResult *order.SubmitResult
	// Submitted is true once a valid order has been sent; the app reads it
	Submitted bool

	Help       help.Model
	Keys       formKeyMap
	EditorKeys editorKeyMap
}

// NewFormModel creates the form for an existing controller
func NewFormModel(c *order.Controller) FormModel {
	inputs := map[order.Field]textinput.Model{
		order.FieldName:        newInput("Jane Doe", 80),
		order.FieldMobile:      newInput("03001234567", 20),
		order.FieldAccessories: newInput("Case, charger...", 200),
	}
	for field, in := range inputs {
		in.SetValue(c.Form().Get(field))
		inputs[field] = in
	}

	keys := formKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "edit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s", "s"),
			key.WithHelp("s", "send"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	editorKeys := editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "next"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}

	return FormModel{
		Controller: c,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Inputs:     inputs,
		Help:       help.New(),
		Keys:       keys,
		EditorKeys: editorKeys,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Prompt = ""
	return in
}

// Init initializes the form
func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = size.Width
		m.Height = size.Height
		return m, nil
	}

	if m.ShowingHelp {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.ShowingHelp = false
		}
		return m, nil
	}

	switch m.Editing {
	case EditorText:
		return m.updateTextEditor(msg)
	case EditorOptions:
		return m.updateOptionEditor(msg)
	default:
		return m.updateNormalMode(msg)
	}
}

// updateNormalMode handles input when no inline editor is open
func (m FormModel) updateNormalMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Notice = ""

	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.Keys.Up):
		m.Cursor--
		if m.Cursor < 0 {
			m.Cursor = rowCount - 1
		}

	case key.Matches(keyMsg, m.Keys.Down):
		m.Cursor++
		if m.Cursor >= rowCount {
			m.Cursor = 0
		}

	case key.Matches(keyMsg, m.Keys.Enter):
		return m.startEditing()

	case key.Matches(keyMsg, m.Keys.Submit):
		return m.submit()

	case key.Matches(keyMsg, m.Keys.Dismiss):
		m.Controller.DismissStatus()

	case key.Matches(keyMsg, m.Keys.Help):
		m.ShowingHelp = true
	}

	return m, nil
}

// startEditing opens the editor for the focused row, or submits on the
// submit button
func (m FormModel) startEditing() (tea.Model, tea.Cmd) {
	if m.Cursor == RowSubmit {
		return m.submit()
	}

	field := order.Fields[m.Cursor]
	switch field {
	case order.FieldBrand, order.FieldModel:
		options := m.optionsFor(field)
		if len(options) == 0 {
			m.Notice = "Select a brand first"
			return m, nil
		}
		m.OptionEditor = OptionEditorState{
			Options: options,
			Cursor:  max(0, indexOf(options, m.Controller.Form().Get(field))),
		}
		m.Editing = EditorOptions
		return m, nil

	default:
		in := m.Inputs[field]
		cmd := in.Focus()
		in.CursorEnd()
		m.Inputs[field] = in
		m.Editing = EditorText
		return m, cmd
	}
}

// updateTextEditor forwards keys to the focused input and mirrors every
// change into the controller
func (m FormModel) updateTextEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	field := order.Fields[m.Cursor]
	in := m.Inputs[field]

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.EditorKeys.Accept), key.Matches(keyMsg, m.EditorKeys.Cancel):
			in.Blur()
			m.Inputs[field] = in
			m.Editing = EditorNone
			return m, nil

		case key.Matches(keyMsg, m.EditorKeys.Down), key.Matches(keyMsg, m.EditorKeys.Up):
			in.Blur()
			m.Inputs[field] = in
			m.Editing = EditorNone
			return m.updateNormalMode(msg)
		}
	}

	before := in.Value()
	in, cmd := in.Update(msg)
	m.Inputs[field] = in
	if in.Value() != before {
		m.Controller.UpdateField(field, in.Value())
	}
	return m, cmd
}

// updateOptionEditor handles the brand/model picker
func (m FormModel) updateOptionEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.OptionEditor.Options)
	switch keyMsg.String() {
	case "esc":
		m.Editing = EditorNone

	case "up", "k", "shift+tab":
		m.OptionEditor.Cursor--
		if m.OptionEditor.Cursor < 0 {
			m.OptionEditor.Cursor = n - 1
		}

	case "down", "j", "tab":
		m.OptionEditor.Cursor++
		if m.OptionEditor.Cursor >= n {
			m.OptionEditor.Cursor = 0
		}

	case "enter", " ":
		field := order.Fields[m.Cursor]
		value := m.OptionEditor.Options[m.OptionEditor.Cursor]
		// Picking the brand already selected keeps the chosen model.
		if !(field == order.FieldBrand && value == m.Controller.Form().Brand) {
			m.Controller.UpdateField(field, value)
		}
		m.Editing = EditorNone
		if field == order.FieldBrand && m.Controller.Form().Model == "" {
			m.Cursor = RowModel
		}
	}

	return m, nil
}

// submit runs the controller's submit and records the outcome
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	res := m.Controller.Submit()
	m.LastResult = &res
	if !res.Valid {
		m.Cursor = firstInvalidRow(res.Errors)
		return m, nil
	}
	m.Submitted = true
	return m, nil
}

func (m FormModel) optionsFor(field order.Field) []string {
	if field == order.FieldBrand {
		return m.Controller.Catalog().Brands()
	}
	return m.Controller.ModelOptions()
}

// firstInvalidRow returns the first row with an error, in form order
func firstInvalidRow(errs order.FieldErrors) int {
	for i, field := range order.Fields {
		if errs.Has(field) {
			return i
		}
	}
	return RowSubmit
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// View renders the form
func (m FormModel) View() string {
	if m.ShowingHelp {
		return RenderModal(m.renderHelpModalContent(), m.Width, m.Height)
	}

	var helpText string
	if m.Editing != EditorNone {
		helpText = m.Help.View(m.EditorKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}
	return RenderApplicationContainer(m.renderContent(), helpText, m.Width, m.Height)
}

func (m FormModel) renderContent() string {
	parts := []string{RenderTitle("New Order Request")}

	errs := m.Controller.Errors()
	for i, field := range order.Fields {
		parts = append(parts, m.renderRow(i, field))
		if msg := errs.Message(field); msg != "" {
			parts = append(parts, FieldErrorStyle.Render(msg))
		}
		if m.Editing == EditorOptions && m.Cursor == i {
			parts = append(parts, m.renderOptionEditor())
		}
	}

	parts = append(parts, "", m.renderSubmitButton())

	if m.Notice != "" {
		parts = append(parts, "", NoticeStyle.Render("⚠ "+m.Notice))
	}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, "", status)
	}

	parts = append(parts, "", SubtitleStyle.Render("Preview"), PreviewStyle.Render(m.Controller.Preview()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderRow renders a field as "→ Label          value"
func (m FormModel) renderRow(idx int, field order.Field) string {
	selected := m.Cursor == idx

	labelStyle := lipgloss.NewStyle().Width(LabelWidth).Foreground(SubtleColor)
	valueStyle := lipgloss.NewStyle()
	if selected {
		labelStyle = labelStyle.Foreground(HighlightColor).Bold(true)
		valueStyle = valueStyle.Foreground(HighlightColor).Bold(true)
	}

	arrow := "  "
	if selected {
		arrow = "→ "
	}

	var value string
	switch field {
	case order.FieldBrand, order.FieldModel:
		value = m.Controller.Form().Get(field)
		if value == "" {
			value = lipgloss.NewStyle().Foreground(SubtleColor).Render("Select " + strings.ToLower(field.Label()))
		} else {
			value = valueStyle.Render(value)
		}
		value += " ▼"
	default:
		in := m.Inputs[field]
		if m.Editing == EditorText && selected {
			value = InlineEditorStyle().Render(in.View())
		} else if in.Value() == "" {
			value = lipgloss.NewStyle().Foreground(SubtleColor).Render(in.Placeholder)
		} else {
			value = valueStyle.Render(in.Value())
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, arrow, labelStyle.Render(field.Label()), value)
}

func (m FormModel) renderOptionEditor() string {
	lines := make([]string, 0, len(m.OptionEditor.Options))
	for i, option := range m.OptionEditor.Options {
		if i == m.OptionEditor.Cursor {
			lines = append(lines, lipgloss.NewStyle().Foreground(HighlightColor).Bold(true).Render("● "+option))
		} else {
			lines = append(lines, "○ "+option)
		}
	}
	return lipgloss.NewStyle().MarginLeft(2 + LabelWidth).Render(
		InlineEditorStyle().Render(strings.Join(lines, "\n")),
	)
}

func (m FormModel) renderSubmitButton() string {
	style := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	if m.Cursor == RowSubmit {
		style = style.Background(PrimaryColor).Foreground(BackgroundColor)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(style.Render("[Send Order]"))
}

// renderStatus shows the copied banner, or the outcome of a mobile send
func (m FormModel) renderStatus() string {
	if m.Controller.Status() == order.StatusCopied {
		text := "✓ Order details copied! Paste them in the chat that just opened."
		if m.LastResult != nil && !m.LastResult.Dispatch.Copied {
			text = "⚠ Could not copy automatically. Copy the preview below into the chat."
		}
		return CopiedBannerStyle.Render(text + "  (d to dismiss)")
	}

	if m.LastResult == nil || !m.LastResult.Valid || m.LastResult.Dispatch.Path != dispatch.PathMobile {
		return ""
	}
	if !m.LastResult.Dispatch.Opened {
		return NoticeStyle.Render(fmt.Sprintf("⚠ Could not open the chat. Open this link: %s", m.LastResult.Dispatch.URL))
	}
	return SentStyle.Render("✓ Chat opened with your order")
}

func (m FormModel) renderHelpModalContent() string {
	subtitle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Render("ORDER FORM HELP"),
		"",
		subtitle.Render("Fields:"),
		"  Full Name      at least 2 characters",
		"  Mobile Number  at least 10 characters",
		"  Brand, Model   pick from the list; changing brand clears model",
		"  Accessories    optional, added at the end of the message",
		"",
		subtitle.Render("Sending:"),
		"  On a phone the chat opens with the message filled in.",
		"  Elsewhere the message is copied and the chat opens empty;",
		"  paste it in and send.",
		"",
		"Press any key to close this help screen",
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Width(70).
		Render(content)
}
