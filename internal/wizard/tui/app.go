package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/orderdesk/internal/order"
)

// ControllerFactory builds a fresh controller for each new order
type ControllerFactory func() *order.Controller

// AppModel is the top-level model. It owns global keys and replaces the
// form with a fresh one when the user starts a new order.
type AppModel struct {
	Form FormModel

	newController ControllerFactory
	orders        int
	lastSeen      *order.SubmitResult

	Width  int
	Height int
}

// NewAppModel creates the application with an empty form
func NewAppModel(factory ControllerFactory) AppModel {
	return AppModel{
		Form:          NewFormModel(factory()),
		newController: factory,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update handles global messages and routes the rest to the form
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "n" && m.Form.Submitted && m.Form.Editing == EditorNone && !m.Form.ShowingHelp {
			return m.newOrder()
		}
	}

	updated, cmd := m.Form.Update(msg)
	m.Form = updated.(FormModel)
	if res := m.Form.LastResult; res != nil && res != m.lastSeen {
		m.lastSeen = res
		if res.Valid {
			m.orders++
		}
	}
	return m, cmd
}

// Orders returns the number of orders sent so far
func (m AppModel) Orders() int {
	return m.orders
}

func (m AppModel) newOrder() (tea.Model, tea.Cmd) {
	form := NewFormModel(m.newController())
	form.Width = m.Width
	form.Height = m.Height
	m.Form = form
	return m, form.Init()
}

// View renders the current form
func (m AppModel) View() string {
	return m.Form.View()
}

// Run starts the full-screen form and blocks until the user quits.
// It returns the number of orders sent.
func Run(factory ControllerFactory) (int, error) {
	final, err := tea.NewProgram(NewAppModel(factory), tea.WithAltScreen()).Run()
	if err != nil {
		return 0, fmt.Errorf("order form: %w", err)
	}
	return final.(AppModel).Orders(), nil
}
