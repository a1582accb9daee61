// Package tui implements the interactive derivation workbench.
//
// The package is split by concern:
//   - model.go: the bubbletea model, message handling, and derivations
//   - view.go: pane rendering and layout
//   - keypad.go: the virtual keyboard layout and selection
//   - styles.go: lipgloss styles
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/formatter"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/session"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

// Deriver computes a derivation for one expression.
type Deriver interface {
	Compute(input string) *types.Result
	Variable() string
}

type focusArea int

const (
	focusInput focusArea = iota
	focusKeypad
)

const (
	historyPaneWidth = 34
	maxHistoryRows   = 8
	inputCharLimit   = 256
)

// resultMsg carries a finished derivation back into the update loop.
type resultMsg struct {
	input  string
	result *types.Result
}

// Model is the bubbletea model for the workbench.
type Model struct {
	deriver Deriver
	history *session.Log

	input    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	styles   Styles

	focus      focusArea
	keypad     keypad
	lastResult *types.Result

	width     int
	height    int
	ready     bool
	isLoading bool
}

// NewModel builds the workbench around a deriver and a session log.
func NewModel(deriver Deriver, history *session.Log) Model {
	v := deriver.Variable()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = v + "*sin(" + v + "**2)"
	ti.CharLimit = inputCharLimit
	ti.Focus()

	return Model{
		deriver: deriver,
		history: history,
		input:   ti,
		styles:  DefaultStyles(),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, resizes, and finished derivations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.history.Clear()
			m.lastResult = nil
			m.viewport.SetContent(m.welcome())
			return m, nil
		case tea.KeyTab:
			m.toggleFocus()
			return m, nil
		}

		if m.focus == focusKeypad {
			return m.updateKeypad(msg)
		}

		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		if msg.Type == tea.KeyUp && m.input.Value() == "" {
			if entry, ok := m.history.Last(); ok {
				m.input.SetValue(entry.Input)
				m.input.CursorEnd()
			}
			return m, nil
		}
		if !m.isLoading {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case resultMsg:
		m.isLoading = false
		m.lastResult = msg.result
		if msg.result.IsSuccess {
			m.history.Append(msg.input, msg.result)
		}
		m.viewport.SetContent(m.renderResult(msg.result))
		m.viewport.GotoTop()
		m.input.Reset()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusKeypad
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m Model) updateKeypad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.keypad.moveUp()
	case tea.KeyDown:
		m.keypad.moveDown()
	case tea.KeyLeft:
		m.keypad.moveLeft()
	case tea.KeyRight:
		m.keypad.moveRight()
	case tea.KeyEnter:
		m.pressKey(m.keypad.selected())
	case tea.KeyEsc:
		m.focus = focusInput
		m.input.Focus()
	}
	return m, nil
}

func (m *Model) pressKey(k keypadKey) {
	if k.clear {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.input.Value() + k.insert)
	m.input.CursorEnd()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.isLoading {
		return m, nil
	}
	m.isLoading = true
	return m, m.derive(input)
}

func (m Model) derive(input string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{input: input, result: m.deriver.Compute(input)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	resultWidth := width - historyPaneWidth - 6
	if resultWidth < 24 {
		resultWidth = 24
	}
	resultHeight := height - len(keypadRows) - 8
	if resultHeight < 5 {
		resultHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(resultWidth, resultHeight)
		m.viewport.SetContent(m.welcome())
		m.ready = true
	} else {
		m.viewport.Width = resultWidth
		m.viewport.Height = resultHeight
	}
	m.input.Width = width - 8

	// The word wrap is tied to the pane width, so the renderer is
	// rebuilt on every resize.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(resultWidth-2),
	)
	if err == nil {
		m.renderer = renderer
	}
	if m.lastResult != nil {
		m.viewport.SetContent(m.renderResult(m.lastResult))
	}
}

func (m Model) renderResult(result *types.Result) string {
	markdown := formatter.Markdown(result)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(markdown); err == nil {
			return rendered
		}
	}
	return markdown
}
