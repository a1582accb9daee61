package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/session"
)

func newTestModel(t *testing.T) (Model, *session.Log) {
	t.Helper()
	engine, err := internal.NewEngine("x", "u")
	require.NoError(t, err)
	history := session.NewLog()
	return NewModel(engine, history), history
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestTypingReachesInput(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3*x")})

	assert.Equal(t, "3*x", m.input.Value())
}

func TestSubmitRecordsSuccessfulDerivation(t *testing.T) {
	m, history := newTestModel(t)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m.input.SetValue("3*x**2")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)

	msg := cmd()
	res, ok := msg.(resultMsg)
	require.True(t, ok)
	require.True(t, res.result.IsSuccess)

	m, _ = apply(t, m, msg)

	assert.False(t, m.isLoading)
	assert.Equal(t, 1, history.Len())
	assert.Empty(t, m.input.Value())
	require.NotNil(t, m.lastResult)
	assert.Equal(t, `x^{3} + C`, m.lastResult.FinalAnswer)
}

func TestSubmitFailureIsNotRecorded(t *testing.T) {
	m, history := newTestModel(t)

	m.input.SetValue("exp(-x**2)")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = apply(t, m, cmd())

	assert.Equal(t, 0, history.Len())
	require.NotNil(t, m.lastResult)
	assert.False(t, m.lastResult.IsSuccess)
}

func TestSubmitIgnoresEmptyInput(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.isLoading)
}

func TestUpArrowRecallsLastInput(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("cos(x)")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	require.Empty(t, m.input.Value())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyUp})

	assert.Equal(t, "cos(x)", m.input.Value())
}

func TestUpArrowKeepsTypedText(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("cos(x)")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())

	m.input.SetValue("3*")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyUp})

	assert.Equal(t, "3*", m.input.Value())
}

func TestTabTogglesKeypadFocus(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusKeypad, m.focus)
	assert.False(t, m.input.Focused())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.input.Focused())
}

func TestKeypadPressInsertsToken(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "sin(", m.input.Value())
}

func TestKeypadClearEmptiesInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.input.SetValue("3*x**2")

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < 3; i++ {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	for i := 0; i < 3; i++ {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	require.Equal(t, "Clear", m.keypad.selected().label)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.input.Value())
}

func TestKeypadSelectionStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})

	for i := 0; i < 10; i++ {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.keypad.row)

	for i := 0; i < 10; i++ {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 3, m.keypad.col)

	for i := 0; i < 10; i++ {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.keypad.row)
}

func TestEscapeReturnsFocusToInput(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.input.Focused())
}

func TestCtrlLClearsHistory(t *testing.T) {
	m, history := newTestModel(t)

	m.input.SetValue("cos(x)")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	require.Equal(t, 1, history.Len())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, 0, history.Len())
	assert.Nil(t, m.lastResult)
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsPanesAfterResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()

	assert.Contains(t, view, "workbench")
	assert.Contains(t, view, "sin")
	assert.Contains(t, view, "Clear")
	assert.Contains(t, view, "History")
	assert.Contains(t, view, "ctrl+l: clear history")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "untouc", truncate("untouc", 6))
	assert.Equal(t, "a ver...", truncate("a very long expression", 8))
}
