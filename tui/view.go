package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View lays out the title, result and history panes, the keypad, the
// input line, and the key hints.
func (m Model) View() string {
	if !m.ready {
		return "\n  Starting workbench..."
	}

	title := m.styles.Title.Render("integen  |  d/d" + m.deriver.Variable() + " workbench")

	result := m.styles.ResultPane.Render(m.viewport.View())
	history := m.styles.HistoryPane.
		Width(historyPaneWidth).
		Height(m.viewport.Height).
		Render(m.renderHistory())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, result, history)

	input := m.styles.InputLine.Render(m.input.View())
	if m.isLoading {
		input = m.styles.InputLine.Render("deriving...")
	}

	help := m.styles.Help.Render(
		"tab: keypad  enter: solve  up: recall  ctrl+l: clear history  ctrl+c: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		panes,
		m.renderKeypad(),
		input,
		help,
	)
}

func (m Model) renderKeypad() string {
	rows := make([]string, 0, len(keypadRows))
	for r, row := range keypadRows {
		cells := make([]string, 0, len(row))
		for c, k := range row {
			style := m.styles.Key
			if m.focus == focusKeypad && m.keypad.row == r && m.keypad.col == c {
				style = m.styles.KeySelected
			}
			cells = append(cells, style.Render(k.label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHistory() string {
	entries := m.history.Entries()
	if len(entries) == 0 {
		return "History\n\n(empty)"
	}

	var b strings.Builder
	b.WriteString("History\n\n")
	start := 0
	if len(entries) > maxHistoryRows {
		start = len(entries) - maxHistoryRows
	}
	for i := len(entries) - 1; i >= start; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncate(e.Input, historyPaneWidth-8))
		if e.Result != nil {
			fmt.Fprintf(&b, "   = %s\n", truncate(e.Result.FinalAnswer, historyPaneWidth-10))
		}
	}
	return b.String()
}

func (m Model) welcome() string {
	v := m.deriver.Variable()
	return strings.Join([]string{
		"Type an integrand and press enter to derive its indefinite integral.",
		"",
		"  " + v + "*sin(" + v + "**2)",
		"  3*" + v + "**2 + 2*" + v,
		"  1/(2*" + v + " + 1)",
		"",
		"Tab moves to the keypad; arrow keys pick a button, enter presses it.",
	}, "\n")
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
