package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/session"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive derivation workbench in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		engine, _ := buildEngine()

		model := tui.NewModel(engine, session.NewLog())
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			logger.Fatal("TUI failed", zap.Error(err))
		}
	},
}
