package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abekenov/taskdep/internal/models"
)

// RunBoardTUI starts the interactive task board
func RunBoardTUI(tasks []models.Task, blocked map[uint]bool) error {
	model := NewBoardModel(tasks, blocked)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
