package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abekenov/taskdep/internal/models"
)

// BoardModel is the TUI model for browsing tasks
type BoardModel struct {
	width  int
	height int

	// Task data
	tasks    []models.Task
	blocked  map[uint]bool
	filtered []models.Task

	// UI state
	selected     int // index in filtered slice
	searchActive bool
	search       textinput.Model

	// Pagination
	currentPage  int
	tasksPerPage int
}

// NewBoardModel creates a new board TUI model
func NewBoardModel(tasks []models.Task, blocked map[uint]bool) BoardModel {
	search := textinput.New()
	search.Placeholder = "search tasks..."
	search.CharLimit = 64

	return BoardModel{
		tasks:        tasks,
		blocked:      blocked,
		filtered:     tasks,
		search:       search,
		tasksPerPage: 20,
	}
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(2) - search(2) - pagination(1) - help(1) = rows
		available := m.height - 6
		if available < 3 {
			available = 3
		}
		m.tasksPerPage = available
		return m, nil

	case tea.KeyMsg:
		if m.searchActive {
			return m.handleSearchKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.currentPage = m.selected / m.tasksPerPage
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.filtered)-1 {
				m.selected++
				m.currentPage = m.selected / m.tasksPerPage
			}
			return m, nil

		case "left", "h":
			if m.currentPage > 0 {
				m.currentPage--
				m.selected = m.currentPage * m.tasksPerPage
			}
			return m, nil

		case "right", "l":
			if (m.currentPage+1)*m.tasksPerPage < len(m.filtered) {
				m.currentPage++
				m.selected = m.currentPage * m.tasksPerPage
			}
			return m, nil

		case "/":
			m.searchActive = true
			m.search.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

// handleSearchKeys handles key input when in search mode
func (m BoardModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchActive = false
		m.search.SetValue("")
		m.search.Blur()
		m.applyFilter()
		return m, nil

	case "enter":
		m.searchActive = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter recomputes the visible task list from the search query
func (m *BoardModel) applyFilter() {
	query := strings.ToLower(m.search.Value())
	if query == "" {
		m.filtered = m.tasks
	} else {
		var filtered []models.Task
		for _, task := range m.tasks {
			if strings.Contains(strings.ToLower(task.Title), query) {
				filtered = append(filtered, task)
			}
		}
		m.filtered = filtered
	}

	if m.selected >= len(m.filtered) {
		m.selected = 0
		m.currentPage = 0
	}
}

// View renders the board
func (m BoardModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	blockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlocked))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	var b strings.Builder
	b.WriteString(headerStyle.Render("taskdep board"))
	b.WriteString("\n\n")

	if m.searchActive || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(doneStyle.Render("no tasks"))
		b.WriteString("\n")
	}

	start := m.currentPage * m.tasksPerPage
	end := start + m.tasksPerPage
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		task := m.filtered[i]
		line := fmt.Sprintf("#%-4d %-12s %s", task.ID, task.Status, task.Title)
		if m.blocked[task.ID] {
			line += blockedStyle.Render("  [blocked]")
		}

		switch {
		case i == m.selected:
			b.WriteString(selectedStyle.Render("> " + line))
		case task.IsComplete():
			b.WriteString(doneStyle.Render("  " + line))
		default:
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) > m.tasksPerPage {
		totalPages := (len(m.filtered) + m.tasksPerPage - 1) / m.tasksPerPage
		b.WriteString(helpStyle.Render(fmt.Sprintf("\npage %d/%d", m.currentPage+1, totalPages)))
	}

	b.WriteString(helpStyle.Render("\n↑/↓ move · ←/→ page · / search · q quit"))
	return b.String()
}
