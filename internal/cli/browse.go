package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// statusCycle is the order the tab key walks through status filters.
var statusCycle = []query.StatusFilter{query.FilterAll, query.FilterActive, query.FilterCompleted}

// sortCycle is the order the s key walks through sort keys.
var sortCycle = []query.SortKey{query.SortDueDate, query.SortPriority, query.SortCreatedAt, query.SortTitle}

// Style definitions.
var (
	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	browseBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	browseCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("240"))

	browseDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	priHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	priMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	browseErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	browseHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// viewChangedMsg tells the model the orchestrator's derived state moved.
type viewChangedMsg struct{}

type browseModel struct {
	orch *core.Orchestrator

	search    string
	searching bool
	statusIdx int
	sortIdx   int
	cursor    int

	width  int
	height int
	err    error
}

func newBrowseModel(orch *core.Orchestrator) browseModel {
	return browseModel{orch: orch}
}

func (m browseModel) Init() tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		_ = orch.LoadTasks() // Failure lands in the snapshot as Failed.
		return viewChangedMsg{}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case viewChangedMsg:
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		return m, nil
	case "backspace":
		if m.search != "" {
			m.search = m.search[:len(m.search)-1]
			m.orch.SetSearch(m.search)
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.search += string(msg.Runes)
			// Debounced: a burst of keystrokes evaluates once.
			m.orch.SetSearch(m.search)
		}
		return m, nil
	}
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.orch.Snapshot()

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(view.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case "tab":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		m.orch.SetFilters(statusCycle[m.statusIdx], "")
		m.clampCursor()
		return m, nil

	case "s":
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		m.orch.SetFilters("", sortCycle[m.sortIdx])
		return m, nil

	case " ":
		if t, ok := m.selected(view); ok {
			orch := m.orch
			completed := t.Status != models.StatusCompleted
			id := t.ID
			return m, func() tea.Msg {
				_, _ = orch.ToggleComplete(id, completed)
				return viewChangedMsg{}
			}
		}
		return m, nil

	case "d":
		if t, ok := m.selected(view); ok {
			orch := m.orch
			id := t.ID
			return m, func() tea.Msg {
				_ = orch.DeleteTask(id)
				return viewChangedMsg{}
			}
		}
		return m, nil

	case "r":
		orch := m.orch
		return m, func() tea.Msg {
			_ = orch.LoadTasks()
			return viewChangedMsg{}
		}
	}
	return m, nil
}

func (m browseModel) selected(view core.View) (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(view.Tasks) {
		return models.Task{}, false
	}
	return view.Tasks[m.cursor], true
}

func (m *browseModel) clampCursor() {
	n := len(m.orch.Snapshot().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m browseModel) View() string {
	view := m.orch.Snapshot()

	var b []string
	b = append(b, browseTitleStyle.Render("TaskFlow"))

	bar := fmt.Sprintf("%d total · %d active · %d completed   filter:%s   sort:%s",
		view.Stats.Total, view.Stats.Active, view.Stats.Completed,
		statusCycle[m.statusIdx], sortCycle[m.sortIdx])
	b = append(b, browseBarStyle.Render(bar))

	if m.searching {
		b = append(b, fmt.Sprintf("search: %s▌", m.search))
	} else if m.search != "" {
		b = append(b, browseBarStyle.Render("search: "+m.search))
	}
	b = append(b, "")

	switch view.State {
	case core.StateLoading, core.StateUninitialized:
		b = append(b, "Loading tasks…")
	case core.StateFailed:
		b = append(b, browseErrStyle.Render("Failed to load tasks: "+view.Err))
		b = append(b, browseHelpStyle.Render("press r to retry"))
	default:
		if len(view.Tasks) == 0 {
			b = append(b, "No tasks match.")
		}
		for i, t := range view.Tasks {
			b = append(b, m.renderTask(t, i == m.cursor))
		}
	}

	b = append(b, "")
	b = append(b, browseHelpStyle.Render("↑/↓ move · space toggle · d delete · / search · tab filter · s sort · r reload · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

func (m browseModel) renderTask(t models.Task, selected bool) string {
	check := "[ ]"
	if t.Status == models.StatusCompleted {
		check = "[x]"
	}
	due := ""
	if t.DueDate != nil {
		due = "  due " + t.DueDate.Format("2006-01-02")
	}

	line := fmt.Sprintf("%s %-3d %s%s", check, t.ID, t.Title, due)
	pri := priStyle(t.Priority).Render(string(t.Priority))

	switch {
	case selected:
		return browseCursorStyle.Render(line) + "  " + pri
	case t.Status == models.StatusCompleted:
		return browseDoneStyle.Render(line) + "  " + pri
	default:
		return line + "  " + pri
	}
}

func priStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priHighStyle
	case models.PriorityLow:
		return priLowStyle
	default:
		return priMediumStyle
	}
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tasks interactively",
	Long: `Open the interactive task browser: live search with debounced
evaluation, status filter and sort cycling, and inline toggle/delete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Orch == nil {
			return fmt.Errorf("orchestrator not initialized")
		}

		p := tea.NewProgram(newBrowseModel(Orch), tea.WithAltScreen())
		// Repaint whenever a debounced evaluation or async mutation lands.
		Orch.SetOnChange(func() {
			p.Send(viewChangedMsg{})
		})
		defer Orch.SetOnChange(nil)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running task browser: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
