package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/spending"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Refresher provides the spending snapshot shown on the dashboard.
type Refresher interface {
	RefreshSpending(ctx context.Context) (spending.Snapshot, error)
}

// refreshDoneMsg carries the result of a refresh back into Update.
type refreshDoneMsg struct {
	err  error
	snap spending.Snapshot
	at   time.Time
}

// Model holds the dashboard state.
type Model struct {
	refresher   Refresher
	lastError   error
	keymap      KeyMap
	spinner     spinner.Model
	snapshot    spending.Snapshot
	refreshedAt time.Time
	width       int
	loading     bool
	quitting    bool
}

// NewModel creates a dashboard model that refreshes through the given
// refresher. The initial snapshot is shown until the first refresh lands.
func NewModel(refresher Refresher, initial spending.Snapshot) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return Model{
		refresher: refresher,
		keymap:    DefaultKeyMap(),
		spinner:   s,
		snapshot:  initial,
		loading:   true,
	}
}

// Init kicks off the first refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.refresh())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case refreshDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.snapshot = msg.snap
		m.refreshedAt = msg.at

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("BiggerNumbers")

	rounded := m.snapshot.Rounded()
	rows := lipgloss.JoinVertical(lipgloss.Left,
		m.renderRow("Daily", rounded.Daily),
		m.renderRow("Weekly", rounded.Weekly),
		m.renderRow("Monthly", rounded.Monthly),
	)

	var status string
	switch {
	case m.loading:
		status = m.spinner.View() + " refreshing..."
	case m.lastError != nil:
		status = errorStyle.Render(m.lastError.Error())
	case !m.refreshedAt.IsZero():
		status = helpStyle.Render("updated " + m.refreshedAt.Format("15:04:05"))
	}

	help := helpStyle.Render("r refresh • q quit")

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, rows, status, help))
}

func (m Model) renderRow(label string, amount float64) string {
	return labelStyle.Render(label) + amountStyle.Render(fmt.Sprintf("£%.2f", amount))
}

// refresh runs the refresher off the UI loop.
func (m Model) refresh() tea.Cmd {
	refresher := m.refresher
	return func() tea.Msg {
		snap, err := refresher.RefreshSpending(context.Background())
		return refreshDoneMsg{snap: snap, err: err, at: time.Now()}
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(refresher Refresher, initial spending.Snapshot) error {
	p := tea.NewProgram(NewModel(refresher, initial), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
