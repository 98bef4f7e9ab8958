package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pet/internal/storage"
)

// History layout constants
const (
	historyChrome  = 8  // Rows taken by title, borders and help
	historyTimeout = 2 * time.Second
	defaultHistory = 50 // Entries to load when no limit is configured
)

// HistorySource lists journaled actions, newest first.
type HistorySource interface {
	RecentActions(ctx context.Context, limit int) ([]storage.ActionEntry, error)
}

// HistoryModel shows the action journal as a scrollable table.
type HistoryModel struct {
	source  HistorySource // nil when running without a database
	limit   int
	entries []storage.ActionEntry
	err     error
	table   table.Model
	width   int
	height  int
}

// NewHistoryModel creates a history view. source may be nil.
func NewHistoryModel(source HistorySource, limit, width, height int) HistoryModel {
	if limit <= 0 {
		limit = defaultHistory
	}
	m := HistoryModel{
		source: source,
		limit:  limit,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 14},
		{Title: "Action", Width: 12},
		{Title: "Δ", Width: 5},
		{Title: "Happiness", Width: 10},
		{Title: "Treats", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload fetches the newest entries from the source.
func (m *HistoryModel) Reload() {
	if m.source == nil {
		m.entries = nil
		m.updateTableRows()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	m.entries, m.err = m.source.RecentActions(ctx, m.limit)
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded entries.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			e.CreatedAt.Local().Format("Jan 02 15:04"),
			e.Action.String(),
			fmt.Sprintf("%+d", e.Delta),
			fmt.Sprintf("%d", e.Happiness),
			fmt.Sprintf("%d", e.Treats),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Resize rebuilds the table for a new window size.
func (m *HistoryModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
}

// Update passes scrolling keys to the table.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Len returns the number of loaded entries.
func (m HistoryModel) Len() int {
	return len(m.entries)
}

// View renders the table or an empty message.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RECENT ACTIONS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.tableContent())))
	return b.String()
}

// tableContent renders the table or a placeholder.
func (m HistoryModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("History is unavailable.\nThe pet is running without a database.")
	case m.err != nil:
		return emptyStyle.Render("Could not load history:\n" + m.err.Error())
	case len(m.entries) == 0:
		return emptyStyle.Render("Nothing here yet.\nPet your pet to start a history!")
	}
	return m.table.View()
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
