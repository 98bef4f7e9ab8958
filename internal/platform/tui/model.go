package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pet/internal/core"
	"github.com/vovakirdan/tui-pet/internal/pet"
)

// helpRows is the space reserved under the scene for the help bar.
const helpRows = 2

// Options configures the pet screen.
type Options struct {
	Runtime       core.RuntimeConfig
	HistoryRows   int    // Journal entries shown in the history view
	ScreenshotDir string // Where ctrl+s writes screen dumps; empty disables
}

// DefaultOptions returns options for a standard terminal.
func DefaultOptions() Options {
	return Options{
		Runtime:     core.DefaultConfig(),
		HistoryRows: defaultHistory,
	}
}

// Model is the Bubble Tea model for the pet screen.
type Model struct {
	session     *pet.Session
	feedback    *Feedback // nil when cues are not drawn
	history     HistoryModel
	screen      *core.Screen
	opts        Options
	keys        KeyMap
	help        help.Model
	state       pet.State
	fx          FeedbackState
	frame       int
	showHistory bool
	quitting    bool
	status      string // One-line message under the scene
}

// NewModel creates a model bound to a running session.
// history and feedback may be nil.
func NewModel(session *pet.Session, history HistorySource, feedback *Feedback, opts Options) Model {
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		session:  session,
		feedback: feedback,
		history:  NewHistoryModel(history, opts.HistoryRows, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH-helpRows),
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     h,
		state:    session.State(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The bell belongs to the frame right after the tick that picked it up
	if _, ok := msg.(TickMsg); !ok {
		m.fx.Bell = false
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.history.Reload()
		}
		return m, nil

	case msg.String() == "ctrl+s":
		m.status = m.saveScreenshot()
		return m, nil
	}

	if m.showHistory {
		if key.Matches(msg, m.keys.Up, m.keys.Down) {
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if a := m.keys.ActionFor(msg); a != pet.ActionNone {
		res := m.session.Apply(a)
		m.state = res.After
		m.status = statusFor(res)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
	m.history.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick picks up decay changes and advances feedback cues.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.frame++
	m.state = m.session.State()
	if m.feedback != nil {
		m.fx = m.feedback.Advance()
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// statusFor describes the outcome of a user action.
func statusFor(res pet.Result) string {
	if !res.Applied {
		if res.Action == pet.ActionGiveTreat {
			return "No treats left!"
		}
		return ""
	}
	delta := res.After.Happiness - res.Before.Happiness
	if delta == 0 {
		return fmt.Sprintf("%s: your pet can't get any %s", res.Action, direction(res.Action))
	}
	return fmt.Sprintf("%s: %+d", res.Action, delta)
}

func direction(a pet.Action) string {
	if a == pet.ActionSwipe {
		return "sadder"
	}
	return "happier"
}

// saveScreenshot writes the current scene as text and returns a status line.
func (m *Model) saveScreenshot() string {
	if m.opts.ScreenshotDir == "" {
		return "screenshots are disabled"
	}

	m.renderScene()

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}
	filename := fmt.Sprintf("pet_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// renderScene draws the pet into the screen buffer.
func (m *Model) renderScene() {
	RenderScene(m.screen, Scene{
		State:    m.state,
		Rules:    m.session.Rules(),
		Feedback: m.fx,
		Frame:    m.frame,
	})
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.status, core.ColorGray)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.fx.Bell {
		b.WriteByte('\a')
	}
	if m.showHistory {
		b.WriteString(m.history.View())
	} else {
		m.renderScene()
		b.WriteString(RenderScreen(m.screen))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Run starts the Bubble Tea program for the session and blocks until the
// user quits. The caller still owns the session and must Close it.
func Run(session *pet.Session, history HistorySource, feedback *Feedback, opts Options) error {
	model := NewModel(session, history, feedback, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
