package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pet/internal/pet"
)

// KeyMap defines the key bindings for the pet screen.
type KeyMap struct {
	MakeHappy key.Binding
	Swipe     key.Binding
	Pet       key.Binding
	Treat     key.Binding
	History   key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MakeHappy, k.Swipe, k.Pet, k.Treat, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MakeHappy, k.Swipe, k.Pet, k.Treat},
		{k.History, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		MakeHappy: key.NewBinding(
			key.WithKeys("h", "enter"),
			key.WithHelp("h/enter", "make happy"),
		),
		Swipe: key.NewBinding(
			key.WithKeys("s", "x"),
			key.WithHelp("s", "swipe"),
		),
		Pet: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pet"),
		),
		Treat: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "give treat"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ActionFor maps a key press to a pet action.
// Returns pet.ActionNone for keys that are not pet actions.
func (k KeyMap) ActionFor(msg tea.KeyMsg) pet.Action {
	switch {
	case key.Matches(msg, k.MakeHappy):
		return pet.ActionMakeHappy
	case key.Matches(msg, k.Swipe):
		return pet.ActionSwipe
	case key.Matches(msg, k.Pet):
		return pet.ActionPet
	case key.Matches(msg, k.Treat):
		return pet.ActionGiveTreat
	}
	return pet.ActionNone
}
