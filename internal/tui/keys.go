package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the run list and the editor drawer.
type KeyMap struct {
	// List.
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Reload key.Binding

	// Drawer.
	NextField        key.Binding
	PrevField        key.Binding
	CycleBack        key.Binding // Status and partner selects.
	CycleForward     key.Binding
	AcceptSuggestion key.Binding // Location input.
	Save             key.Binding
	Delete           key.Binding
	Close            key.Binding

	Quit key.Binding
}

// DefaultKeyMap pairs vim-style list movement with arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "previous field"),
	),
	CycleBack: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous option"),
	),
	CycleForward: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next option"),
	),
	AcceptSuggestion: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "use suggestion"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "delete"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
