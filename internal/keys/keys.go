package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Order list
	NewOrder   key.Binding
	SwitchView key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding

	// Service progress
	Search         key.Binding
	CycleFilter    key.Binding
	ToggleItem     key.Binding
	SelectAll      key.Binding
	ClearSelection key.Binding
	FollowUp       key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NewOrder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new order"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "work orders / annual"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search items"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		ToggleItem: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "select issue"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all issues"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "clear selection"),
		),
		FollowUp: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create follow-up"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.NewOrder,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.NewOrder, k.SwitchView, k.NextTab, k.PrevTab},
		{k.Command, k.Help, k.Search, k.CycleFilter},
		{k.ToggleItem, k.SelectAll, k.ClearSelection, k.FollowUp},
	}
}
