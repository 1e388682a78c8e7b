package browse

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the issue browser.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail scrolling
	// depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// View switching.
	Open key.Binding // Open the selected issue's detail view.
	Back key.Binding // Return from detail to the list.

	// Filter.
	FilterActivate key.Binding // Focus the search input.
	FilterClear    key.Binding // Clear all filters.
	CycleStatus    key.Binding
	CycleSeverity  key.Binding
	CycleRelease   key.Binding

	// Mutations (detail view).
	UpvoteIssue   key.Binding
	DownvoteIssue key.Binding
	Comment       key.Binding
	Verify        key.Binding // Toggle verified solution on the selected comment.
	MoveToCCR     key.Binding
	AddPath       key.Binding
	RemovePath    key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "page down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open issue"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear filters"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleSeverity: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "severity filter"),
	),
	CycleRelease: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "release filter"),
	),
	UpvoteIssue: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "upvote"),
	),
	DownvoteIssue: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "downvote"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Verify: key.NewBinding(
		key.WithKeys("V"),
		key.WithHelp("V", "verify solution"),
	),
	MoveToCCR: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "move to ccr"),
	),
	AddPath: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add path"),
	),
	RemovePath: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "remove path"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R", "f5"),
		key.WithHelp("R", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
