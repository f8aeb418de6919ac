package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/miralabs/mira/tui/keymap"
)

// KeyMap defines the keybindings for the chat composer TUI. Plain keys
// belong to the input field, so every action rides a control chord.
type KeyMap struct {
	Send        key.Binding
	Attach      key.Binding
	ClearAttach key.Binding
	Retry       key.Binding
	Dismiss     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Attach: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "attach"),
	),
	ClearAttach: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear attachment"),
	),
	Retry: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "retry failed"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "dismiss failed"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+j", "pgdown"),
		key.WithHelp("ctrl+j", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// Sections organizes the bindings for help rendering and the keys
// registry.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NewSection("Messages", k.Send, k.Retry, k.Dismiss),
		keymap.NewSection("Attachments", k.Attach, k.ClearAttach),
		keymap.NavigationSection(k.ScrollUp, k.ScrollDown),
		keymap.SystemSection(k.Help, k.Quit),
	}
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Attach, k.Retry, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Attach, k.ClearAttach},
		{k.Retry, k.Dismiss},
		{k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}
