package setup

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/tui/keymap"
)

// KeyMap defines the keybindings for the setup wizard TUI. It extends the
// shared base map with wizard-only actions.
type KeyMap struct {
	keymap.Base

	ToggleBlur key.Binding
	NextStep   key.Binding
	PrevStep   key.Binding
}

// NewKeyMap builds the wizard keymap from config, falling back to the
// shared defaults.
func NewKeyMap(cfg *config.Config) KeyMap {
	km := KeyMap{
		Base: keymap.Load(cfg, "mira.setup"),
		ToggleBlur: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle blur"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("tab", "ctrl+n"),
			key.WithHelp("tab", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+p"),
			key.WithHelp("S-tab", "previous step"),
		),
	}
	return km
}

// ShortHelp returns keybindings shown in the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Confirm, k.Back, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Confirm, k.Back, k.Edit},
		{k.ToggleBlur, k.NextStep, k.PrevStep},
		{k.Help, k.Quit},
	}
}

// Sections groups the wizard bindings for the help overlay.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NavigationSection(k.Up, k.Down, k.Left, k.Right, k.NextStep, k.PrevStep),
		keymap.SelectionSection(k.Select),
		keymap.ActionsSection(k.Confirm, k.Back, k.Edit, k.ToggleBlur),
		keymap.SystemSection(k.Help, k.Quit),
	}
}
