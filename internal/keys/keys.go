// Package keys defines the key bindings used across roleta's screens.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are bindings shared by every screen.
type CommonKeys struct {
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// Common holds the shared bindings.
var Common = CommonKeys{
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// RouletteKeys are the bindings of the wheel screen.
type RouletteKeys struct {
	Spin       key.Binding
	Add        key.Binding
	Submit     key.Binding
	Up         key.Binding
	Down       key.Binding
	Remove     key.Binding
	Role       key.Binding
	Mode       key.Binding
	Duration   key.Binding
	Alternate  key.Binding
	Clear      key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Copy       key.Binding
}

// Roulette holds the wheel screen bindings.
var Roulette = RouletteKeys{
	Spin:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "spin")),
	Add:        key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add name")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Remove:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Role:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "role")),
	Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Duration:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duration")),
	Alternate:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "alternate")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Mute:       key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "mute")),
	VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "vol up")),
	VolumeDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "vol down")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
}

// ShortHelp implements help.KeyMap.
func (k RouletteKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.Add, k.Remove, k.Role, k.Mode, k.Duration, k.Mute, Common.Help, Common.Quit}
}

// FullHelp implements help.KeyMap.
func (k RouletteKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spin, k.Add, k.Up, k.Down, k.Remove, k.Clear},
		{k.Role, k.Mode, k.Duration, k.Alternate},
		{k.Mute, k.VolumeUp, k.VolumeDown, k.Copy},
		{Common.Help, Common.Quit},
	}
}

// InputHelp is shown while the name input has focus.
func InputHelp() []key.Binding {
	return []key.Binding{Roulette.Submit, Common.Escape}
}
