package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestRoulette_NoKeyBoundTwice(t *testing.T) {
	seen := map[string]string{}
	for _, group := range Roulette.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestRoulette_EveryBindingHasHelp(t *testing.T) {
	for _, group := range Roulette.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
}

func TestRoulette_MatchesKeyMessages(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"space spins", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Roulette.Spin},
		{"enter spins", tea.KeyMsg{Type: tea.KeyEnter}, Roulette.Spin},
		{"shift m mutes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'M'}}, Roulette.Mute},
		{"m toggles mode", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, Roulette.Mode},
		{"delete removes", tea.KeyMsg{Type: tea.KeyDelete}, Roulette.Remove},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, Common.Quit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'M'}}, Roulette.Mode))
}
