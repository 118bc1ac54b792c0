// Package helpview renders the keyboard reference as markdown in a
// scrollable panel.
package helpview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/ui/styles"
)

// CloseMsg is sent when the help screen is dismissed.
type CloseMsg struct{}

// Reference is the keyboard and mouse reference shown by the help screen.
const Reference = `# Roleta

Spin the wheel to pick who gets punished.

## Wheel

| Key | Action |
|-----|--------|
| enter / space | Spin the wheel |
| a / i | Add a participant |
| ↑ / ↓ | Select a participant |
| x / delete | Remove the selected participant |
| c | Clear the participant list |

## Punishment

| Key | Action |
|-----|--------|
| r | Cycle your role (moderators cannot ban) |
| m | Toggle timeout / ban |
| d | Cycle the timeout length |
| s | Alternate mode: a filler entry after every participant |

## Audio

| Key | Action |
|-----|--------|
| M | Mute / unmute |
| + / - | Volume up / down |

## Result

| Key | Action |
|-----|--------|
| enter | Spin again |
| y | Copy the result |
| esc | Close |

Buttons and the ✕ next to each participant also respond to mouse clicks.

Press **?** or **esc** to close this screen, **q** to quit.
`

// Model holds the help screen state.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	rendered string
}

// New creates a help screen.
func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

// SetSize renders the reference for the new width and resizes the viewport.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-2, 1)

	if out, err := Render(Reference, m.viewport.Width); err != nil {
		log.ErrorErr(log.CatUI, "Rendering help failed", err)
		m.rendered = Reference
	} else {
		m.rendered = out
	}
	m.viewport.SetContent(m.rendered)
	return m
}

// Render turns markdown into styled terminal text wrapped at width.
func Render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q":
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the bordered, scrollable reference.
func (m Model) View() string {
	return styles.Panel(m.viewport.View(), "Help", scrollIndicator(m.viewport), m.width, m.height, true)
}

// scrollIndicator shows how far down the reference the viewport is, or
// nothing when it all fits.
func scrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtBottom() {
		return "end"
	}
	return fmt.Sprintf("%d%% ↓", int(vp.ScrollPercent()*100))
}
