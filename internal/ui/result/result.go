// Package result provides the dialog announcing a spin's winner.
package result

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/roleta/internal/ui/overlay"
	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/wheel"
)

// Zone IDs for the dialog buttons.
const (
	ZoneSpinAgain = "result-spin-again"
	ZoneClose     = "result-close"
)

// SpinAgainMsg is sent when the user asks for another spin.
type SpinAgainMsg struct{}

// CloseMsg is sent when the dialog is dismissed.
type CloseMsg struct{}

// Model holds the result dialog state.
type Model struct {
	winner     string
	punishment string
	mode       wheel.Mode
	canSpin    bool

	zones          *zone.Manager
	viewportWidth  int
	viewportHeight int
}

// New creates a dialog for res. zones may be nil, which disables mouse
// support.
func New(res wheel.Result, canSpin bool, zones *zone.Manager) Model {
	return Model{
		winner:     res.Winner,
		punishment: res.Punishment,
		mode:       res.Mode,
		canSpin:    canSpin,
		zones:      zones,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetCanSpin toggles the spin-again action, e.g. after participants change.
func (m Model) SetCanSpin(ok bool) Model {
	m.canSpin = ok
	return m
}

// Winner returns the announced entry.
func (m Model) Winner() string {
	return m.winner
}

// Punishment returns the announced punishment text.
func (m Model) Punishment() string {
	return m.punishment
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ", "r":
			if m.canSpin {
				return m, send(SpinAgainMsg{})
			}
		case "esc", "q":
			return m, send(CloseMsg{})
		}
	case tea.MouseMsg:
		if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.canSpin && m.zones.Get(ZoneSpinAgain).InBounds(msg) {
			return m, send(SpinAgainMsg{})
		}
		if m.zones.Get(ZoneClose).InBounds(msg) {
			return m, send(CloseMsg{})
		}
	}
	return m, nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the dialog box (without positioning).
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.MutedStyle.Render("THE WHEEL HAS SPOKEN"))
	b.WriteString("\n\n")
	b.WriteString(styles.WinnerStyle.Render(strings.ToUpper(m.winner)))
	b.WriteString("\n\n")
	if m.mode == wheel.Ban {
		b.WriteString(styles.BannedStyle.Render("⛔ " + m.punishment))
	} else {
		b.WriteString(styles.PunishmentStyle.Render("⏱ " + m.punishment))
	}
	b.WriteString("\n\n")

	spin := styles.PrimaryButtonStyle.Render("Spin again")
	if !m.canSpin {
		spin = styles.MutedButtonStyle.Render("Spin again")
	}
	closeBtn := styles.MutedButtonStyle.Render("Close")
	if m.zones != nil {
		spin = m.zones.Mark(ZoneSpinAgain, spin)
		closeBtn = m.zones.Mark(ZoneClose, closeBtn)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, spin, "  ", closeBtn))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("enter spin again · y copy · esc close"))

	return styles.DialogStyle.Render(b.String())
}

// Overlay renders the dialog centered on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.View()

	if background == "" {
		return lipgloss.Place(
			m.viewportWidth, m.viewportHeight,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}
