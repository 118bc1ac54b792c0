package roulette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/roleta/internal/keys"
	"github.com/zjrosen/roleta/internal/ui/banner"
	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/wheel"
)

const (
	settingsRows = 5
	minLeftWidth = 28
	maxLeftWidth = 40
	maxLegend    = 22
	labelWidth   = 10

	minScreenWidth  = 56
	minScreenHeight = 16
)

type layout struct {
	leftWidth      int
	rightWidth     int
	bodyHeight     int
	settingsHeight int
	listHeight     int
	wheelWidth     int
	wheelHeight    int
	legendWidth    int
}

func (m Model) layout() layout {
	footer := 1
	if m.cfg.UI.ShowHelpBar {
		footer++
	}

	var l layout
	l.settingsHeight = settingsRows + 2
	l.bodyHeight = max(m.height-footer, l.settingsHeight+5)
	l.listHeight = l.bodyHeight - l.settingsHeight
	l.leftWidth = min(max(m.width/3, minLeftWidth), maxLeftWidth)
	l.rightWidth = max(m.width-l.leftWidth, 24)

	inner := l.rightWidth - 2
	l.legendWidth = min(maxLegend, inner/3)
	l.wheelWidth = max(inner-l.legendWidth-2, 1)
	// Two rows below the wheel hold the buttons.
	l.wheelHeight = max(l.bodyHeight-4, 1)
	return l
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return m.scan(m.helpView.View())
	}
	if m.width < minScreenWidth || m.height < minScreenHeight {
		return m.tooSmallView()
	}

	l := m.layout()
	st := m.engine.State()

	left := lipgloss.JoinVertical(lipgloss.Left,
		styles.Panel(m.settingsView(st, l.leftWidth-2), "Settings", "", l.leftWidth, l.settingsHeight, false),
		styles.Panel(m.participantsView(st, l.leftWidth-2, l.listHeight-2),
			"Participants", fmt.Sprint(len(st.Participants)),
			l.leftWidth, l.listHeight, m.focus == focusInput),
	)
	right := styles.Panel(m.wheelPanelView(st, l), "Wheel", punishmentSummary(st),
		l.rightWidth, l.bodyHeight, m.focus == focusCommands)

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, left, right), m.statusLine()}
	if m.cfg.UI.ShowHelpBar {
		if m.focus == focusInput {
			parts = append(parts, m.helpBar.ShortHelpView(keys.InputHelp()))
		} else {
			parts = append(parts, m.helpBar.View(keys.Roulette))
		}
	}
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.dialog != nil {
		view = m.dialog.Overlay(view)
	}
	return m.scan(view)
}

func (m Model) tooSmallView() string {
	msg := styles.MutedStyle.Render(fmt.Sprintf("Terminal too small (need %dx%d)", minScreenWidth, minScreenHeight))
	body := lipgloss.JoinVertical(lipgloss.Center, banner.Render("roleta"), "", msg)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) scan(s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Scan(s)
}

func (m Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func punishmentSummary(st wheel.State) string {
	if st.Mode == wheel.Ban {
		return wheel.BannedText
	}
	return "Penalty: " + st.Duration.Label()
}

func settingRow(label, value string) string {
	return styles.MutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)) + value
}

func (m Model) settingsView(st wheel.State, width int) string {
	timeout := styles.ToggleOffStyle.Render(wheel.Timeout.Label())
	ban := styles.ToggleOffStyle.Render(wheel.Ban.Label())
	switch st.Mode {
	case wheel.Timeout:
		timeout = styles.ToggleOnStyle.Render(wheel.Timeout.Label())
	case wheel.Ban:
		ban = styles.ToggleOnStyle.Background(styles.ButtonDangerColor).Render(wheel.Ban.Label())
	}
	if !st.Role.CanBan() {
		ban = styles.MutedStyle.Strikethrough(true).Padding(0, 1).Render(wheel.Ban.Label())
	}

	duration := styles.TextStyle.Render(st.Duration.Label())
	if st.Mode == wheel.Ban {
		duration = styles.MutedStyle.Render("n/a")
	}

	alternate := styles.MutedStyle.Render("off")
	if st.Alternate {
		alternate = styles.SuccessStyle.Render("on") + styles.MutedStyle.Render(" ("+m.filler()+")")
	}

	rows := []string{
		settingRow("Role", styles.TextStyle.Render(st.Role.Label())),
		settingRow("Mode", m.mark(ZoneTimeout, timeout)+" "+m.mark(ZoneBan, ban)),
		settingRow("Duration", duration),
		settingRow("Alternate", alternate),
		settingRow("Audio", styles.SecondaryStyle.Render(styles.FormatVolume(m.audio.Volume(), m.audio.Enabled()))),
	}
	for i, r := range rows {
		if lipgloss.Width(r) > width {
			rows[i] = styles.TruncateString(r, width)
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) filler() string {
	if m.cfg.Wheel.Filler != "" {
		return m.cfg.Wheel.Filler
	}
	return wheel.DefaultFiller
}

func (m Model) participantsView(st wheel.State, width, rows int) string {
	var b strings.Builder
	if m.focus == focusInput {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(styles.MutedStyle.Render("press a to add a name"))
	}
	b.WriteString("\n")

	avail := rows - 1
	if len(st.Participants) == 0 {
		b.WriteString(styles.MutedStyle.Render("Empty list"))
		return b.String()
	}

	start := 0
	if m.selected >= avail {
		start = m.selected - avail + 1
	}
	end := min(start+avail, len(st.Participants))
	nameWidth := max(width-4, 1)

	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		name := styles.TruncateString(st.Participants[i], nameWidth)
		name += strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))
		marker := "  "
		if i == m.selected && m.focus == focusCommands {
			marker = styles.SelectedStyle.Render("▶ ")
			name = styles.SelectedStyle.Render(name)
		} else {
			name = styles.TextStyle.Render(name)
		}
		b.WriteString(marker + name + " " + m.mark(ZoneRemove(i), styles.RemoveStyle.Render("✕")))
	}
	return b.String()
}

func (m Model) wheelPanelView(st wheel.State, l layout) string {
	inner := l.rightWidth - 2
	disc := lipgloss.PlaceHorizontal(l.wheelWidth, lipgloss.Center, m.wheel.View())
	legend := clipLines(m.wheel.Legend(l.legendWidth, m.wheel.Segment()), l.wheelHeight)
	top := lipgloss.JoinHorizontal(lipgloss.Top, disc, "  ", legend)

	var spin string
	switch {
	case st.Spinning:
		spin = styles.MutedButtonStyle.Render("Spinning...")
	case st.CanSpin():
		spin = styles.PrimaryButtonStyle.Render("[ SPIN ]")
	default:
		spin = styles.MutedButtonStyle.Render("[ SPIN ]")
	}
	clearBtn := styles.MutedButtonStyle.Render("[ CLEAR ]")
	buttons := m.mark(ZoneSpin, spin) + "  " + m.mark(ZoneClear, clearBtn)

	return top + "\n\n" + lipgloss.PlaceHorizontal(inner, lipgloss.Center, buttons)
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	text := styles.TruncateString(m.status, max(m.width, 1))
	if m.statusErr {
		return styles.ErrorStyle.Render(text)
	}
	return styles.SecondaryStyle.Render(text)
}
