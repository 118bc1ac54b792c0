package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Rounded border pieces.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

const ellipsis = "..."

// Panel renders content inside a rounded border of exactly width x height
// cells. title sits on the left of the top border and hint on the right;
// either may be empty. The border takes the focus color when focused.
func Panel(content, title, hint string, width, height int, focused bool) string {
	borderColor := lipgloss.TerminalColor(BorderDefaultColor)
	if focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	label := lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	muted := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	body := lipgloss.NewStyle().Width(inner).Height(rows).MaxHeight(rows).Render(content)
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(topBorder(title, hint, inner, border, label, muted))
	for i := range rows {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w > inner {
			line = truncate.String(line, uint(inner))
		} else if w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		b.WriteString("\n")
		b.WriteString(border.Render(borderVertical) + line + border.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

// topBorder lays out ╭─ title ───── hint ─╮. The hint is dropped first when
// space runs out, then the title is shortened.
func topBorder(title, hint string, inner int, border, label, muted lipgloss.Style) string {
	plain := border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	if title == "" && hint == "" {
		return plain
	}

	titleW := lipgloss.Width(title)
	hintW := lipgloss.Width(hint)

	// "─ " + title + " " ... " " + hint + " ─"
	need := 0
	if title != "" {
		need += titleW + 3
	}
	if hint != "" {
		need += hintW + 3
	}
	if need+1 > inner && hint != "" {
		hint, hintW = "", 0
		need = titleW + 3
	}
	if title != "" && need+1 > inner {
		room := inner - 4
		if room < 1 {
			return plain
		}
		title = TruncateString(title, room)
		titleW = lipgloss.Width(title)
		need = titleW + 3
	}
	if title == "" && hint == "" {
		return plain
	}

	fill := max(inner-need, 1)

	var b strings.Builder
	b.WriteString(border.Render(borderTopLeft))
	if title != "" {
		b.WriteString(border.Render(borderHorizontal + " "))
		b.WriteString(label.Render(title))
		b.WriteString(border.Render(" "))
	}
	b.WriteString(border.Render(strings.Repeat(borderHorizontal, fill)))
	if hint != "" {
		b.WriteString(border.Render(" "))
		b.WriteString(muted.Render(hint))
		b.WriteString(border.Render(" " + borderHorizontal))
	}
	b.WriteString(border.Render(borderTopRight))
	return b.String()
}

// TruncateString shortens s to maxWidth cells, ending in "..." when cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return strings.Repeat(".", maxWidth)
	}
	return truncate.StringWithTail(s, uint(maxWidth), ellipsis)
}
