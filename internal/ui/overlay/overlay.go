// Package overlay composites a foreground box on top of an already rendered
// background view, keeping the background visible around it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position says where the foreground box is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the viewport the overlay is placed in.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY keeps the box away from the top or bottom edge for Top and Bottom.
	PadY int
}

// Place renders fg over bg. Both are multi-line strings that may carry ANSI
// styling. The background is padded or clipped to Width x Height first.
func Place(cfg Config, fg, bg string) string {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fg
	}

	bgLines := normalize(bg, cfg.Width, cfg.Height)
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	fgH := len(fgLines)

	x := max((cfg.Width-fgW)/2, 0)
	var y int
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgH - cfg.PadY
	default:
		y = (cfg.Height - fgH) / 2
	}
	y = max(min(y, cfg.Height-fgH), 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x, cfg.Width)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells [x, x+width(line)) of row with line.
func splice(row, line string, x, width int) string {
	lineW := ansi.StringWidth(line)
	if x+lineW > width {
		line = ansi.Truncate(line, width-x, "")
		lineW = ansi.StringWidth(line)
	}

	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(row, x+lineW, "")
	// Reset styling so the box does not bleed into the rest of the row.
	return left + "\x1b[0m" + line + "\x1b[0m" + right
}

func normalize(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range height {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		w := ansi.StringWidth(line)
		switch {
		case w > width:
			line = ansi.Truncate(line, width, "")
		case w < width:
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return out
}
