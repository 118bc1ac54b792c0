// Package wheelview draws the selection wheel as a colored disc of terminal
// cells and animates it between rotations.
//
// The disc is laid out clockwise from the top, the same frame the engine
// uses, so the segment under the ▼ pointer is always wheel.WinningIndex of
// the displayed rotation.
package wheelview

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/wheel"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

const (
	minRadius = 3
	maxRadius = 14
	// hubRatio is the share of the radius covered by the center hub.
	hubRatio = 0.2
	// labelRatio places labels this far out from the center.
	labelRatio = 0.62
	// maxLabelled is the largest wheel that still gets labels on the disc.
	maxLabelled = 16
)

// FrameMsg drives the spin animation.
type FrameMsg struct {
	Time time.Time
}

// Tick schedules the next animation frame.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

type animation struct {
	from, to float64
	start    time.Time
	length   time.Duration
}

// Model holds the wheel drawing state.
type Model struct {
	entries   []string
	alternate bool
	radius    int

	rotation float64
	anim     *animation

	emptyText string
}

// New creates a wheel view with the smallest radius.
func New() Model {
	return Model{radius: minRadius, emptyText: "Minimum 2 participants"}
}

// SetSize fits the disc into width x height cells, leaving one row for the
// pointer.
func (m Model) SetSize(width, height int) Model {
	byHeight := (height - 2) / 2
	byWidth := int(float64(width-1) / (2 * cellAspect))
	m.radius = max(min(byHeight, byWidth, maxRadius), minRadius)
	return m
}

// Radius is the disc radius in rows.
func (m Model) Radius() int {
	return m.radius
}

// SetEntries replaces the drawn sequence. In alternate mode every odd entry
// is the filler and is drawn muted.
func (m Model) SetEntries(entries []string, alternate bool) Model {
	m.entries = append([]string(nil), entries...)
	m.alternate = alternate
	return m
}

// SetEmptyText sets the message shown when the wheel cannot be drawn.
func (m Model) SetEmptyText(s string) Model {
	m.emptyText = s
	return m
}

// SetRotation jumps to rotation and stops any animation.
func (m Model) SetRotation(rotation float64) Model {
	m.rotation = rotation
	m.anim = nil
	return m
}

// Rotation returns the displayed rotation.
func (m Model) Rotation() float64 {
	return m.rotation
}

// Animate starts turning from the displayed rotation to target over length.
func (m Model) Animate(target float64, length time.Duration, now time.Time) Model {
	if length <= 0 {
		return m.SetRotation(target)
	}
	m.anim = &animation{from: m.rotation, to: target, start: now, length: length}
	return m
}

// Animating reports whether a spin animation is in progress.
func (m Model) Animating() bool {
	return m.anim != nil
}

// Advance moves the animation to now. It reports whether the segment under
// the pointer changed, which is when a tick cue plays.
func (m Model) Advance(now time.Time) (Model, bool) {
	if m.anim == nil {
		return m, false
	}
	before := m.Segment()

	elapsed := now.Sub(m.anim.start)
	progress := float64(elapsed) / float64(m.anim.length)
	if progress >= 1 {
		m.rotation = m.anim.to
		m.anim = nil
	} else {
		eased := SpinEasing.At(max(progress, 0))
		m.rotation = m.anim.from + (m.anim.to-m.anim.from)*eased
	}

	return m, m.Segment() != before
}

// Segment is the index of the entry under the pointer, or -1 when empty.
func (m Model) Segment() int {
	return wheel.WinningIndex(m.rotation, len(m.entries))
}

func (m Model) isFiller(i int) bool {
	return m.alternate && i%2 == 1
}

type cell struct {
	text  string
	style lipgloss.Style
	skip  bool // covered by the wide cell to its left
	label bool
}

// View renders the pointer row and the disc.
func (m Model) View() string {
	width := int(math.Round(2*float64(m.radius)*cellAspect)) + 1
	height := 2*m.radius + 1
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2

	pointer := strings.Repeat(" ", int(cx)) + styles.PointerStyle.Render("▼")

	if len(m.entries) < wheel.MinEntries {
		return pointer + "\n" + m.emptyDisc(width, height)
	}

	grid := make([][]cell, height)
	r := float64(m.radius)
	hub := styles.MutedStyle
	for y := range height {
		grid[y] = make([]cell, width)
		for x := range width {
			dx := (float64(x) - cx) / cellAspect
			dy := float64(y) - cy
			d := math.Hypot(dx, dy)
			switch {
			case d > r+0.25:
				grid[y][x] = cell{text: " ", style: lipgloss.NewStyle()}
			case d < r*hubRatio:
				grid[y][x] = cell{text: "●", style: hub}
			default:
				i := m.segmentAt(dx, dy)
				grid[y][x] = cell{text: "█", style: styles.SegmentStyle(i, m.isFiller(i))}
			}
		}
	}

	if len(m.entries) <= maxLabelled {
		m.placeLabels(grid, cx, cy)
	}

	var b strings.Builder
	b.WriteString(pointer)
	for _, row := range grid {
		b.WriteString("\n")
		for _, c := range row {
			if c.skip {
				continue
			}
			b.WriteString(c.style.Render(c.text))
		}
	}
	return b.String()
}

// segmentAt maps a disc offset (in rows) to the entry drawn there.
func (m Model) segmentAt(dx, dy float64) int {
	screen := math.Atan2(dx, -dy) * 180 / math.Pi
	local := wheel.NormalizeAngle(screen - m.rotation)
	seg := 360 / float64(len(m.entries))
	return int(local/seg) % len(m.entries)
}

func (m Model) placeLabels(grid [][]cell, cx, cy float64) {
	n := len(m.entries)
	seg := 360 / float64(n)
	r := float64(m.radius)
	maxW := max(int(r*cellAspect*0.7), 3)

	for i, name := range m.entries {
		mid := (float64(i)*seg + seg/2 + m.rotation) * math.Pi / 180
		lx := cx + math.Sin(mid)*r*labelRatio*cellAspect
		ly := cy - math.Cos(mid)*r*labelRatio

		label := runewidth.Truncate(name, maxW, "…")
		w := runewidth.StringWidth(label)
		row := int(math.Round(ly))
		col := int(math.Round(lx - float64(w)/2))
		if row < 0 || row >= len(grid) {
			continue
		}

		style := lipgloss.NewStyle().Bold(true).Foreground(styles.ButtonTextColor)
		if m.isFiller(i) {
			style = style.Background(styles.WheelFillerColor).Italic(true)
		} else {
			style = style.Background(styles.WheelColor(i))
		}
		writeLabel(grid[row], col, label, style)
	}
}

// writeLabel places label's grapheme clusters into row starting at col.
// Cells outside the disc or already taken by another label are left alone.
func writeLabel(row []cell, col int, label string, style lipgloss.Style) {
	g := uniseg.NewGraphemes(label)
	for g.Next() {
		w := g.Width()
		if w > 0 && free(row, col, w) {
			row[col] = cell{text: g.Str(), style: style, label: true}
			for k := 1; k < w; k++ {
				row[col+k] = cell{skip: true, label: true}
			}
		}
		col += w
	}
}

func free(row []cell, col, w int) bool {
	if col < 0 || col+w > len(row) {
		return false
	}
	for k := range w {
		c := row[col+k]
		if c.label || c.skip || c.text == " " {
			return false
		}
	}
	return true
}

func (m Model) emptyDisc(width, height int) string {
	ring := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(styles.TextMutedColor).
		Bold(true)
	return ring.Render(strings.ToUpper(m.emptyText))
}

// Legend lists the entries with their segment colors, one per line,
// marking the highlighted index.
func (m Model) Legend(width, highlight int) string {
	if len(m.entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, name := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := "  "
		if i == highlight {
			marker = styles.PointerStyle.Render("▶ ")
		}
		swatch := styles.SegmentStyle(i, m.isFiller(i)).Render("■")
		label := runewidth.Truncate(name, max(width-4, 1), "…")
		if m.isFiller(i) {
			label = styles.FillerStyle.Render(label)
		}
		b.WriteString(marker + swatch + " " + label)
	}
	return b.String()
}
