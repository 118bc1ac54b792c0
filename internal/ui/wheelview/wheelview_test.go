package wheelview

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/roleta/internal/wheel"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestSpinEasing_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, SpinEasing.At(-1))
	assert.Equal(t, 0.0, SpinEasing.At(0))
	assert.Equal(t, 1.0, SpinEasing.At(1))
	assert.Equal(t, 1.0, SpinEasing.At(2))
	// Most of the turn is done by the halfway point.
	assert.Greater(t, SpinEasing.At(0.5), 0.5)
}

func TestSpinEasing_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 1).Draw(t, "a")
		b := rapid.Float64Range(0, 1).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		if SpinEasing.At(a) > SpinEasing.At(b)+1e-6 {
			t.Fatalf("At(%v)=%v > At(%v)=%v", a, SpinEasing.At(a), b, SpinEasing.At(b))
		}
	})
}

func TestLinearBezierIsIdentity(t *testing.T) {
	linear := Bezier{X1: 0.25, Y1: 0.25, X2: 0.75, Y2: 0.75}
	for _, x := range []float64{0.1, 0.3, 0.5, 0.9} {
		assert.InDelta(t, x, linear.At(x), 1e-5)
	}
}

func TestSetSize_ClampsRadius(t *testing.T) {
	m := New()
	assert.Equal(t, minRadius, m.SetSize(5, 5).Radius())
	assert.Equal(t, maxRadius, m.SetSize(500, 200).Radius())
	assert.Equal(t, 8, m.SetSize(80, 18).Radius())
}

func TestView_Dimensions(t *testing.T) {
	m := New().SetSize(60, 20).SetEntries([]string{"ana", "bia", "caio"}, false)
	lines := strings.Split(m.View(), "\n")

	r := m.Radius()
	require.Len(t, lines, 2*r+2, "pointer row plus disc")
	width := 4*r + 1
	for i, l := range lines[1:] {
		assert.Equal(t, width, ansi.StringWidth(l), "row %d", i)
	}
	assert.Equal(t, "▼", strings.TrimSpace(lines[0]))
	assert.Equal(t, 2*r, strings.Index(lines[0], "▼"))
}

func TestView_EmptyText(t *testing.T) {
	m := New().SetSize(60, 20).SetEntries([]string{"solo"}, false)
	assert.Contains(t, m.View(), "MINIMUM 2 PARTICIPANTS")

	m = m.SetEmptyText("Ready...")
	assert.Contains(t, m.View(), "READY...")
}

func TestView_LabelsOnDisc(t *testing.T) {
	m := New().SetSize(80, 30).SetEntries([]string{"ana", "bia"}, false)
	out := m.View()
	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "bia")
}

func TestView_WideLabelsKeepRowWidth(t *testing.T) {
	m := New().SetSize(80, 30).SetEntries([]string{"日本語", "한국어", "emoji🎉"}, false)
	lines := strings.Split(m.View(), "\n")
	for i, l := range lines[1:] {
		assert.Equal(t, 4*m.Radius()+1, ansi.StringWidth(l), "row %d", i)
	}
}

func TestSegment_MatchesEngine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 20).Draw(t, "n")
		rot := rapid.Float64Range(0, 5000).Draw(t, "rotation")
		entries := make([]string, n)
		for i := range entries {
			entries[i] = "x"
		}
		m := New().SetEntries(entries, false).SetRotation(rot)
		if m.Segment() != wheel.WinningIndex(rot, n) {
			t.Fatalf("segment %d, engine %d", m.Segment(), wheel.WinningIndex(rot, n))
		}
	})
}

func TestSegmentAt_TopCellIsPointerSegment(t *testing.T) {
	m := New().SetEntries([]string{"a", "b", "c", "d"}, false)
	for _, rot := range []float64{0, 45, 91, 200, 359} {
		m = m.SetRotation(rot)
		// Just below the pointer, slightly right of center to avoid the boundary.
		assert.Equal(t, m.Segment(), m.segmentAt(0.001, -1), "rotation %v", rot)
	}
}

func TestAnimate_ReachesTargetAndStops(t *testing.T) {
	start := time.Unix(0, 0)
	m := New().SetEntries([]string{"a", "b", "c", "d"}, false)
	m = m.Animate(1891, 4*time.Second, start)
	require.True(t, m.Animating())

	m, _ = m.Advance(start.Add(2 * time.Second))
	assert.True(t, m.Animating())
	assert.Greater(t, m.Rotation(), 0.0)
	assert.Less(t, m.Rotation(), 1891.0)

	m, _ = m.Advance(start.Add(4 * time.Second))
	assert.False(t, m.Animating())
	assert.Equal(t, 1891.0, m.Rotation())
	assert.Equal(t, wheel.WinningIndex(1891, 4), m.Segment())
}

func TestAdvance_ReportsSegmentChanges(t *testing.T) {
	start := time.Unix(0, 0)
	m := New().SetEntries([]string{"a", "b", "c", "d"}, false).Animate(360*5, 4*time.Second, start)

	changes := 0
	for f := 1; f <= 120; f++ {
		var changed bool
		m, changed = m.Advance(start.Add(time.Duration(f) * 4 * time.Second / 120))
		if changed {
			changes++
		}
	}
	// Five turns over four segments cross at least a dozen boundaries even
	// when fast frames skip some.
	assert.GreaterOrEqual(t, changes, 12)
	assert.False(t, m.Animating())
}

func TestAdvance_IdleIsNoop(t *testing.T) {
	m := New().SetEntries([]string{"a", "b"}, false).SetRotation(10)
	m2, changed := m.Advance(time.Now())
	assert.False(t, changed)
	assert.Equal(t, 10.0, m2.Rotation())
}

func TestAnimate_ZeroLengthJumps(t *testing.T) {
	m := New().Animate(90, 0, time.Now())
	assert.False(t, m.Animating())
	assert.Equal(t, 90.0, m.Rotation())
}

func TestLegend(t *testing.T) {
	m := New().SetEntries(wheel.Expand([]string{"ana", "bia"}, true, "Snake"), true)
	lines := strings.Split(ansi.Strip(m.Legend(20, 2)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  ■ ana", lines[0])
	assert.Equal(t, "  ■ Snake", lines[1])
	assert.Equal(t, "▶ ■ bia", lines[2])

	assert.Empty(t, New().Legend(20, 0))
}

func TestLegend_TruncatesLongNames(t *testing.T) {
	m := New().SetEntries([]string{strings.Repeat("n", 40), "b"}, false)
	first := strings.Split(ansi.Strip(m.Legend(12, -1)), "\n")[0]
	assert.LessOrEqual(t, ansi.StringWidth(first), 12)
	assert.True(t, strings.HasSuffix(first, "…"))
}
