package banner

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRender_Shape(t *testing.T) {
	out := Render("roleta")
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, Height)
	for _, l := range lines {
		// Six glyphs three cells wide with five one-cell gaps.
		require.Equal(t, 23, ansi.StringWidth(l))
	}
	require.Equal(t, "┏━┓ ┏━┓ ╻   ┏━╸ ╺┳╸ ┏━┓", lines[0])
}

func TestRender_SkipsUnknownRunes(t *testing.T) {
	require.Equal(t, ansi.Strip(Render("ro")), ansi.Strip(Render("r?o")))
	require.Empty(t, Render("???"))
}

func TestGlyphs_AreRectangular(t *testing.T) {
	for r, g := range glyphs {
		require.Len(t, g, Height, "glyph %q", r)
		for _, row := range g {
			require.Equal(t, ansi.StringWidth(g[0]), ansi.StringWidth(row), "glyph %q", r)
		}
	}
}
