package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func grid(w, h int, ch string) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(ch, w)
	}
	return strings.Join(rows, "\n")
}

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 10, Height: 5}, "AB\nCD", grid(10, 5, "."))
	lines := plainLines(out)

	require.Len(t, lines, 5)
	require.Equal(t, "..........", lines[0])
	require.Equal(t, "....AB....", lines[1])
	require.Equal(t, "....CD....", lines[2])
	require.Equal(t, "..........", lines[4])
}

func TestPlace_TopAndBottom(t *testing.T) {
	top := plainLines(Place(Config{Width: 6, Height: 4, Position: Top, PadY: 1}, "XX", grid(6, 4, ".")))
	require.Equal(t, "..XX..", top[1])

	bottom := plainLines(Place(Config{Width: 6, Height: 4, Position: Bottom}, "XX", grid(6, 4, ".")))
	require.Equal(t, "..XX..", bottom[3])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	lines := plainLines(Place(Config{Width: 6, Height: 3}, "X", "ab"))
	require.Len(t, lines, 3)
	for _, l := range lines {
		require.Equal(t, 6, ansi.StringWidth(l))
	}
	require.Equal(t, "ab    ", lines[0])
	require.Equal(t, "  X   ", lines[1])
}

func TestPlace_ClipsWideForeground(t *testing.T) {
	lines := plainLines(Place(Config{Width: 4, Height: 1}, "123456", "...."))
	require.Equal(t, "1234", lines[0])
}

func TestPlace_KeepsStyledBackgroundWidth(t *testing.T) {
	bg := "\x1b[31m" + strings.Repeat("r", 8) + "\x1b[0m"
	out := Place(Config{Width: 8, Height: 1}, "GG", bg)
	require.Equal(t, "rrrGGrrr", plainLines(out)[0])
}

func TestPlace_ZeroViewportReturnsForeground(t *testing.T) {
	require.Equal(t, "box", Place(Config{}, "box", "bg"))
}
