// Package banner renders words in three-row block letters.
package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/roleta/internal/ui/styles"
)

// Height is the number of rows every glyph occupies.
const Height = 3

var glyphs = map[rune][]string{
	'A': {"┏━┓", "┣━┫", "╹ ╹"},
	'E': {"┏━╸", "┣╸ ", "┗━╸"},
	'L': {"╻  ", "┃  ", "┗━╸"},
	'N': {"┏┓╻", "┃┗┫", "╹ ╹"},
	'O': {"┏━┓", "┃ ┃", "┗━┛"},
	'R': {"┏━┓", "┣┳┛", "╹┗╸"},
	'S': {"┏━┓", "┗━┓", "┗━┛"},
	'T': {"╺┳╸", " ┃ ", " ╹ "},
	'W': {"╻ ╻", "┃╻┃", "┗┻┛"},
	'H': {"╻ ╻", "┣━┫", "╹ ╹"},
	' ': {"  ", "  ", "  "},
}

// Render draws word in block letters, each letter in the next wheel color.
// Runes without a glyph are skipped.
func Render(word string) string {
	var parts []string
	letter := 0
	for _, r := range strings.ToUpper(word) {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, gap())
		}
		style := lipgloss.NewStyle().Bold(true)
		if r != ' ' {
			style = style.Foreground(styles.WheelColor(letter))
			letter++
		}
		parts = append(parts, style.Render(strings.Join(g, "\n")))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func gap() string {
	return strings.TrimSuffix(strings.Repeat(" \n", Height), "\n")
}
