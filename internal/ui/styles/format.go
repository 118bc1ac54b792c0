package styles

import (
	"fmt"
	"math"
)

// FormatVolume renders the audio indicator shown in the status bar.
func FormatVolume(volume float64, enabled bool) string {
	if !enabled {
		return "♪ muted"
	}
	return fmt.Sprintf("♪ %d%%", int(math.Round(volume*100)))
}
