// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles rebuilt by ApplyTheme.
var (
	TitleStyle     lipgloss.Style
	TextStyle      lipgloss.Style
	SecondaryStyle lipgloss.Style
	MutedStyle     lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
	SuccessStyle   lipgloss.Style

	// Participant list
	SelectedStyle lipgloss.Style
	FillerStyle   lipgloss.Style
	RemoveStyle   lipgloss.Style

	// Buttons
	PrimaryButtonStyle lipgloss.Style
	DangerButtonStyle  lipgloss.Style
	MutedButtonStyle   lipgloss.Style
	ToggleOnStyle      lipgloss.Style
	ToggleOffStyle     lipgloss.Style

	// Wheel
	PointerStyle lipgloss.Style

	// Result dialog
	DialogStyle     lipgloss.Style
	WinnerStyle     lipgloss.Style
	PunishmentStyle lipgloss.Style
	BannedStyle     lipgloss.Style
)

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	SecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)
	FillerStyle = lipgloss.NewStyle().Italic(true).Foreground(TextMutedColor)
	RemoveStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	button := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ButtonTextColor)
	PrimaryButtonStyle = button.Background(ButtonPrimaryColor)
	DangerButtonStyle = button.Background(ButtonDangerColor)
	MutedButtonStyle = button.Background(ButtonMutedColor)
	ToggleOnStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ButtonTextColor).Background(BorderFocusColor)
	ToggleOffStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(TextSecondaryColor)

	PointerStyle = lipgloss.NewStyle().Bold(true).Foreground(PointerColor)

	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocusColor).
		Padding(1, 3).
		Align(lipgloss.Center)
	WinnerStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	PunishmentStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusWarningColor)
	BannedStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)
}

// SegmentStyle colors a wheel segment. Filler entries share one muted color
// so they read as gaps between participants.
func SegmentStyle(index int, filler bool) lipgloss.Style {
	if filler {
		return lipgloss.NewStyle().Foreground(WheelFillerColor)
	}
	return lipgloss.NewStyle().Foreground(WheelColor(index))
}
