package styles

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorToken names one themable color.
type ColorToken string

const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenButtonText    ColorToken = "button.text"
	TokenButtonPrimary ColorToken = "button.primary"
	TokenButtonDanger  ColorToken = "button.danger"
	TokenButtonMuted   ColorToken = "button.muted"

	TokenPointer     ColorToken = "wheel.pointer"
	TokenWheelFiller ColorToken = "wheel.filler"
)

// WheelColors is the number of segment colors in the wheel palette.
const WheelColors = 8

// WheelToken returns the token for segment color i (wheel.0 .. wheel.7).
func WheelToken(i int) ColorToken {
	return ColorToken("wheel." + strconv.Itoa(i))
}

var baseTokens = []ColorToken{
	TokenTextPrimary, TokenTextSecondary, TokenTextMuted,
	TokenStatusSuccess, TokenStatusWarning, TokenStatusError,
	TokenBorderDefault, TokenBorderFocus,
	TokenButtonText, TokenButtonPrimary, TokenButtonDanger, TokenButtonMuted,
	TokenPointer, TokenWheelFiller,
}

// Tokens lists every valid color token.
func Tokens() []ColorToken {
	out := make([]ColorToken, 0, len(baseTokens)+WheelColors)
	out = append(out, baseTokens...)
	for i := range WheelColors {
		out = append(out, WheelToken(i))
	}
	return out
}

func isValidToken(token ColorToken) bool {
	for _, t := range Tokens() {
		if t == token {
			return true
		}
	}
	return false
}

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func isValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ThemeConfig mirrors the theme section of the config file.
type ThemeConfig struct {
	Preset string
	Mode   string // "light", "dark" or "" for terminal detection
	Colors map[string]string
}

// Preset is a named built-in palette.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is applied when no preset is configured, and fills any token
// another preset leaves out.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default roleta theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#8B5CF6",
		TokenButtonText:    "#FFFFFF",
		TokenButtonPrimary: "#7D56F4",
		TokenButtonDanger:  "#EF4444",
		TokenButtonMuted:   "#4B5563",
		TokenPointer:       "#F9FAFB",
		TokenWheelFiller:   "#4B5563",
		"wheel.0":          "#8B5CF6",
		"wheel.1":          "#EF4444",
		"wheel.2":          "#3B82F6",
		"wheel.3":          "#10B981",
		"wheel.4":          "#F59E0B",
		"wheel.5":          "#EC4899",
		"wheel.6":          "#6366F1",
		"wheel.7":          "#14B8A6",
	},
}

// Presets holds every built-in theme by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with vibrant colors",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#F8F8F2",
			TokenTextSecondary: "#BFBFBF",
			TokenTextMuted:     "#6272A4",
			TokenStatusSuccess: "#50FA7B",
			TokenStatusWarning: "#F1FA8C",
			TokenStatusError:   "#FF5555",
			TokenBorderDefault: "#6272A4",
			TokenBorderFocus:   "#BD93F9",
			TokenButtonText:    "#282A36",
			TokenButtonPrimary: "#BD93F9",
			TokenButtonDanger:  "#FF5555",
			TokenButtonMuted:   "#44475A",
			TokenPointer:       "#F8F8F2",
			TokenWheelFiller:   "#44475A",
			"wheel.0":          "#BD93F9",
			"wheel.1":          "#FF5555",
			"wheel.2":          "#8BE9FD",
			"wheel.3":          "#50FA7B",
			"wheel.4":          "#FFB86C",
			"wheel.5":          "#FF79C6",
			"wheel.6":          "#6272A4",
			"wheel.7":          "#F1FA8C",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#ECEFF4",
			TokenTextSecondary: "#D8DEE9",
			TokenTextMuted:     "#4C566A",
			TokenStatusSuccess: "#A3BE8C",
			TokenStatusWarning: "#EBCB8B",
			TokenStatusError:   "#BF616A",
			TokenBorderDefault: "#4C566A",
			TokenBorderFocus:   "#88C0D0",
			TokenButtonText:    "#2E3440",
			TokenButtonPrimary: "#88C0D0",
			TokenButtonDanger:  "#BF616A",
			TokenButtonMuted:   "#434C5E",
			TokenPointer:       "#ECEFF4",
			TokenWheelFiller:   "#434C5E",
			"wheel.0":          "#B48EAD",
			"wheel.1":          "#BF616A",
			"wheel.2":          "#5E81AC",
			"wheel.3":          "#A3BE8C",
			"wheel.4":          "#EBCB8B",
			"wheel.5":          "#D08770",
			"wheel.6":          "#81A1C1",
			"wheel.7":          "#8FBCBB",
		},
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "High contrast for accessibility",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FFFFFF",
			TokenTextSecondary: "#FFFFFF",
			TokenTextMuted:     "#C0C0C0",
			TokenStatusSuccess: "#00FF00",
			TokenStatusWarning: "#FFFF00",
			TokenStatusError:   "#FF0000",
			TokenBorderDefault: "#FFFFFF",
			TokenBorderFocus:   "#FFFF00",
			TokenButtonText:    "#000000",
			TokenButtonPrimary: "#FFFF00",
			TokenButtonDanger:  "#FF0000",
			TokenButtonMuted:   "#C0C0C0",
			TokenPointer:       "#FFFFFF",
			TokenWheelFiller:   "#808080",
			"wheel.0":          "#FF00FF",
			"wheel.1":          "#FF0000",
			"wheel.2":          "#0000FF",
			"wheel.3":          "#00FF00",
			"wheel.4":          "#FFFF00",
			"wheel.5":          "#00FFFF",
			"wheel.6":          "#FF8000",
			"wheel.7":          "#FFFFFF",
		},
	},
}

// PresetNames returns the built-in preset names, default first.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		if name != DefaultPreset.Name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultPreset.Name}, names...)
}

// Color variables used by every style in this package. ApplyTheme replaces
// them; call sites read them at render time.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{}
	TextSecondaryColor = lipgloss.AdaptiveColor{}
	TextMutedColor     = lipgloss.AdaptiveColor{}

	StatusSuccessColor = lipgloss.AdaptiveColor{}
	StatusWarningColor = lipgloss.AdaptiveColor{}
	StatusErrorColor   = lipgloss.AdaptiveColor{}

	BorderDefaultColor = lipgloss.AdaptiveColor{}
	BorderFocusColor   = lipgloss.AdaptiveColor{}

	ButtonTextColor    = lipgloss.AdaptiveColor{}
	ButtonPrimaryColor = lipgloss.AdaptiveColor{}
	ButtonDangerColor  = lipgloss.AdaptiveColor{}
	ButtonMutedColor   = lipgloss.AdaptiveColor{}

	PointerColor     = lipgloss.AdaptiveColor{}
	WheelFillerColor = lipgloss.AdaptiveColor{}

	wheelPalette [WheelColors]lipgloss.AdaptiveColor
)

// WheelColor returns the palette color for segment i, cycling through the
// palette.
func WheelColor(i int) lipgloss.AdaptiveColor {
	return wheelPalette[((i%WheelColors)+WheelColors)%WheelColors]
}

func init() {
	if err := ApplyTheme(ThemeConfig{}); err != nil {
		panic(err)
	}
}

// ApplyTheme resolves the preset and overrides and installs the resulting
// colors. Unknown presets, unknown tokens and malformed colors are errors
// and leave the current theme untouched.
func ApplyTheme(cfg ThemeConfig) error {
	resolved := make(map[ColorToken]string, len(DefaultPreset.Colors))
	for k, v := range DefaultPreset.Colors {
		resolved[k] = v
	}

	if cfg.Preset != "" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q (available: %s)", cfg.Preset, strings.Join(PresetNames(), ", "))
		}
		for k, v := range preset.Colors {
			resolved[k] = v
		}
	}

	for key, value := range cfg.Colors {
		token := ColorToken(strings.ToLower(key))
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token %q", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color %q for %s", value, key)
		}
		resolved[token] = value
	}

	switch cfg.Mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "":
	default:
		return fmt.Errorf("unknown theme mode %q (want light or dark)", cfg.Mode)
	}

	c := func(token ColorToken) lipgloss.AdaptiveColor {
		v := resolved[token]
		return lipgloss.AdaptiveColor{Light: v, Dark: v}
	}

	TextPrimaryColor = c(TokenTextPrimary)
	TextSecondaryColor = c(TokenTextSecondary)
	TextMutedColor = c(TokenTextMuted)
	StatusSuccessColor = c(TokenStatusSuccess)
	StatusWarningColor = c(TokenStatusWarning)
	StatusErrorColor = c(TokenStatusError)
	BorderDefaultColor = c(TokenBorderDefault)
	BorderFocusColor = c(TokenBorderFocus)
	ButtonTextColor = c(TokenButtonText)
	ButtonPrimaryColor = c(TokenButtonPrimary)
	ButtonDangerColor = c(TokenButtonDanger)
	ButtonMutedColor = c(TokenButtonMuted)
	PointerColor = c(TokenPointer)
	WheelFillerColor = c(TokenWheelFiller)
	for i := range WheelColors {
		wheelPalette[i] = c(WheelToken(i))
	}

	rebuildStyles()
	return nil
}
