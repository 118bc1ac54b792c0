package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	assert.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	assert.Equal(t, "#8B5CF6", WheelColor(0).Dark)
	assert.Equal(t, "#14B8A6", WheelColor(7).Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	Presets["test"] = Preset{
		Name:   "test",
		Colors: map[ColorToken]string{TokenTextPrimary: "#FF0000"},
	}
	defer delete(Presets, "test")

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "test"}))
	assert.Equal(t, "#FF0000", TextPrimaryColor.Dark)
	// Tokens the preset omits come from the default preset.
	assert.Equal(t, DefaultPreset.Colors[TokenStatusError], StatusErrorColor.Dark)
}

func TestApplyTheme_OverrideBeatsPreset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "dracula",
		Colors: map[string]string{
			"text.primary": "#00FF00",
			"wheel.3":      "#ABCDEF",
		},
	}))
	assert.Equal(t, "#00FF00", TextPrimaryColor.Dark)
	assert.Equal(t, "#ABCDEF", WheelColor(3).Dark)
	assert.Equal(t, Presets["dracula"].Colors[TokenTextSecondary], TextSecondaryColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	tests := []struct {
		name string
		cfg  ThemeConfig
		want string
	}{
		{"unknown preset", ThemeConfig{Preset: "solarized"}, "unknown theme preset"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"wheel.8": "#FFFFFF"}}, "unknown color token"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"text.primary": "red"}}, "invalid hex color"},
		{"bad mode", ThemeConfig{Mode: "sepia"}, "unknown theme mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := TextPrimaryColor
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, before, TextPrimaryColor, "failed apply must not change colors")
		})
	}
}

func TestWheelColor_Cycles(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	assert.Equal(t, WheelColor(0), WheelColor(WheelColors))
	assert.Equal(t, WheelColor(7), WheelColor(-1))
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		token ColorToken
		valid bool
	}{
		{TokenTextPrimary, true},
		{TokenPointer, true},
		{WheelToken(0), true},
		{WheelToken(7), true},
		{WheelToken(8), false},
		{ColorToken("priority.critical"), false},
		{ColorToken(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidToken(tt.token))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#8B5CF6", true},
		{"#abcdef", true},
		{"8B5CF6", false},
		{"#FF", false},
		{"#8B5CF60", false},
		{"#GGGGGG", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
