// Package config provides configuration types, defaults and loading for roleta.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/wheel"
)

// Config holds all configuration options for roleta.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Wheel    WheelConfig    `mapstructure:"wheel"`
	Audio    AudioConfig    `mapstructure:"audio"`
	UI       UIConfig       `mapstructure:"ui"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Log      LogConfig      `mapstructure:"log"`
}

// DefaultsConfig is the wheel configuration a session starts with.
type DefaultsConfig struct {
	Role      string `mapstructure:"role"`     // moderator|admin|manager|owner
	Mode      string `mapstructure:"mode"`     // timeout|ban
	Duration  string `mapstructure:"duration"` // random|1m|5m|10m|1h|1d|1w
	Alternate bool   `mapstructure:"alternate"`
}

// WheelConfig tunes the spin itself.
type WheelConfig struct {
	Filler       string        `mapstructure:"filler"`
	SpinDuration time.Duration `mapstructure:"spin_duration"`
	FanfareDelay time.Duration `mapstructure:"fanfare_delay"`
	MinTurns     int           `mapstructure:"min_turns"`
}

// AudioConfig holds audio feedback options.
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"`
	Player     string  `mapstructure:"player"` // auto|paplay|aplay|play|none
	SampleRate int     `mapstructure:"sample_rate"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowHelpBar   bool          `mapstructure:"show_help_bar"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Keys use dot notation: "text.primary", "wheel.3", etc.
	Colors map[string]string `mapstructure:"colors"`
}

// Styles converts the section into the form styles.ApplyTheme takes.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Mode: t.Mode, Colors: t.Colors}
}

// TracingConfig selects where spin spans are exported.
type TracingConfig struct {
	Exporter string `mapstructure:"exporter"` // none|stdout|otlp
	File     string `mapstructure:"file"`     // stdout exporter target; empty means discard
	Endpoint string `mapstructure:"endpoint"` // otlp grpc endpoint
}

// LogConfig holds debug log options.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Exporter names accepted by tracing.exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	exporters = []string{ExporterNone, ExporterStdout, ExporterOTLP}
	logLevels = []string{"debug", "info", "warn", "error"}
	themeMode = []string{"", "light", "dark"}
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Defaults: DefaultsConfig{
			Role:     wheel.Owner.String(),
			Mode:     wheel.Timeout.String(),
			Duration: wheel.DurationRandom.String(),
		},
		Wheel: WheelConfig{
			Filler:       wheel.DefaultFiller,
			SpinDuration: wheel.DefaultSpinDuration,
			FanfareDelay: wheel.DefaultFanfareDelay,
			MinTurns:     wheel.DefaultMinTurns,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     sound.DefaultVolume,
			Player:     "auto",
			SampleRate: sound.DefaultSampleRate,
		},
		UI: UIConfig{
			ShowHelpBar:   true,
			FrameInterval: 33 * time.Millisecond,
		},
		Theme: ThemeConfig{
			Colors: map[string]string{},
		},
		Tracing: TracingConfig{
			Exporter: ExporterNone,
			Endpoint: "localhost:4317",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors. All problems are reported
// together.
func (c Config) Validate() error {
	var errs []error

	role, roleErr := wheel.ParseRole(c.Defaults.Role)
	if roleErr != nil {
		errs = append(errs, fmt.Errorf("defaults.role: %w", roleErr))
	}
	mode, err := wheel.ParseMode(c.Defaults.Mode)
	if err != nil {
		errs = append(errs, fmt.Errorf("defaults.mode: %w", err))
	} else if mode == wheel.Ban && roleErr == nil && !role.CanBan() {
		errs = append(errs, fmt.Errorf("defaults.mode: role %s cannot ban", role))
	}
	if _, err := wheel.ParseDuration(c.Defaults.Duration); err != nil {
		errs = append(errs, fmt.Errorf("defaults.duration: %w", err))
	}

	if strings.TrimSpace(c.Wheel.Filler) == "" {
		errs = append(errs, errors.New("wheel.filler: must not be empty"))
	}
	if c.Wheel.SpinDuration <= 0 {
		errs = append(errs, fmt.Errorf("wheel.spin_duration: must be positive, got %s", c.Wheel.SpinDuration))
	}
	if c.Wheel.FanfareDelay <= 0 {
		errs = append(errs, fmt.Errorf("wheel.fanfare_delay: must be positive, got %s", c.Wheel.FanfareDelay))
	}
	if c.Wheel.MinTurns <= 0 {
		errs = append(errs, fmt.Errorf("wheel.min_turns: must be positive, got %d", c.Wheel.MinTurns))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: must be within [0,1], got %g", c.Audio.Volume))
	}
	if !validPlayer(c.Audio.Player) {
		errs = append(errs, fmt.Errorf("audio.player: unknown player %q", c.Audio.Player))
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must be within [8000,192000], got %d", c.Audio.SampleRate))
	}

	if c.UI.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("ui.frame_interval: must be positive, got %s", c.UI.FrameInterval))
	}
	if !slices.Contains(themeMode, c.Theme.Mode) {
		errs = append(errs, fmt.Errorf("theme.mode: want light, dark or empty, got %q", c.Theme.Mode))
	}

	if !slices.Contains(exporters, c.Tracing.Exporter) {
		errs = append(errs, fmt.Errorf("tracing.exporter: want one of %s, got %q", strings.Join(exporters, ", "), c.Tracing.Exporter))
	}
	if c.Tracing.Exporter == ExporterOTLP && c.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("tracing.endpoint: required for the otlp exporter"))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: want one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level))
	}

	return errors.Join(errs...)
}

func validPlayer(name string) bool {
	switch name {
	case "", "auto", "none":
		return true
	}
	for _, p := range sound.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// EngineOptions converts the wheel settings into engine options. Invalid
// values fall back to the engine defaults; call Validate first to surface
// them.
func (c Config) EngineOptions(fb wheel.Feedback) wheel.Options {
	opts := wheel.Options{
		Feedback:     fb,
		SpinDuration: c.Wheel.SpinDuration,
		FanfareDelay: c.Wheel.FanfareDelay,
		MinTurns:     c.Wheel.MinTurns,
		Filler:       c.Wheel.Filler,
		Role:         wheel.Owner,
		Alternate:    c.Defaults.Alternate,
	}
	if r, err := wheel.ParseRole(c.Defaults.Role); err == nil {
		opts.Role = r
	}
	if m, err := wheel.ParseMode(c.Defaults.Mode); err == nil {
		opts.Mode = m
	}
	if d, err := wheel.ParseDuration(c.Defaults.Duration); err == nil {
		opts.Duration = d
	}
	return opts
}

// SoundOptions converts the audio settings into sound unit options.
func (c Config) SoundOptions() sound.Options {
	return sound.Options{
		Enabled:    c.Audio.Enabled,
		Volume:     c.Audio.Volume,
		SampleRate: c.Audio.SampleRate,
		Output:     sound.ConfiguredOutput(c.Audio.Player, c.Audio.SampleRate),
		SpinLength: c.Wheel.SpinDuration,
	}
}

// DefaultDir returns the directory searched for config.yaml when no path
// is given.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "roleta")
	}
	return filepath.Join(".", ".roleta")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Roleta Configuration

# Wheel settings a session starts with
defaults:
  role: owner          # moderator | admin | manager | owner (moderators cannot ban)
  mode: timeout        # timeout | ban
  duration: random     # random | 1m | 5m | 10m | 1h | 1d | 1w
  alternate: false     # insert the filler entry after every participant

# Spin tuning
wheel:
  filler: Snake        # entry used by alternate mode
  spin_duration: 4s    # how long the wheel turns; the spin sound follows it
  fanfare_delay: 100ms # pause between the result and the win cue
  min_turns: 5         # full turns added to every spin

# Audio feedback
audio:
  enabled: true
  volume: 0.5          # 0.0 - 1.0, applies to tones already playing
  player: auto         # auto | paplay | aplay | play | none
  sample_rate: 44100

# UI settings
ui:
  show_help_bar: true     # Show key hints at the bottom
  frame_interval: 33ms    # Wheel animation frame interval

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset (run 'roleta themes' to see available presets):
  preset: ""
  #
  # Available presets:
  #   default        - Default roleta theme
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   wheel.0: "#FF0000"

# Tracing: one span per spin
tracing:
  exporter: none       # none | stdout | otlp
  # file: /tmp/roleta-spans.json   # stdout exporter target
  # endpoint: localhost:4317       # otlp grpc collector

# Debug log (also enabled with --debug)
log:
  # file: /tmp/roleta.log
  level: info          # debug | info | warn | error

# Every key can be overridden from the environment with the ROLETA_ prefix,
# e.g. ROLETA_AUDIO_VOLUME=0.2 or ROLETA_DEFAULTS_MODE=ban. A .env file in
# the working directory is loaded first.
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
