package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ROLETA_AUDIO_VOLUME.
const EnvPrefix = "ROLETA"

// keyDelimiter keeps dotted color tokens such as "text.primary" intact as
// single map keys.
const keyDelimiter = "::"

// LoadDotEnv loads environment variables from the given .env files, or
// ./.env when none are given. Missing files are not an error and variables
// already set in the process win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file at path (or config.yaml in DefaultDir when path
// is empty), layers it over Defaults and applies ROLETA_* environment
// overrides. It returns the validated config and the file actually used,
// which is empty when no file was found at the default location.
func Load(path string) (Config, string, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Parse decodes YAML content layered over Defaults. Environment overrides
// are not applied.
func Parse(content []byte) (Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v, "", Defaults().Settings())
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v, "", Defaults().Settings())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Theme.Colors == nil {
		cfg.Theme.Colors = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every leaf so AutomaticEnv can override it. Color
// overrides stay a single map-valued key.
func setDefaults(v *viper.Viper, prefix string, settings map[string]any) {
	for k, val := range settings {
		key := k
		if prefix != "" {
			key = prefix + keyDelimiter + k
		}
		if nested, ok := val.(map[string]any); ok && key != "theme"+keyDelimiter+"colors" {
			setDefaults(v, key, nested)
			continue
		}
		v.SetDefault(key, val)
	}
}

// Settings returns the config as nested maps keyed like the YAML file, with
// durations rendered as strings.
func (c Config) Settings() map[string]any {
	colors := make(map[string]any, len(c.Theme.Colors))
	for k, v := range c.Theme.Colors {
		colors[k] = v
	}
	return map[string]any{
		"defaults": map[string]any{
			"role":      c.Defaults.Role,
			"mode":      c.Defaults.Mode,
			"duration":  c.Defaults.Duration,
			"alternate": c.Defaults.Alternate,
		},
		"wheel": map[string]any{
			"filler":        c.Wheel.Filler,
			"spin_duration": c.Wheel.SpinDuration.String(),
			"fanfare_delay": c.Wheel.FanfareDelay.String(),
			"min_turns":     c.Wheel.MinTurns,
		},
		"audio": map[string]any{
			"enabled":     c.Audio.Enabled,
			"volume":      c.Audio.Volume,
			"player":      c.Audio.Player,
			"sample_rate": c.Audio.SampleRate,
		},
		"ui": map[string]any{
			"show_help_bar":  c.UI.ShowHelpBar,
			"frame_interval": c.UI.FrameInterval.String(),
		},
		"theme": map[string]any{
			"preset": c.Theme.Preset,
			"mode":   c.Theme.Mode,
			"colors": colors,
		},
		"tracing": map[string]any{
			"exporter": c.Tracing.Exporter,
			"file":     c.Tracing.File,
			"endpoint": c.Tracing.Endpoint,
		},
		"log": map[string]any{
			"file":  c.Log.File,
			"level": c.Log.Level,
		},
	}
}

// MarshalYAML renders the effective config in the same shape Load reads.
func (c Config) MarshalYAML() (any, error) {
	return c.Settings(), nil
}

// Dump returns the effective config as YAML.
func Dump(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
