package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/roleta/internal/sound"
)

const testConfig = `
audio:
  enabled: false
  player: none
  sample_rate: 8000
wheel:
  spin_duration: 10ms
  fanfare_delay: 1ms
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0600))
	return path
}

// resetFlags puts every flag back to its default so runs do not leak into
// each other through the package-level variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSpin_PrintsWinner(t *testing.T) {
	out, err := runCLI(t, "spin", "--config", writeTestConfig(t), "--duration", "1h", "ana", "bia")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^(ana|bia): Penalty of 1 Hour\n$`), out)
}

func TestSpin_JSONBan(t *testing.T) {
	out, err := runCLI(t, "spin", "--config", writeTestConfig(t), "--mode", "ban", "--json", "ana", "bia", "caio")
	require.NoError(t, err)

	var got spinOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "ban", got.Mode)
	require.Equal(t, "PERMANENTLY BANNED", got.Punishment)
	require.Equal(t, 3, got.Entries)
	require.Empty(t, got.Duration)
	require.NotEmpty(t, got.SpinID)
	require.Contains(t, []string{"ana", "bia", "caio"}, got.Winner)
}

func TestSpin_RoleFlagOverridesConfiguredBan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := testConfig + "defaults:\n  mode: ban\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	out, err := runCLI(t, "spin", "--config", path, "--role", "moderator", "--json", "ana", "bia")
	require.NoError(t, err)

	var got spinOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "timeout", got.Mode)
	require.NotEqual(t, "PERMANENTLY BANNED", got.Punishment)
}

func TestSpin_SingleNameNeedsAlternate(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCLI(t, "spin", "--config", cfgPath, "ana")
	require.ErrorContains(t, err, "need at least 2 entries")

	out, err := runCLI(t, "spin", "--config", cfgPath, "--alternate", "--json", "ana")
	require.NoError(t, err)
	var got spinOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 2, got.Entries)
	require.Contains(t, []string{"ana", "Snake"}, got.Winner)
}

func TestSpin_InvalidFlags(t *testing.T) {
	cfgPath := writeTestConfig(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"moderator ban", []string{"--role", "moderator", "--mode", "ban"}, "cannot ban"},
		{"bad duration", []string{"--duration", "2h"}, "random, 1m, 5m"},
		{"bad role", []string{"--role", "king"}, "role"},
		{"bad spin duration", []string{"--spin-duration=-1s"}, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"spin", "--config", cfgPath}, tt.args...)
			args = append(args, "ana", "bia")
			_, err := runCLI(t, args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSpin_BlankName(t *testing.T) {
	_, err := runCLI(t, "spin", "--config", writeTestConfig(t), "ana", "  ")
	require.ErrorContains(t, err, "cannot be blank")
}

func TestSound_ExportsWAV(t *testing.T) {
	wav := filepath.Join(t.TempDir(), "cues", "win.wav")
	out, err := runCLI(t, "sound", "--config", writeTestConfig(t), "win", "--out", wav)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+wav)

	data, err := os.ReadFile(wav)
	require.NoError(t, err)
	require.Equal(t, "RIFF", string(data[:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
}

func TestSound_UnknownKind(t *testing.T) {
	_, err := runCLI(t, "sound", "--config", writeTestConfig(t), "boom")
	require.ErrorIs(t, err, sound.ErrUnknownKind)
	require.ErrorContains(t, err, "click, error, spin, win, tick")
}

func TestSound_NoPlayer(t *testing.T) {
	_, err := runCLI(t, "sound", "--config", writeTestConfig(t), "click")
	require.ErrorIs(t, err, sound.ErrNoPlayer)
}

func TestInit_WritesAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roleta", "config.yaml")

	out, err := runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)
	require.FileExists(t, path)

	_, err = runCLI(t, "init", "--config", path)
	require.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("audio: [broken"), 0600))
	_, err = runCLI(t, "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfig_PrintsEffectiveConfig(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runCLI(t, "config", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "# source: "+path)
	require.Contains(t, out, "spin_duration: 10ms")
	require.Contains(t, out, "player: none")
}

func TestConfig_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  volume: 3\n"), 0600))
	_, err := runCLI(t, "config", "--config", path)
	require.ErrorContains(t, err, "invalid config")
}

func TestThemes_ListsPresets(t *testing.T) {
	out, err := runCLI(t, "themes", "--config", writeTestConfig(t))
	require.NoError(t, err)
	require.Regexp(t, `(?m)^\* default\s+Default roleta theme$`, out)
	require.Regexp(t, `(?m)^  nord\s+`, out)
	require.Contains(t, out, "dracula")
	require.Contains(t, out, "high-contrast")
}
