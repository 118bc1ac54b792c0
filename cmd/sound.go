package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/roleta/internal/sound"
)

var soundOut string

var soundCmd = &cobra.Command{
	Use:       "sound KIND",
	Short:     "Play a sound cue or render it to a WAV file",
	Long:      "Play one of the cues (" + kindList() + ") through the configured audio player, or write it to a WAV file with --out.",
	Example:   "  roleta sound win\n  roleta sound spin --out spin.wav",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runSound,
}

func init() {
	soundCmd.Flags().StringVarP(&soundOut, "out", "o", "", "write the cue to this WAV file instead of playing it")
	rootCmd.AddCommand(soundCmd)
}

func kindNames() []string {
	var names []string
	for _, k := range sound.Kinds() {
		names = append(names, k.String())
	}
	return names
}

func kindList() string {
	return strings.Join(kindNames(), ", ")
}

func runSound(cmd *cobra.Command, args []string) error {
	kind, err := sound.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (want one of %s)", err, kindList())
	}

	if soundOut != "" {
		return exportCue(cmd.OutOrStdout(), kind, soundOut)
	}

	opts := cfg.SoundOptions()
	opts.Enabled = true
	unit := sound.New(opts)
	defer closeAudio(unit)

	unit.Emit(kind)
	if !unit.Available() {
		return fmt.Errorf("playing %s: %w", kind, sound.ErrNoPlayer)
	}
	wait(cueLength(kind))
	return nil
}

func exportCue(w io.Writer, kind sound.Kind, path string) (err error) {
	rate := cfg.Audio.SampleRate
	if rate <= 0 {
		rate = sound.DefaultSampleRate
	}
	samples := sound.RenderCue(kind, rate, cfg.Audio.Volume, cfg.Wheel.SpinDuration)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := sound.WriteWAV(f, samples, rate); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	_, err = fmt.Fprintf(w, "Wrote %s (%s, %d samples at %d Hz)\n", path, kind, len(samples), rate)
	return err
}
