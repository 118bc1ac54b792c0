package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/wheel"
)

var (
	spinRole      string
	spinMode      string
	spinDuration  string
	spinAlternate bool
	spinJSON      bool
	spinLength    time.Duration
)

var spinCmd = &cobra.Command{
	Use:   "spin NAME...",
	Short: "Spin the wheel once without the TUI",
	Long: `Spin the wheel once over the given names and print the winner and the
punishment. Unset flags fall back to the config file defaults.`,
	Example: `  roleta spin ana bia caio
  roleta spin --mode ban --json ana bia
  roleta spin --alternate --duration 1h ana`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpin,
}

func init() {
	spinCmd.Flags().StringVar(&spinRole, "role", "", "role: moderator, admin, manager or owner")
	spinCmd.Flags().StringVar(&spinMode, "mode", "", "punishment mode: timeout or ban")
	spinCmd.Flags().StringVar(&spinDuration, "duration", "", "timeout length: random, 1m, 5m, 10m, 1h, 1d or 1w")
	spinCmd.Flags().BoolVar(&spinAlternate, "alternate", false, "insert the filler entry after every name")
	spinCmd.Flags().BoolVar(&spinJSON, "json", false, "print the result as JSON")
	spinCmd.Flags().DurationVar(&spinLength, "spin-duration", 0, "time before the wheel stops (default from config)")
	rootCmd.AddCommand(spinCmd)
}

// spinOutput is the --json shape.
type spinOutput struct {
	SpinID     string  `json:"spin_id"`
	Winner     string  `json:"winner"`
	Index      int     `json:"index"`
	Entries    int     `json:"entries"`
	Mode       string  `json:"mode"`
	Duration   string  `json:"duration,omitempty"`
	Punishment string  `json:"punishment"`
	Rotation   float64 `json:"rotation"`
}

func newSpinOutput(res wheel.Result) spinOutput {
	out := spinOutput{
		SpinID:     res.SpinID,
		Winner:     res.Winner,
		Index:      res.Index,
		Entries:    res.Entries,
		Mode:       res.Mode.String(),
		Punishment: res.Punishment,
		Rotation:   res.Rotation,
	}
	if res.Mode == wheel.Timeout {
		out.Duration = res.Duration.String()
	}
	return out
}

// spinOptions layers the command flags over the configured engine options.
func spinOptions(cmd *cobra.Command, opts wheel.Options) (wheel.Options, error) {
	var err error
	if cmd.Flags().Changed("role") {
		if opts.Role, err = wheel.ParseRole(spinRole); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("mode") {
		if opts.Mode, err = wheel.ParseMode(spinMode); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("duration") {
		if opts.Duration, err = wheel.ParseDuration(spinDuration); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("alternate") {
		opts.Alternate = spinAlternate
	}
	if cmd.Flags().Changed("spin-duration") {
		if spinLength <= 0 {
			return opts, errors.New("--spin-duration must be positive")
		}
		opts.SpinDuration = spinLength
	}
	if opts.Mode == wheel.Ban && !opts.Role.CanBan() {
		// A configured ban default gives way to the role, as in the TUI.
		if cmd.Flags().Changed("mode") {
			return opts, fmt.Errorf("role %s cannot ban", opts.Role)
		}
		opts.Mode = wheel.Timeout
		log.Debug(log.CatCLI, "Mode forced to timeout", "role", opts.Role.String())
	}
	return opts, nil
}

func runSpin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flush, err := startTracing(ctx)
	if err != nil {
		return err
	}
	defer flush()

	opts, err := spinOptions(cmd, cfg.EngineOptions(nil))
	if err != nil {
		return err
	}

	soundOpts := cfg.SoundOptions()
	soundOpts.SpinLength = opts.SpinDuration
	audio := sound.New(soundOpts)
	defer closeAudio(audio)

	opts.Feedback = audio
	engine := wheel.New(opts)
	defer engine.Close()

	audio.SetEnabled(false)
	for _, name := range args {
		if !engine.AddParticipant(name) {
			return fmt.Errorf("participant names cannot be blank")
		}
	}
	audio.SetEnabled(cfg.Audio.Enabled)

	if !engine.Spin() {
		return fmt.Errorf("need at least %d entries to spin; add a name or use --alternate", wheel.MinEntries)
	}

	var res wheel.Result
	select {
	case res = <-engine.Results():
	case <-ctx.Done():
		return ctx.Err()
	}

	if audio.Available() {
		// Let the fanfare finish before the output is closed.
		wait(opts.FanfareDelay + cueLength(sound.Win))
	}
	log.Info(log.CatCLI, "Headless spin done", "spin", res.SpinID, "winner", res.Winner)

	return printSpin(cmd.OutOrStdout(), res, spinJSON)
}

func printSpin(w io.Writer, res wheel.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newSpinOutput(res))
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", res.Winner, res.Punishment)
	return err
}

// cueLength is how long kind plays at the configured sample rate.
func cueLength(kind sound.Kind) time.Duration {
	rate := cfg.Audio.SampleRate
	if rate <= 0 {
		rate = sound.DefaultSampleRate
	}
	frames := len(sound.RenderCue(kind, rate, 1, cfg.Wheel.SpinDuration))
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

// wait is replaced in tests.
var wait = time.Sleep
