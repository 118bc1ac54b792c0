// Package cmd implements the roleta command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/roleta/internal/config"
	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/mode/roulette"
	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/tracing"
	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/wheel"
)

const debugLogFile = "roleta-debug.log"

var (
	version = "dev"

	cfgFile   string
	debugMode bool
	noColor   bool
	noSound   bool
	seedNames []string

	cfg      config.Config
	cfgPath  string
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "roleta",
	Short: "Spin the wheel to pick who gets punished",
	Long: `Roleta is a terminal "spin the wheel" selector. Add participants, pick a
role and a punishment mode, and spin: the wheel picks a name and hands out a
timeout or a permanent ban, with sound effects.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runApp,
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	rootCmd.Version = v
	defer func() { closeLog() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "write debug logs to log.file or "+debugLogFile)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "disable sound effects")
	rootCmd.Flags().StringArrayVarP(&seedNames, "name", "n", nil, "participant to start with (repeatable)")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	loaded, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg, cfgPath = loaded, used

	logFile, level := cfg.Log.File, log.ParseLevel(cfg.Log.Level)
	if debugMode {
		level = slog.LevelDebug
		if logFile == "" {
			logFile = debugLogFile
		}
	}
	closer, err := log.Init(logFile, level)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	closeLog = closer
	log.Info(log.CatCLI, "Starting", "command", cmd.Name(), "version", version, "config", cfgPath)

	if noSound {
		cfg.Audio.Enabled = false
	}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

// startTracing installs the configured exporter and returns a flush func
// for defer.
func startTracing(ctx context.Context) (func(), error) {
	shutdown, err := tracing.Setup(ctx, cfg.Tracing, version)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Flushing spans failed", err)
		}
	}, nil
}

func closeAudio(u *sound.Unit) {
	if err := u.Close(); err != nil {
		log.ErrorErr(log.CatSound, "Closing audio output failed", err)
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flush, err := startTracing(ctx)
	if err != nil {
		return err
	}
	defer flush()

	audio := sound.New(cfg.SoundOptions())
	defer closeAudio(audio)

	engine := wheel.New(cfg.EngineOptions(audio))
	defer engine.Close()

	// Seeding is silent; the click cues belong to interactive adds.
	audio.SetEnabled(false)
	for _, name := range seedNames {
		if !engine.AddParticipant(name) {
			log.Warn(log.CatCLI, "Skipping blank --name")
		}
	}
	audio.SetEnabled(cfg.Audio.Enabled)

	var reloads <-chan config.Reload
	if cfgPath != "" {
		watcher, err := config.NewWatcher(cfgPath, config.DefaultDebounce)
		if err != nil {
			log.ErrorErr(log.CatConfig, "Config watch disabled", err)
		} else {
			defer func() { _ = watcher.Close() }()
			reloads = watcher.Reloads()
		}
	}

	zones := zone.New()
	defer zones.Close()

	model := roulette.New(roulette.Options{
		Engine:  engine,
		Audio:   audio,
		Config:  cfg,
		Zones:   zones,
		Reloads: reloads,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
