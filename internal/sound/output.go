package sound

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// ErrNoPlayer is returned when no supported audio command is available.
var ErrNoPlayer = errors.New("no audio player found")

// OutputFactory opens the raw PCM sink. It is called at most once, on the
// first emitted cue.
type OutputFactory func() (io.WriteCloser, error)

// Player is an OS audio command that reads mono signed 16-bit PCM on stdin.
type Player struct {
	Name string
	Args func(sampleRate int) []string
}

// Players lists the supported commands in auto-detection order.
var Players = []Player{
	{
		Name: "paplay",
		Args: func(rate int) []string {
			return []string{"--raw", "--format=s16le", "--channels=1", "--rate=" + strconv.Itoa(rate)}
		},
	},
	{
		Name: "aplay",
		Args: func(rate int) []string {
			return []string{"-q", "-t", "raw", "-f", "S16_LE", "-c", "1", "-r", strconv.Itoa(rate)}
		},
	},
	{
		Name: "play",
		Args: func(rate int) []string {
			return []string{"-q", "-t", "raw", "-e", "signed", "-b", "16", "-c", "1", "-r", strconv.Itoa(rate), "-"}
		},
	},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// FindPlayer resolves a configured player name. "auto" (or empty) picks the
// first supported command on PATH; "none" always fails.
func FindPlayer(name string) (Player, error) {
	switch name {
	case "none":
		return Player{}, ErrNoPlayer
	case "", "auto":
		for _, p := range Players {
			if _, err := lookPath(p.Name); err == nil {
				return p, nil
			}
		}
		return Player{}, ErrNoPlayer
	}

	for _, p := range Players {
		if p.Name == name {
			if _, err := lookPath(p.Name); err != nil {
				return Player{}, fmt.Errorf("audio player %q: %w", name, ErrNoPlayer)
			}
			return p, nil
		}
	}
	return Player{}, fmt.Errorf("unsupported audio player %q", name)
}

// CommandOutput returns a factory that starts the player and streams into
// its stdin.
func CommandOutput(p Player, sampleRate int) OutputFactory {
	return func() (io.WriteCloser, error) {
		cmd := exec.Command(p.Name, p.Args(sampleRate)...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("opening %s stdin: %w", p.Name, err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("starting %s: %w", p.Name, err)
		}
		return &commandSink{cmd: cmd, stdin: stdin}, nil
	}
}

// ConfiguredOutput resolves name and returns its factory, or a factory that
// always fails when no player can be used.
func ConfiguredOutput(name string, sampleRate int) OutputFactory {
	p, err := FindPlayer(name)
	if err != nil {
		return func() (io.WriteCloser, error) { return nil, err }
	}
	return CommandOutput(p, sampleRate)
}

type commandSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func (s *commandSink) Write(p []byte) (int, error) {
	return s.stdin.Write(p)
}

func (s *commandSink) Close() error {
	_ = s.stdin.Close()
	return s.cmd.Wait()
}
