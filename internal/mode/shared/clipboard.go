// Package shared provides helpers used by the mode controllers.
package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text for the user.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the terminal when the session is remote or
// multiplexed, and through the desktop clipboard otherwise.
type SystemClipboard struct {
	// Getenv and Terminal are replaced in tests.
	Getenv   func(string) string
	Terminal func() (io.WriteCloser, error)
}

// Copy copies text to the clipboard.
func (c SystemClipboard) Copy(text string) error {
	switch {
	case c.isRemote() || c.env("STY") != "":
		return c.copyViaTerminal(text)
	case !clipboard.Unsupported:
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	return c.copyViaTerminal(text)
}

func (c SystemClipboard) env(name string) string {
	if c.Getenv != nil {
		return c.Getenv(name)
	}
	return os.Getenv(name)
}

func (c SystemClipboard) isRemote() bool {
	return c.env("SSH_TTY") != "" || c.env("SSH_CLIENT") != "" || c.env("SSH_CONNECTION") != ""
}

// copyViaTerminal writes an OSC 52 sequence straight to the tty so it is not
// mixed into the TUI's own output.
func (c SystemClipboard) copyViaTerminal(text string) (err error) {
	open := c.Terminal
	if open == nil {
		open = openTTY
	}
	tty, err := open()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	seq := osc52.New(text)
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case c.env("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(tty); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}
