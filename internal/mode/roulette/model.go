// Package roulette is the interactive wheel screen: configuration,
// participants, the animated wheel and the result dialog.
package roulette

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/roleta/internal/config"
	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/mode/shared"
	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/ui/helpview"
	"github.com/zjrosen/roleta/internal/ui/result"
	"github.com/zjrosen/roleta/internal/ui/styles"
	"github.com/zjrosen/roleta/internal/ui/wheelview"
	"github.com/zjrosen/roleta/internal/wheel"
)

// Zone IDs for clickable controls.
const (
	ZoneSpin    = "roulette-spin"
	ZoneClear   = "roulette-clear"
	ZoneTimeout = "roulette-timeout"
	ZoneBan     = "roulette-ban"
	zoneRemove  = "roulette-remove-"
)

// ZoneRemove is the zone of the ✕ next to participant i.
func ZoneRemove(i int) string {
	return fmt.Sprintf("%s%d", zoneRemove, i)
}

const volumeStep = 0.1

// Audio is the part of the sound unit the screen drives directly.
type Audio interface {
	Emit(kind sound.Kind)
	SetVolume(v float64)
	Volume() float64
	SetEnabled(enabled bool)
	Enabled() bool
}

// Options wires the screen to its collaborators.
type Options struct {
	Engine *wheel.Engine
	Audio  Audio
	Config config.Config
	// Zones enables mouse support. Nil disables it.
	Zones     *zone.Manager
	Clipboard shared.Clipboard
	// Reloads delivers config file changes. Nil disables hot reload.
	Reloads <-chan config.Reload
	Now     func() time.Time
}

type focus int

const (
	focusCommands focus = iota
	focusInput
)

type resultMsg struct{ result wheel.Result }

type reloadMsg struct{ reload config.Reload }

type statusMsg struct {
	text string
	err  bool
}

// Model is the wheel screen.
type Model struct {
	engine    *wheel.Engine
	audio     Audio
	cfg       config.Config
	zones     *zone.Manager
	clipboard shared.Clipboard
	reloads   <-chan config.Reload
	now       func() time.Time

	width  int
	height int

	focus    focus
	input    textinput.Model
	selected int

	wheel  wheelview.Model
	dialog *result.Model

	showHelp bool
	helpView helpview.Model
	helpBar  help.Model

	status    string
	statusErr bool
}

// New creates the screen.
func New(opts Options) Model {
	if opts.Audio == nil {
		opts.Audio = silentAudio{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = shared.SystemClipboard{}
	}

	input := textinput.New()
	input.Placeholder = "Name..."
	input.Prompt = "+ "
	// Names are not length limited; panels truncate them when drawn.
	input.CharLimit = 0

	m := Model{
		engine:    opts.Engine,
		audio:     opts.Audio,
		cfg:       opts.Config,
		zones:     opts.Zones,
		clipboard: opts.Clipboard,
		reloads:   opts.Reloads,
		now:       opts.Now,
		input:     input,
		wheel:     wheelview.New(),
		helpView:  helpview.New(),
		helpBar:   help.New(),
	}
	m.syncWheel()
	return m
}

// Init starts listening for spin results and config reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForResult(m.engine.Results()), waitForReload(m.reloads))
}

func waitForResult(ch <-chan wheel.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return resultMsg{result: res}
	}
}

func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{reload: r}
	}
}

// SetSize resizes every component.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	l := m.layout()
	m.wheel = m.wheel.SetSize(l.wheelWidth, l.wheelHeight)
	m.input.Width = max(l.leftWidth-6, 4)
	m.helpBar.Width = width
	m.helpView = m.helpView.SetSize(width, height)
	if m.dialog != nil {
		d := m.dialog.SetSize(width, height)
		m.dialog = &d
	}
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case wheelview.FrameMsg:
		return m.handleFrame(msg)

	case resultMsg:
		return m.handleResult(msg.result)

	case reloadMsg:
		return m.handleReload(msg.reload)

	case statusMsg:
		m.status, m.statusErr = msg.text, msg.err
		return m, nil

	case result.SpinAgainMsg:
		m.dialog = nil
		return m.spin(true)

	case result.CloseMsg:
		m.engine.DismissResult()
		m.dialog = nil
		m.audio.Emit(sound.Click)
		return m, nil

	case helpview.CloseMsg:
		m.showHelp = false
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFrame(msg wheelview.FrameMsg) (Model, tea.Cmd) {
	if !m.wheel.Animating() {
		return m, nil
	}
	var changed bool
	m.wheel, changed = m.wheel.Advance(msg.Time)
	if changed {
		m.audio.Emit(sound.Tick)
	}
	if m.wheel.Animating() {
		return m, wheelview.Tick(m.frameInterval())
	}
	return m, nil
}

func (m Model) frameInterval() time.Duration {
	if m.cfg.UI.FrameInterval > 0 {
		return m.cfg.UI.FrameInterval
	}
	return config.Defaults().UI.FrameInterval
}

func (m Model) handleResult(res wheel.Result) (Model, tea.Cmd) {
	m.syncWheel()

	st := m.engine.State()
	if st.ResultVisible && st.SpinID == res.SpinID {
		d := result.New(res, st.CanSpin(), m.zones).SetSize(m.width, m.height)
		m.dialog = &d
	}
	m.setStatus(fmt.Sprintf("%s: %s", res.Winner, res.Punishment), false)
	log.Debug(log.CatUI, "Showing result", "spin", res.SpinID, "winner", res.Winner)
	return m, waitForResult(m.engine.Results())
}

// handleReload hot-applies the settings that make sense mid-session: audio
// and theme. Engine defaults only apply at start-up.
func (m Model) handleReload(r config.Reload) (Model, tea.Cmd) {
	next := waitForReload(m.reloads)
	if r.Err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", r.Err)
		m.setStatus("Config not reloaded: "+r.Err.Error(), true)
		return m, next
	}
	if err := styles.ApplyTheme(r.Config.Theme.Styles()); err != nil {
		log.ErrorErr(log.CatConfig, "Theme reload failed", err)
		m.setStatus("Theme not applied: "+err.Error(), true)
		return m, next
	}
	m.audio.SetEnabled(r.Config.Audio.Enabled)
	m.audio.SetVolume(r.Config.Audio.Volume)
	m.cfg.Audio = r.Config.Audio
	m.cfg.Theme = r.Config.Theme
	m.cfg.UI = r.Config.UI
	m = m.SetSize(m.width, m.height)
	m.setStatus("Config reloaded", false)
	log.Info(log.CatConfig, "Config reloaded")
	return m, next
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.zones == nil || m.showHelp {
		return m, nil
	}
	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case m.zones.Get(ZoneSpin).InBounds(msg):
		return m.spin(false)
	case m.zones.Get(ZoneClear).InBounds(msg):
		return m.clear(), nil
	case m.zones.Get(ZoneTimeout).InBounds(msg):
		return m.setMode(wheel.Timeout), nil
	case m.zones.Get(ZoneBan).InBounds(msg):
		return m.setMode(wheel.Ban), nil
	}
	for i := range m.engine.State().Participants {
		if m.zones.Get(ZoneRemove(i)).InBounds(msg) {
			m.selected = i
			return m.remove(), nil
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// syncWheel copies the engine's sequence into the wheel view.
func (m *Model) syncWheel() {
	st := m.engine.State()
	// The wheel keeps the spun sequence until the spin resolves.
	if !st.Spinning {
		m.wheel = m.wheel.SetEntries(st.Sequence, st.Alternate).SetRotation(st.RotationAngle)
	}
	if len(st.Participants) == 1 && st.Alternate {
		m.wheel = m.wheel.SetEmptyText("Ready...")
	} else {
		m.wheel = m.wheel.SetEmptyText("Minimum 2 participants")
	}
	m.selected = min(max(m.selected, 0), max(len(st.Participants)-1, 0))
	if m.dialog != nil {
		d := m.dialog.SetCanSpin(st.CanSpin())
		m.dialog = &d
	}
}

// silentAudio stands in when no sound unit is wired.
type silentAudio struct{}

func (silentAudio) Emit(sound.Kind)   {}
func (silentAudio) SetVolume(float64) {}
func (silentAudio) Volume() float64   { return 0 }
func (silentAudio) SetEnabled(bool)   {}
func (silentAudio) Enabled() bool     { return false }
