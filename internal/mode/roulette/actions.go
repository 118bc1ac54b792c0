package roulette

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/roleta/internal/keys"
	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/ui/wheelview"
	"github.com/zjrosen/roleta/internal/wheel"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	if m.dialog != nil {
		if key.Matches(msg, keys.Roulette.Copy) {
			return m, m.copyResult()
		}
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}

	k := keys.Roulette
	switch {
	case key.Matches(msg, keys.Common.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Common.Help):
		m.showHelp = true
		m.helpView = m.helpView.SetSize(m.width, m.height)
		return m, nil
	case key.Matches(msg, k.Spin):
		return m.spin(false)
	case key.Matches(msg, k.Add):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, k.Up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, k.Down):
		m.selected = min(m.selected+1, max(len(m.engine.State().Participants)-1, 0))
	case key.Matches(msg, k.Remove):
		return m.remove(), nil
	case key.Matches(msg, k.Role):
		return m.cycleRole(), nil
	case key.Matches(msg, k.Mode):
		return m.toggleMode(), nil
	case key.Matches(msg, k.Duration):
		return m.cycleDuration(), nil
	case key.Matches(msg, k.Alternate):
		return m.toggleAlternate(), nil
	case key.Matches(msg, k.Clear):
		return m.clear(), nil
	case key.Matches(msg, k.Mute):
		return m.toggleMute(), nil
	case key.Matches(msg, k.VolumeUp):
		return m.changeVolume(volumeStep), nil
	case key.Matches(msg, k.VolumeDown):
		return m.changeVolume(-volumeStep), nil
	case key.Matches(msg, k.Copy):
		return m, m.copyResult()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Roulette.Submit):
		if m.engine.AddParticipant(m.input.Value()) {
			m.input.Reset()
			st := m.engine.State()
			m.selected = len(st.Participants) - 1
			m.setStatus(fmt.Sprintf("Added %s", st.Participants[m.selected]), false)
		} else {
			m.setStatus("Name cannot be empty", true)
		}
		m.syncWheel()
		return m, nil
	case key.Matches(msg, keys.Common.Escape):
		m.focus = focusCommands
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// spin starts a spin and the matching animation. again goes through the
// result dialog's shortcut.
func (m Model) spin(again bool) (Model, tea.Cmd) {
	var ok bool
	if again {
		ok = m.engine.SpinAgain()
	} else {
		ok = m.engine.Spin()
	}
	st := m.engine.State()
	if !ok {
		if st.Spinning {
			m.setStatus("The wheel is already spinning", true)
		} else {
			m.setStatus(fmt.Sprintf("Add at least %d entries to spin", wheel.MinEntries), true)
		}
		return m, nil
	}

	m.wheel = m.wheel.SetEntries(st.Sequence, st.Alternate).
		Animate(st.RotationAngle, m.engine.SpinDuration(), m.now())
	m.setStatus("Spinning...", false)
	log.Debug(log.CatUI, "Spin started", "spin", st.SpinID, "target", st.RotationAngle)
	return m, wheelview.Tick(m.frameInterval())
}

func (m Model) remove() Model {
	if m.engine.RemoveParticipant(m.selected) {
		m.setStatus("Participant removed", false)
	} else if m.engine.State().Spinning {
		m.setStatus("Cannot remove while spinning", true)
	}
	m.syncWheel()
	return m
}

func (m Model) clear() Model {
	if m.engine.Reset() {
		m.selected = 0
		m.setStatus("List cleared", false)
	} else {
		m.setStatus("Cannot clear while spinning", true)
	}
	m.syncWheel()
	return m
}

func (m Model) cycleRole() Model {
	st := m.engine.State()
	if m.engine.SetRole(st.Role.Next()) {
		m.audio.Emit(sound.Click)
	}
	return m
}

func (m Model) toggleMode() Model {
	if m.engine.State().Mode == wheel.Ban {
		return m.setMode(wheel.Timeout)
	}
	return m.setMode(wheel.Ban)
}

func (m Model) setMode(mode wheel.Mode) Model {
	if !m.engine.SetMode(mode) {
		m.setStatus(fmt.Sprintf("%s cannot ban", m.engine.State().Role.Label()), true)
		return m
	}
	m.audio.Emit(sound.Click)
	return m
}

func (m Model) cycleDuration() Model {
	st := m.engine.State()
	if m.engine.SetDuration(st.Duration.Next()) {
		m.audio.Emit(sound.Click)
	}
	return m
}

func (m Model) toggleAlternate() Model {
	st := m.engine.State()
	m.engine.SetAlternate(!st.Alternate)
	m.audio.Emit(sound.Click)
	m.syncWheel()
	return m
}

func (m Model) toggleMute() Model {
	enabled := !m.audio.Enabled()
	m.audio.SetEnabled(enabled)
	if enabled {
		m.audio.Emit(sound.Click)
		m.setStatus("Sound on", false)
	} else {
		m.setStatus("Sound muted", false)
	}
	return m
}

func (m Model) changeVolume(delta float64) Model {
	v := math.Round((m.audio.Volume()+delta)*10) / 10
	m.audio.SetVolume(v)
	m.audio.Emit(sound.Click)
	m.setStatus("Volume "+formatPercent(m.audio.Volume()), false)
	return m
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}

// copyResult copies the last winner and punishment.
func (m Model) copyResult() tea.Cmd {
	st := m.engine.State()
	if !st.HasWinner {
		return func() tea.Msg { return statusMsg{text: "Nothing to copy yet", err: true} }
	}
	text := fmt.Sprintf("%s: %s", st.Winner, st.Punishment)
	clip := m.clipboard
	return func() tea.Msg {
		if err := clip.Copy(text); err != nil {
			log.ErrorErr(log.CatUI, "Copy failed", err)
			return statusMsg{text: "Copy failed: " + err.Error(), err: true}
		}
		return statusMsg{text: "Copied " + text}
	}
}
