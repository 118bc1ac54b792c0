package roulette

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"
)

func TestProgram_AddSpinAndQuit(t *testing.T) {
	f := newFixture(t)
	f.model.now = time.Now

	tm := teatest.NewTestModel(t, f.model, teatest.WithInitialTermSize(100, 30))

	tm.Type("a")
	tm.Type("ana")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("bia")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("bia"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Eventually(t, func() bool { return f.engine.State().Spinning }, 3*time.Second, 10*time.Millisecond)
	f.sched.Advance(f.engine.SpinDuration())

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("THE WHEEL HAS SPOKEN"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)

	st := fm.engine.State()
	require.Equal(t, []string{"ana", "bia"}, st.Participants)
	require.True(t, st.HasWinner)
	require.Contains(t, []string{"ana", "bia"}, st.Winner)
	require.NotNil(t, fm.dialog)
}
