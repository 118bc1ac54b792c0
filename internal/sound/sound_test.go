package sound

import (
	"bytes"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferSink struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (s *bufferSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *bufferSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *bufferSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

func sinkFactory(sink *bufferSink, opens *int) OutputFactory {
	return func() (io.WriteCloser, error) {
		*opens++
		return sink, nil
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKind("  WIN ")
	require.NoError(t, err)
	require.Equal(t, Win, got)

	_, err = ParseKind("fanfare")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindString_Unknown(t *testing.T) {
	require.Equal(t, "kind(42)", Kind(42).String())
}

func TestUnit_LazyOutput(t *testing.T) {
	sink := &bufferSink{}
	opens := 0
	u := newUnit(Options{Enabled: true, Volume: 0.5, Output: sinkFactory(sink, &opens)}, false)

	require.Equal(t, 0, opens, "output must not open before the first cue")
	require.False(t, u.Available())

	u.Emit(Click)
	u.Emit(Error)
	u.Emit(Win)

	require.Equal(t, 1, opens, "output opens exactly once")
	require.True(t, u.Available())
	require.Equal(t, 5, u.mixer.Active(), "click + error + three win notes")
}

func TestUnit_DisabledEmitsNothing(t *testing.T) {
	sink := &bufferSink{}
	opens := 0
	u := newUnit(Options{Enabled: false, Output: sinkFactory(sink, &opens)}, false)

	u.Emit(Click)

	require.Equal(t, 0, opens)
	require.Equal(t, 0, u.mixer.Active())
}

func TestUnit_SetEnabledLeavesScheduledTones(t *testing.T) {
	sink := &bufferSink{}
	opens := 0
	u := newUnit(Options{Enabled: true, Output: sinkFactory(sink, &opens)}, false)

	u.Emit(Spin)
	u.SetEnabled(false)
	u.Emit(Click)

	require.False(t, u.Enabled())
	require.Equal(t, 1, u.mixer.Active(), "spin keeps playing, click suppressed")
}

func TestUnit_UnavailableOutputIsSilentNoop(t *testing.T) {
	calls := 0
	u := newUnit(Options{
		Enabled: true,
		Output: func() (io.WriteCloser, error) {
			calls++
			return nil, errors.New("no device")
		},
	}, false)

	require.NotPanics(t, func() {
		u.Emit(Click)
		u.Emit(Win)
	})
	require.Equal(t, 1, calls, "failed open is not retried")
	require.False(t, u.Available())
	require.Equal(t, 0, u.mixer.Active())
}

func TestUnit_NilOutput(t *testing.T) {
	u := newUnit(Options{Enabled: true}, false)
	u.Emit(Click)
	require.False(t, u.Available())
}

func TestUnit_SetVolumeClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.5, 1},
		{1, 1},
		{0.3, 0.3},
		{0, 0},
		{-2, 0},
	}
	for _, tt := range tests {
		u := newUnit(Options{Volume: 0.5}, false)
		u.SetVolume(tt.in)
		assert.InDelta(t, tt.want, u.Volume(), 1e-9, "SetVolume(%v)", tt.in)
	}
}

func TestUnit_SetVolumeIgnoresNaN(t *testing.T) {
	u := newUnit(Options{Volume: 0.4}, false)
	u.SetVolume(math.NaN())
	require.InDelta(t, 0.4, u.Volume(), 1e-9)
}

func TestUnit_PumpStreamsPCM(t *testing.T) {
	sink := &bufferSink{}
	opens := 0
	u := New(Options{
		Enabled: true,
		Volume:  1,
		Output:  sinkFactory(sink, &opens),
		Chunk:   5 * time.Millisecond,
	})

	u.Emit(Click)

	require.Eventually(t, func() bool { return sink.Len() > 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, u.Close())
	require.True(t, sink.closed)
	require.False(t, u.Available())
}

func TestUnit_CloseIsIdempotent(t *testing.T) {
	u := New(Options{Enabled: true})
	require.NoError(t, u.Close())
	require.NoError(t, u.Close())

	// Emitting after Close must not open the device.
	u.Emit(Click)
	require.False(t, u.Available())
}

func TestNop(t *testing.T) {
	var e Emitter = Nop{}
	require.NotPanics(t, func() { e.Emit(Win) })
}
