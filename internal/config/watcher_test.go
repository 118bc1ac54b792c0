package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "audio:\n  volume: 0.5\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("audio:\n  volume: 0.9\n"), 0644))

	select {
	case r := <-w.Reloads():
		require.NoError(t, r.Err)
		require.Equal(t, 0.9, r.Config.Audio.Volume)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcher_ReportsInvalidContent(t *testing.T) {
	path := writeConfig(t, "audio:\n  volume: 0.5\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("audio:\n  volume: 7\n"), 0644))

	select {
	case r := <-w.Reloads():
		require.Error(t, r.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "audio:\n  volume: 0.5\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	other := path + ".bak"
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	select {
	case r := <-w.Reloads():
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	path := writeConfig(t, "")

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
