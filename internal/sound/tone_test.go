package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testRate = 8000

func TestParam_ValueAt(t *testing.T) {
	p := Param{
		{At: 0, Value: 100},
		{At: time.Second, Value: 400, Ramp: Exponential},
		{At: 2 * time.Second, Value: 50},
	}

	tests := []struct {
		name string
		at   time.Duration
		want float64
	}{
		{"before start", -time.Second, 100},
		{"start", 0, 100},
		{"halfway exponential", 500 * time.Millisecond, 200},
		{"ramp end", time.Second, 400},
		{"step holds previous value", 1500 * time.Millisecond, 400},
		{"step reached", 2 * time.Second, 50},
		{"after last", 10 * time.Second, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, p.ValueAt(tt.at), 1e-6)
		})
	}
}

func TestParam_Empty(t *testing.T) {
	require.Equal(t, 0.0, Param{}.ValueAt(time.Second))
}

func TestParam_ExponentialStaysBetweenEndpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v0 := rapid.Float64Range(0.01, 1000).Draw(t, "v0")
		v1 := rapid.Float64Range(0.01, 1000).Draw(t, "v1")
		ms := rapid.IntRange(0, 1000).Draw(t, "ms")

		p := Param{{At: 0, Value: v0}, {At: time.Second, Value: v1, Ramp: Exponential}}
		got := p.ValueAt(time.Duration(ms) * time.Millisecond)

		lo, hi := math.Min(v0, v1), math.Max(v0, v1)
		if got < lo-1e-9 || got > hi+1e-9 {
			t.Fatalf("ValueAt = %v, outside [%v, %v]", got, lo, hi)
		}
	})
}

func TestPatch_Shapes(t *testing.T) {
	spin := Patch(Spin)
	require.Len(t, spin, 1)
	require.Equal(t, 4*time.Second, spin[0].Length)
	require.Len(t, spin[0].Freq, 4, "start value plus three ramp segments")
	require.Equal(t, Sawtooth, spin[0].Wave)

	win := Patch(Win)
	require.Len(t, win, 3)
	for i := 1; i < len(win); i++ {
		require.Greater(t, win[i].Offset, win[i-1].Offset, "notes are staggered")
		require.Greater(t, win[i].Freq[0].Value, win[i-1].Freq[0].Value, "pitch rises")
	}

	require.Len(t, Patch(Click), 1)
	require.Len(t, Patch(Error), 1)
	require.Len(t, Patch(Tick), 1)
	require.Nil(t, Patch(Kind(99)))
}

func TestSpinTone_FollowsSpinLength(t *testing.T) {
	tests := []struct {
		name   string
		length time.Duration
		want   time.Duration
	}{
		{"default", DefaultSpinLength, 4 * time.Second},
		{"short", 2 * time.Second, 2 * time.Second},
		{"long", 8 * time.Second, 8 * time.Second},
		{"unset", 0, DefaultSpinLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := SpinTone(tt.length)
			require.Equal(t, tt.want, tone.Length)
			require.Equal(t, tt.want, tone.Gain[len(tone.Gain)-1].At, "envelope ends with the spin")
			require.InDelta(t, silenceFloor, tone.Gain.ValueAt(tt.want), 1e-9)
			// The last pitch drop keeps its place relative to the spin.
			require.Equal(t, tt.want*7/8, tone.Freq[3].At)
		})
	}
}

func TestToneCache_SpinLength(t *testing.T) {
	short, _ := newToneCache(testRate, time.Second).voices(Spin)
	long, _ := newToneCache(testRate, 3*time.Second).voices(Spin)
	require.Len(t, short[0], testRate)
	require.Len(t, long[0], 3*testRate)

	click, _ := newToneCache(testRate, time.Second).voices(Click)
	require.Len(t, click[0], int(0.05*testRate))
}

func TestPatch_EnvelopesDecay(t *testing.T) {
	for _, k := range Kinds() {
		for _, tone := range Patch(k) {
			start := tone.Gain.ValueAt(0)
			end := tone.Gain.ValueAt(tone.Length)
			require.Greater(t, start, end, "%s envelope must decay", k)
			require.InDelta(t, silenceFloor, end, 1e-9, "%s ends near silence", k)
		}
	}
}

func TestRender_LengthAndRange(t *testing.T) {
	for _, k := range Kinds() {
		for _, tone := range Patch(k) {
			samples := Render(tone, testRate)
			require.Len(t, samples, int(tone.Length.Seconds()*testRate))
			for _, s := range samples {
				require.LessOrEqual(t, math.Abs(float64(s)), 1.0)
			}
		}
	}
}

func TestRender_ZeroLength(t *testing.T) {
	require.Nil(t, Render(Tone{Freq: steady(440), Gain: decay(1, 0)}, testRate))
}

func TestOscillate(t *testing.T) {
	require.InDelta(t, 0, oscillate(Sine, 0), 1e-9)
	require.InDelta(t, 1, oscillate(Sine, 0.25), 1e-9)
	require.Equal(t, 1.0, oscillate(Square, 0.1))
	require.Equal(t, -1.0, oscillate(Square, 0.6))
	require.InDelta(t, -1, oscillate(Sawtooth, 0), 1e-9)
	require.InDelta(t, 0, oscillate(Sawtooth, 0.5), 1e-9)
}

func TestToneCache_Memoizes(t *testing.T) {
	c := newToneCache(testRate, 0)

	first, offsets := c.voices(Win)
	require.Len(t, first, 3)
	require.Equal(t, 3, c.len())
	require.Equal(t, int64(0), offsets[0])
	require.Equal(t, framesFor(150*time.Millisecond, testRate), offsets[1])

	second, _ := c.voices(Win)
	require.Equal(t, 3, c.len(), "second lookup is served from cache")
	require.Same(t, &first[0][0], &second[0][0])
}

func TestMixer_GainAppliesToPlayingVoices(t *testing.T) {
	m := NewMixer(1)
	m.Add([]float32{0.5, 0.5, 0.5, 0.5}, 0)

	out := make([]float32, 2)
	m.Render(out)
	require.Equal(t, []float32{0.5, 0.5}, out)

	m.SetGain(0.5)
	m.Render(out)
	require.Equal(t, []float32{0.25, 0.25}, out, "mid-playback volume change")
	require.Equal(t, 0, m.Active())
}

func TestMixer_DelayedAndOverlapping(t *testing.T) {
	m := NewMixer(1)
	m.Add([]float32{0.25, 0.25}, 0)
	m.Add([]float32{0.25, 0.25}, 1)

	out := make([]float32, 4)
	m.Render(out)
	require.Equal(t, []float32{0.25, 0.5, 0.25, 0}, out)
}

func TestMixer_Clips(t *testing.T) {
	m := NewMixer(1)
	m.Add([]float32{0.9}, 0)
	m.Add([]float32{0.9}, 0)

	out := make([]float32, 1)
	m.Render(out)
	require.Equal(t, float32(1), out[0])
}

func TestMixer_VoicesOutliveRenderWindow(t *testing.T) {
	m := NewMixer(1)
	m.Add([]float32{0.1, 0.1, 0.1}, 5)

	out := make([]float32, 4)
	m.Render(out)
	require.Equal(t, []float32{0, 0, 0, 0}, out)
	require.Equal(t, 1, m.Active(), "future voice kept")
}

func TestRenderCue_VolumeScales(t *testing.T) {
	loud := RenderCue(Click, testRate, 1, 0)
	quiet := RenderCue(Click, testRate, 0.5, 0)
	silent := RenderCue(Click, testRate, 0, 0)

	require.Len(t, quiet, len(loud))
	require.InDelta(t, float64(loud[10])*0.5, float64(quiet[10]), 1e-6)
	for _, s := range silent {
		require.Equal(t, float32(0), s)
	}
}

func TestRenderCue_WinCoversAllNotes(t *testing.T) {
	samples := RenderCue(Win, testRate, 1, 0)
	// last note starts at 0.3s and lasts 0.4s
	require.Len(t, samples, int(0.7*testRate))
}

func TestWriteWAV(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0, 0.5, -0.5, 1}

	require.NoError(t, WriteWAV(&buf, samples, testRate))

	data := buf.Bytes()
	require.Len(t, data, 44+len(samples)*2)
	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "data", string(data[36:40]))
	require.Equal(t, uint32(testRate), binary.LittleEndian.Uint32(data[24:28]))
	require.Equal(t, uint32(len(samples)*2), binary.LittleEndian.Uint32(data[40:44]))
	require.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(data[44+6:])))
}
