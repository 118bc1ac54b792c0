package sound

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

type voice struct {
	samples []float32
	start   int64 // absolute mixer frame of the first sample
}

// Mixer sums every active voice and applies the one shared gain stage.
// The gain is read at render time, so changing it affects voices that are
// already playing.
type Mixer struct {
	mu     sync.Mutex
	voices []voice
	clock  int64 // frames rendered so far

	gain atomic.Uint64 // math.Float64bits
}

// NewMixer creates a mixer with the given initial gain.
func NewMixer(gain float64) *Mixer {
	m := &Mixer{}
	m.SetGain(gain)
	return m
}

// SetGain clamps g into [0,1] and stores it. NaN is ignored.
func (m *Mixer) SetGain(g float64) {
	if math.IsNaN(g) {
		return
	}
	m.gain.Store(math.Float64bits(clamp01(g)))
}

// Gain returns the shared gain.
func (m *Mixer) Gain() float64 {
	return math.Float64frombits(m.gain.Load())
}

// Add schedules samples to start delay frames after the current clock.
func (m *Mixer) Add(samples []float32, delay int64) {
	if len(samples) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = append(m.voices, voice{samples: samples, start: m.clock + max(delay, 0)})
}

// Active reports how many voices are scheduled or still playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Render fills dst with the next len(dst) frames and advances the clock.
func (m *Mixer) Render(dst []float32) {
	g := float32(m.Gain())

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range dst {
		dst[i] = 0
	}

	from := m.clock
	to := from + int64(len(dst))
	kept := m.voices[:0]
	for _, v := range m.voices {
		end := v.start + int64(len(v.samples))
		lo := max(v.start, from)
		hi := min(end, to)
		for f := lo; f < hi; f++ {
			dst[f-from] += v.samples[f-v.start]
		}
		if end > to {
			kept = append(kept, v)
		}
	}
	m.voices = kept
	m.clock = to

	for i := range dst {
		s := dst[i] * g
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		dst[i] = s
	}
}

// EncodePCM16 converts float samples to signed 16-bit little-endian PCM.
func EncodePCM16(dst []byte, samples []float32) []byte {
	need := len(samples) * 2
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(int16(s*math.MaxInt16)))
	}
	return dst
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
