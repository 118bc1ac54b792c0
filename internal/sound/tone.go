package sound

import (
	"math"
	"time"
)

// Waveform is the oscillator shape of a tone.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
)

// Ramp selects how a parameter travels from the previous point to this one.
type Ramp int

const (
	// Step holds the previous value and jumps at the point's time.
	Step Ramp = iota
	// Exponential glides geometrically from the previous value.
	Exponential
)

// Point is a single automation event on a Param.
type Point struct {
	At    time.Duration
	Value float64
	Ramp  Ramp
}

// Param is a time-automated value (frequency or gain) made of points
// ordered by At.
type Param []Point

// ValueAt returns the parameter value t after the tone started.
func (p Param) ValueAt(t time.Duration) float64 {
	if len(p) == 0 {
		return 0
	}
	if t <= p[0].At {
		return p[0].Value
	}

	i := 0
	for i+1 < len(p) && p[i+1].At <= t {
		i++
	}
	if i+1 == len(p) {
		return p[i].Value
	}

	next := p[i+1]
	if next.Ramp != Exponential {
		return p[i].Value
	}

	v0, v1 := p[i].Value, next.Value
	if v0 <= 0 || v1 <= 0 || next.At <= p[i].At {
		return v0
	}
	frac := float64(t-p[i].At) / float64(next.At-p[i].At)
	return v0 * math.Pow(v1/v0, frac)
}

// Tone is one oscillator voice of a cue.
type Tone struct {
	Wave   Waveform
	Offset time.Duration // delay from the emit call
	Length time.Duration
	Freq   Param
	Gain   Param
}

// silenceFloor is the level envelopes decay to before a tone stops.
const silenceFloor = 0.01

func decay(start float64, length time.Duration) Param {
	return Param{
		{At: 0, Value: start},
		{At: length, Value: silenceFloor, Ramp: Exponential},
	}
}

func steady(freq float64) Param {
	return Param{{At: 0, Value: freq}}
}

// DefaultSpinLength is the spin cue length when none is configured. It
// matches the wheel's default spin duration.
const DefaultSpinLength = 4 * time.Second

// SpinTone is the descending spin whoosh stretched to length, so the sound
// dies out as the wheel stops. Non-positive lengths use DefaultSpinLength.
func SpinTone(length time.Duration) Tone {
	if length <= 0 {
		length = DefaultSpinLength
	}
	at := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * float64(length) / float64(DefaultSpinLength))
	}
	return Tone{
		Wave:   Sawtooth,
		Length: length,
		Freq: Param{
			{At: 0, Value: 150},
			{At: at(500 * time.Millisecond), Value: 80, Ramp: Exponential},
			{At: at(2 * time.Second), Value: 120, Ramp: Exponential},
			{At: at(3500 * time.Millisecond), Value: 60, Ramp: Exponential},
		},
		Gain: Param{
			{At: 0, Value: 0.15},
			{At: at(2 * time.Second), Value: 0.05, Ramp: Exponential},
			{At: length, Value: silenceFloor, Ramp: Exponential},
		},
	}
}

// Patch returns the tones that make up the cue for kind, with the spin cue
// at DefaultSpinLength.
func Patch(kind Kind) []Tone {
	return PatchFor(kind, DefaultSpinLength)
}

// PatchFor is Patch with the spin cue stretched to spinLength.
func PatchFor(kind Kind, spinLength time.Duration) []Tone {
	if kind == Spin {
		return []Tone{SpinTone(spinLength)}
	}
	switch kind {
	case Click:
		return []Tone{{
			Wave:   Sine,
			Length: 50 * time.Millisecond,
			Freq:   steady(800),
			Gain:   decay(0.3, 50*time.Millisecond),
		}}
	case Error:
		return []Tone{{
			Wave:   Sawtooth,
			Length: 300 * time.Millisecond,
			Freq: Param{
				{At: 0, Value: 150},
				{At: 200 * time.Millisecond, Value: 100, Ramp: Exponential},
			},
			Gain: decay(0.3, 300*time.Millisecond),
		}}
	case Tick:
		return []Tone{{
			Wave:   Square,
			Length: 50 * time.Millisecond,
			Freq:   steady(600),
			Gain:   decay(0.1, 50*time.Millisecond),
		}}
	case Spin:
		return []Tone{SpinTone(DefaultSpinLength)}
	case Win:
		// C5, E5, G5
		notes := []struct {
			freq float64
			at   time.Duration
		}{
			{523.25, 0},
			{659.25, 150 * time.Millisecond},
			{783.99, 300 * time.Millisecond},
		}
		tones := make([]Tone, len(notes))
		for i, n := range notes {
			tones[i] = Tone{
				Wave:   Sine,
				Offset: n.at,
				Length: 400 * time.Millisecond,
				Freq:   steady(n.freq),
				Gain:   decay(0.4, 400*time.Millisecond),
			}
		}
		return tones
	}
	return nil
}

// Render synthesizes tone at sampleRate into mono float samples in [-1,1]
// before the shared gain stage.
func Render(tone Tone, sampleRate int) []float32 {
	n := int(tone.Length.Seconds() * float64(sampleRate))
	if n <= 0 {
		return nil
	}

	out := make([]float32, n)
	phase := 0.0
	for i := range out {
		t := time.Duration(float64(i) / float64(sampleRate) * float64(time.Second))
		out[i] = float32(oscillate(tone.Wave, phase) * tone.Gain.ValueAt(t))

		phase += tone.Freq.ValueAt(t) / float64(sampleRate)
		phase -= math.Floor(phase)
	}
	return out
}

func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
