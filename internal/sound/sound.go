// Package sound provides synthesized audio feedback for wheel events.
// Cues are rendered from oscillator patches, mixed through one shared gain
// stage and streamed as raw PCM into an OS-native audio command.
package sound

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zjrosen/roleta/internal/log"
)

// Kind identifies a feedback cue.
type Kind int

const (
	Click Kind = iota
	Error
	Spin
	Win
	Tick
)

var kindNames = map[Kind]string{
	Click: "click",
	Error: "error",
	Spin:  "spin",
	Win:   "win",
	Tick:  "tick",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown sound kind")

// ParseKind converts a cue name ("click", "win", ...) into a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns every cue kind in declaration order.
func Kinds() []Kind {
	return []Kind{Click, Error, Spin, Win, Tick}
}

// Emitter is anything that can play a cue.
type Emitter interface {
	Emit(kind Kind)
}

// Nop discards every cue.
type Nop struct{}

// Emit does nothing.
func (Nop) Emit(Kind) {}

const (
	DefaultSampleRate = 44100
	DefaultVolume     = 0.5
	defaultChunk      = 20 * time.Millisecond
)

// Options configures a Unit.
type Options struct {
	Enabled    bool
	Volume     float64
	SampleRate int
	// Output opens the PCM sink on first use. Nil means no audio device.
	Output OutputFactory
	// Chunk is the pump interval. Defaults to 20ms.
	Chunk time.Duration
	// SpinLength stretches the spin cue to the wheel's spin duration.
	// Defaults to DefaultSpinLength.
	SpinLength time.Duration
}

// Unit is the process-wide audio feedback emitter. The output is opened
// lazily on the first cue and lives until Close.
type Unit struct {
	mixer      *Mixer
	tones      *toneCache
	enabled    atomic.Bool
	sampleRate int
	chunk      time.Duration
	autoPump   bool

	open      OutputFactory
	once      sync.Once
	out       io.WriteCloser
	available atomic.Bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Unit. Nothing touches the audio device until the first
// enabled Emit.
func New(opts Options) *Unit {
	return newUnit(opts, true)
}

func newUnit(opts Options, autoPump bool) *Unit {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Chunk <= 0 {
		opts.Chunk = defaultChunk
	}
	u := &Unit{
		mixer:      NewMixer(opts.Volume),
		tones:      newToneCache(opts.SampleRate, opts.SpinLength),
		sampleRate: opts.SampleRate,
		chunk:      opts.Chunk,
		autoPump:   autoPump,
		open:       opts.Output,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	u.enabled.Store(opts.Enabled)
	return u
}

// Emit plays the cue for kind. It never blocks on the device and silently
// does nothing when disabled or when no output could be opened.
func (u *Unit) Emit(kind Kind) {
	if !u.enabled.Load() {
		return
	}
	u.once.Do(u.init)
	if !u.available.Load() {
		return
	}

	samples, offsets := u.tones.voices(kind)
	for i := range samples {
		u.mixer.Add(samples[i], offsets[i]+u.lead())
	}
	log.Debug(log.CatSound, "Cue emitted", "kind", kind.String(), "voices", len(samples))
}

// SetVolume clamps v into [0,1] and applies it to every tone, including
// ones already playing.
func (u *Unit) SetVolume(v float64) {
	u.mixer.SetGain(v)
}

// Volume returns the shared gain.
func (u *Unit) Volume() float64 {
	return u.mixer.Gain()
}

// SetEnabled gates future cues. Tones already scheduled keep playing.
func (u *Unit) SetEnabled(enabled bool) {
	u.enabled.Store(enabled)
}

// Enabled reports whether cues are emitted.
func (u *Unit) Enabled() bool {
	return u.enabled.Load()
}

// Available reports whether the output device was opened successfully.
// It is false until the first enabled Emit.
func (u *Unit) Available() bool {
	return u.available.Load()
}

// Close stops the pump and closes the output. Safe to call more than once.
func (u *Unit) Close() error {
	var err error
	u.closeOnce.Do(func() {
		// Prevent a late first Emit from opening the device after Close.
		u.once.Do(func() {})
		close(u.stop)
		if u.out != nil {
			err = u.out.Close()
		}
		if u.available.Load() && u.autoPump {
			<-u.done
		}
		u.available.Store(false)
	})
	return err
}

func (u *Unit) init() {
	if u.open == nil {
		log.Warn(log.CatSound, "No audio output configured; sound disabled")
		return
	}
	out, err := u.open()
	if err != nil {
		log.Warn(log.CatSound, "Audio output unavailable; sound disabled", "error", err)
		return
	}
	u.out = out
	u.available.Store(true)
	log.Info(log.CatSound, "Audio output opened", "sample_rate", u.sampleRate)

	if u.autoPump {
		log.SafeGo("sound.pump", u.pump)
	}
}

// lead is how far ahead of the mixer clock a new voice starts, so it lands
// after the audio already buffered in the player.
func (u *Unit) lead() int64 {
	if !u.autoPump {
		return 0
	}
	return framesFor(2*u.chunk, u.sampleRate)
}

func (u *Unit) pump() {
	defer close(u.done)

	ticker := time.NewTicker(u.chunk)
	defer ticker.Stop()

	start := time.Now()
	var written int64
	var buf []float32
	var pcm []byte
	lead := u.lead()

	for {
		select {
		case <-u.stop:
			return
		case <-ticker.C:
		}

		due := framesFor(time.Since(start), u.sampleRate) + lead - written
		if due <= 0 {
			continue
		}
		if int64(cap(buf)) < due {
			buf = make([]float32, due)
		}
		buf = buf[:due]
		u.mixer.Render(buf)
		pcm = EncodePCM16(pcm, buf)

		if _, err := u.out.Write(pcm); err != nil {
			select {
			case <-u.stop:
			default:
				log.ErrorErr(log.CatSound, "Audio output failed; sound disabled", err)
			}
			u.available.Store(false)
			return
		}
		written += due
	}
}
