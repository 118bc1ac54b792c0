package sound

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// toneCache memoizes rendered voices; every cue is synthesized once per
// sample rate and spin length.
type toneCache struct {
	rate       int
	spinLength time.Duration
	store      *gocache.Cache
}

func newToneCache(rate int, spinLength time.Duration) *toneCache {
	if spinLength <= 0 {
		spinLength = DefaultSpinLength
	}
	return &toneCache{
		rate:       rate,
		spinLength: spinLength,
		store:      gocache.New(gocache.NoExpiration, 0),
	}
}

// voices returns the rendered samples and start offsets (in frames) of
// every tone in the cue for kind.
func (c *toneCache) voices(kind Kind) ([][]float32, []int64) {
	tones := PatchFor(kind, c.spinLength)
	samples := make([][]float32, len(tones))
	offsets := make([]int64, len(tones))
	for i, tone := range tones {
		key := fmt.Sprintf("%s/%d/%d/%s", kind, i, c.rate, c.spinLength)
		if cached, ok := c.store.Get(key); ok {
			samples[i] = cached.([]float32)
		} else {
			samples[i] = Render(tone, c.rate)
			c.store.Set(key, samples[i], gocache.NoExpiration)
		}
		offsets[i] = framesFor(tone.Offset, c.rate)
	}
	return samples, offsets
}

func (c *toneCache) len() int {
	return c.store.ItemCount()
}

func framesFor(d time.Duration, rate int) int64 {
	return int64(d.Seconds() * float64(rate))
}

// RenderCue mixes the whole cue for kind offline through gain, the same
// way the live mixer would. spinLength stretches the spin cue; zero means
// DefaultSpinLength.
func RenderCue(kind Kind, rate int, gain float64, spinLength time.Duration) []float32 {
	c := newToneCache(rate, spinLength)
	samples, offsets := c.voices(kind)

	total := int64(0)
	for i := range samples {
		total = max(total, offsets[i]+int64(len(samples[i])))
	}

	m := NewMixer(gain)
	for i := range samples {
		m.Add(samples[i], offsets[i])
	}
	out := make([]float32, total)
	m.Render(out)
	return out
}
