// Package wheeltest provides deterministic collaborators for driving a
// wheel.Engine in tests: a manually advanced scheduler, a scripted random
// source and a cue recorder.
package wheeltest

import (
	"sort"
	"sync"
	"time"

	"github.com/zjrosen/roleta/internal/sound"
	"github.com/zjrosen/roleta/internal/wheel"
)

// ManualScheduler fires tasks only when Advance moves its clock past their
// deadline. Callbacks run on the goroutine that calls Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements wheel.Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) wheel.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{s: s, due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became
// due, in deadline order. Tasks scheduled by those callbacks also run if
// they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

// Pending reports how many tasks are scheduled and not yet fired or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.fired && !t.stopped && t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

// ScriptedRand returns the scripted values in order (modulo n), cycling
// when exhausted. With no values it always returns 0.
type ScriptedRand struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScriptedRand creates a ScriptedRand.
func NewScriptedRand(values ...int) *ScriptedRand {
	return &ScriptedRand{values: values}
}

// IntN implements wheel.Rand.
func (r *ScriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 || n <= 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return ((v % n) + n) % n
}

// Recorder captures every emitted cue.
type Recorder struct {
	mu    sync.Mutex
	kinds []sound.Kind
}

// Emit implements wheel.Feedback.
func (r *Recorder) Emit(kind sound.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

// Kinds returns a copy of the recorded cues.
func (r *Recorder) Kinds() []sound.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sound.Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Last returns the most recent cue; false when nothing was recorded.
func (r *Recorder) Last() (sound.Kind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.kinds) == 0 {
		return 0, false
	}
	return r.kinds[len(r.kinds)-1], true
}

// Reset forgets recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = nil
}
