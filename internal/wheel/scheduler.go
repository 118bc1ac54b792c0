package wheel

import "time"

// Task is a scheduled callback that can be cancelled before it fires.
type Task interface {
	// Stop cancels the task. It returns false if the task already ran or
	// was stopped.
	Stop() bool
}

// Scheduler defers callbacks by a wall-clock interval without blocking.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// TimerScheduler runs callbacks on time.AfterFunc goroutines.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// Rand is the integer source used for rotations and random penalties.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}
