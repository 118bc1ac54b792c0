// Package wheel implements the selection engine behind the roulette.
//
// The engine owns the participant list, the punishment configuration and
// the spin lifecycle. It knows nothing about rendering: the presentation
// layer reads RotationAngle and Spinning from a State snapshot and animates
// between angles on its own.
//
// # Spin Lifecycle
//
// Spin validates the effective selection sequence, advances the cumulative
// rotation by at least MinTurns full turns and schedules a resolution after
// SpinDuration. The resolution maps the final angle to the entry under the
// fixed pointer (logical angle 0), derives the punishment text, publishes
// a Result and, FanfareDelay later, plays the win cue.
//
// Mode, duration and the effective sequence are captured when Spin is
// called, so configuration changes during a spin never leak into it.
//
// # Feedback
//
// Every accepted or refused operation is reported through the Feedback
// port as a sound cue (click for accepted edits, error for refusals).
// Refusals never return an error value; callers get a boolean.
package wheel
