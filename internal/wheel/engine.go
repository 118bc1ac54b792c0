package wheel

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/roleta/internal/log"
	"github.com/zjrosen/roleta/internal/sound"
)

const tracerName = "github.com/zjrosen/roleta/internal/wheel"

// Defaults for Options fields left zero.
const (
	DefaultSpinDuration = 4 * time.Second
	DefaultFanfareDelay = 100 * time.Millisecond
	DefaultMinTurns     = 5
	// MinEntries is the smallest effective sequence that can be spun.
	MinEntries = 2
)

// Feedback receives the sound cues the engine triggers.
type Feedback interface {
	Emit(kind sound.Kind)
}

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	Feedback  Feedback
	Scheduler Scheduler
	Rand      Rand

	SpinDuration time.Duration
	FanfareDelay time.Duration
	MinTurns     int
	Filler       string

	Role      Role
	Mode      Mode
	Duration  DurationChoice
	Alternate bool
}

// Result is the outcome of one resolved spin.
type Result struct {
	SpinID     string
	Winner     string
	Index      int
	Entries    int
	Punishment string
	Mode       Mode
	Duration   DurationChoice
	Rotation   float64
}

// State is a read-only snapshot of the engine.
type State struct {
	Participants []string
	Sequence     []string

	Role      Role
	Mode      Mode
	Duration  DurationChoice
	Alternate bool

	RotationAngle float64
	Spinning      bool
	HasWinner     bool
	Winner        string
	Punishment    string
	ResultVisible bool
	SpinID        string
}

// CanSpin reports whether Spin would be accepted right now.
func (s State) CanSpin() bool {
	return !s.Spinning && len(s.Sequence) >= MinEntries
}

// pendingSpin is everything captured at Spin time.
type pendingSpin struct {
	id       string
	sequence []string
	mode     Mode
	duration DurationChoice
	rotation float64
	task     Task
	span     trace.Span
}

// Engine is the selection engine. All methods are safe for concurrent use;
// the resolution callback runs on the scheduler's goroutine.
type Engine struct {
	mu sync.Mutex

	feedback  Feedback
	scheduler Scheduler
	rng       Rand
	tracer    trace.Tracer

	spinDuration time.Duration
	fanfareDelay time.Duration
	minTurns     int
	filler       string

	role      Role
	mode      Mode
	duration  DurationChoice
	alternate bool

	participants []string

	rotation      float64
	pending       *pendingSpin
	fanfare       Task
	hasWinner     bool
	winner        string
	punishment    string
	resultVisible bool
	lastSpinID    string

	results chan Result
}

// New creates an engine with an empty participant list and rotation 0.
func New(opts Options) *Engine {
	if opts.Feedback == nil {
		opts.Feedback = sound.Nop{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if opts.SpinDuration <= 0 {
		opts.SpinDuration = DefaultSpinDuration
	}
	if opts.FanfareDelay <= 0 {
		opts.FanfareDelay = DefaultFanfareDelay
	}
	if opts.MinTurns <= 0 {
		opts.MinTurns = DefaultMinTurns
	}
	if strings.TrimSpace(opts.Filler) == "" {
		opts.Filler = DefaultFiller
	}
	if !opts.Role.Valid() {
		opts.Role = Owner
	}
	if opts.Mode == Ban && !opts.Role.CanBan() {
		opts.Mode = Timeout
	}
	if !opts.Duration.Valid() {
		opts.Duration = DurationRandom
	}

	return &Engine{
		feedback:     opts.Feedback,
		scheduler:    opts.Scheduler,
		rng:          opts.Rand,
		tracer:       otel.Tracer(tracerName),
		spinDuration: opts.SpinDuration,
		fanfareDelay: opts.FanfareDelay,
		minTurns:     opts.MinTurns,
		filler:       opts.Filler,
		role:         opts.Role,
		mode:         opts.Mode,
		duration:     opts.Duration,
		alternate:    opts.Alternate,
		results:      make(chan Result, 4),
	}
}

// SpinDuration is the delay between Spin and its resolution. The
// presentation layer animates over the same window.
func (e *Engine) SpinDuration() time.Duration {
	return e.spinDuration
}

// Results delivers every resolved spin. Results are dropped when nobody
// drains the channel.
func (e *Engine) Results() <-chan Result {
	return e.results
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	participants := make([]string, len(e.participants))
	copy(participants, e.participants)

	return State{
		Participants:  participants,
		Sequence:      Expand(e.participants, e.alternate, e.filler),
		Role:          e.role,
		Mode:          e.mode,
		Duration:      e.duration,
		Alternate:     e.alternate,
		RotationAngle: e.rotation,
		Spinning:      e.pending != nil,
		HasWinner:     e.hasWinner,
		Winner:        e.winner,
		Punishment:    e.punishment,
		ResultVisible: e.resultVisible,
		SpinID:        e.lastSpinID,
	}
}

// AddParticipant appends the trimmed name. Blank names are refused with an
// error cue.
func (e *Engine) AddParticipant(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		e.feedback.Emit(sound.Error)
		return false
	}

	e.mu.Lock()
	e.participants = append(e.participants, name)
	count := len(e.participants)
	e.mu.Unlock()

	log.Debug(log.CatWheel, "Participant added", "name", name, "count", count)
	e.feedback.Emit(sound.Click)
	return true
}

// RemoveParticipant deletes the entry at index. It is refused while a spin
// is in flight or when index is out of range.
func (e *Engine) RemoveParticipant(index int) bool {
	e.mu.Lock()
	if e.pending != nil || index < 0 || index >= len(e.participants) {
		spinning := e.pending != nil
		e.mu.Unlock()
		log.Debug(log.CatWheel, "Remove refused", "index", index, "spinning", spinning)
		e.feedback.Emit(sound.Error)
		return false
	}
	e.participants = append(e.participants[:index], e.participants[index+1:]...)
	e.mu.Unlock()

	e.feedback.Emit(sound.Click)
	return true
}

// SetRole changes the active role. Losing ban permission while in Ban mode
// drops the mode back to Timeout.
func (e *Engine) SetRole(role Role) bool {
	if !role.Valid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.role = role
	if e.mode == Ban && !role.CanBan() {
		e.mode = Timeout
		log.Debug(log.CatWheel, "Mode forced to timeout", "role", role.String())
	}
	return true
}

// SetMode changes the punishment mode. Ban is refused with an error cue
// when the role cannot ban.
func (e *Engine) SetMode(mode Mode) bool {
	if mode != Timeout && mode != Ban {
		return false
	}

	e.mu.Lock()
	if mode == Ban && !e.role.CanBan() {
		e.mu.Unlock()
		e.feedback.Emit(sound.Error)
		return false
	}
	e.mode = mode
	e.mu.Unlock()
	return true
}

// SetDuration selects Random or a fixed penalty.
func (e *Engine) SetDuration(choice DurationChoice) bool {
	if !choice.Valid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.duration = choice
	return true
}

// SetAlternate toggles filler interleaving.
func (e *Engine) SetAlternate(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alternate = on
}

// Spin starts a spin. It is refused with an error cue while another spin
// is pending or when the effective sequence has fewer than MinEntries.
func (e *Engine) Spin() bool {
	e.mu.Lock()
	sequence := Expand(e.participants, e.alternate, e.filler)
	if e.pending != nil || len(sequence) < MinEntries {
		spinning := e.pending != nil
		e.mu.Unlock()
		log.Debug(log.CatWheel, "Spin refused", "spinning", spinning, "entries", len(sequence))
		e.feedback.Emit(sound.Error)
		return false
	}

	p := &pendingSpin{
		id:       uuid.NewString(),
		sequence: sequence,
		mode:     e.mode,
		duration: e.duration,
		rotation: e.rotation + float64(e.minTurns*360+e.rng.IntN(360)),
	}
	_, p.span = e.tracer.Start(context.Background(), "wheel.spin",
		trace.WithAttributes(
			attribute.String("spin.id", p.id),
			attribute.Int("spin.entries", len(sequence)),
			attribute.String("spin.role", e.role.String()),
			attribute.String("spin.mode", p.mode.String()),
			attribute.String("spin.duration", p.duration.String()),
			attribute.Float64("spin.rotation", p.rotation),
		))

	e.rotation = p.rotation
	e.pending = p
	e.hasWinner = false
	e.winner = ""
	e.resultVisible = false
	e.lastSpinID = p.id
	p.task = e.scheduler.AfterFunc(e.spinDuration, func() { e.resolve(p) })
	e.mu.Unlock()

	log.Info(log.CatWheel, "Spin started", "spin", p.id, "entries", len(sequence), "rotation", p.rotation)
	e.feedback.Emit(sound.Spin)
	return true
}

// resolve runs once the spin animation window has elapsed.
func (e *Engine) resolve(p *pendingSpin) {
	e.mu.Lock()
	if e.pending != p {
		e.mu.Unlock()
		return
	}

	idx := WinningIndex(p.rotation, len(p.sequence))
	res := Result{
		SpinID:     p.id,
		Winner:     p.sequence[idx],
		Index:      idx,
		Entries:    len(p.sequence),
		Punishment: PunishmentText(p.mode, p.duration, e.rng),
		Mode:       p.mode,
		Duration:   p.duration,
		Rotation:   p.rotation,
	}

	e.pending = nil
	e.hasWinner = true
	e.winner = res.Winner
	e.punishment = res.Punishment
	e.resultVisible = true
	e.fanfare = e.scheduler.AfterFunc(e.fanfareDelay, func() {
		e.feedback.Emit(sound.Win)
	})
	e.mu.Unlock()

	p.span.SetAttributes(
		attribute.Int("spin.index", res.Index),
		attribute.String("spin.winner", res.Winner),
		attribute.String("spin.punishment", res.Punishment),
	)
	p.span.SetStatus(codes.Ok, "")
	p.span.End()

	log.Info(log.CatWheel, "Spin resolved", "spin", res.SpinID, "winner", res.Winner,
		"index", res.Index, "punishment", res.Punishment)

	select {
	case e.results <- res:
	default:
		log.Warn(log.CatWheel, "Result dropped; no reader", "spin", res.SpinID)
	}
}

// Reset clears the participants, the rotation and the winner. The
// configuration is kept. Refused while a spin is in flight.
func (e *Engine) Reset() bool {
	e.mu.Lock()
	if e.pending != nil {
		e.mu.Unlock()
		e.feedback.Emit(sound.Error)
		return false
	}
	e.participants = nil
	e.rotation = 0
	e.hasWinner = false
	e.winner = ""
	e.punishment = ""
	e.resultVisible = false
	e.mu.Unlock()

	e.feedback.Emit(sound.Click)
	return true
}

// DismissResult hides the result but keeps the winner and punishment.
func (e *Engine) DismissResult() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resultVisible = false
}

// SpinAgain is the result dialog's shortcut: dismiss, then spin.
func (e *Engine) SpinAgain() bool {
	e.DismissResult()
	return e.Spin()
}

// Close cancels a pending resolution and fanfare. Used at shutdown.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending != nil {
		e.pending.task.Stop()
		e.pending.span.SetStatus(codes.Error, "cancelled")
		e.pending.span.End()
		e.pending = nil
	}
	if e.fanfare != nil {
		e.fanfare.Stop()
		e.fanfare = nil
	}
}
