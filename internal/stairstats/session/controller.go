// Package session drives one stair session from start to save.
//
// The Controller walks Idle -> Active -> Ending -> {Persisted | Discarded}
// -> Idle. While Active it owns a running timer and the repetition count.
// RequestEnd freezes both and computes the summary shown to the user, who
// then saves, discards, or goes back to climbing.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/2beens/stairstats/internal/stairstats/calc"
	"github.com/2beens/stairstats/internal/stairstats/store"
	"github.com/2beens/stairstats/internal/stairstats/timer"
	"github.com/2beens/stairstats/internal/telemetry/metrics"
	"github.com/2beens/stairstats/internal/telemetry/tracing"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type State int

const (
	StateIdle State = iota
	StateActive
	StateEnding
	StatePersisted
	StateDiscarded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateEnding:
		return "ending"
	case StatePersisted:
		return "persisted"
	case StateDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=session_test

type sessionStore interface {
	GetConfiguration(ctx context.Context) (store.StairConfiguration, error)
	InsertSession(ctx context.Context, s store.Session) (*store.Session, error)
}

// Summary is what the user confirms or discards at the end of a session.
type Summary struct {
	Session       store.Session            `json:"session"`
	Configuration store.StairConfiguration `json:"configuration"`
}

// LiveStatus is delivered once per second while the session is Active.
type LiveStatus struct {
	ElapsedSeconds int
	Repetitions    int
}

// LiveFunc runs on the timer goroutine, TransitionFunc with the controller
// lock held. Neither may call back into the Controller.
type (
	LiveFunc       func(status LiveStatus)
	TransitionFunc func(from, to State)
)

type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func WithLiveFunc(fn LiveFunc) Option {
	return func(c *Controller) {
		c.onLive = fn
	}
}

func WithTransitionFunc(fn TransitionFunc) Option {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

type Controller struct {
	store          sessionStore
	metricsManager *metrics.Manager
	clock          clockwork.Clock
	onLive         LiveFunc
	onTransition   TransitionFunc

	mu      sync.Mutex
	state   State
	timer   *timer.Timer
	summary *Summary
	// repetitions is read by the tick goroutine without mu
	repetitions atomic.Int64
}

func NewController(store sessionStore, metricsManager *metrics.Manager, opts ...Option) *Controller {
	c := &Controller{
		store:          store,
		metricsManager: metricsManager,
		clock:          clockwork.NewRealClock(),
		state:          StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ElapsedSeconds is the running time while Active and the frozen duration
// while Ending. It is 0 when no session is open.
func (c *Controller) ElapsedSeconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return 0
	}
	return c.timer.ElapsedSeconds()
}

func (c *Controller) Repetitions() int {
	return int(c.repetitions.Load())
}

// Summary returns the pending summary while Ending, nil otherwise.
func (c *Controller) Summary() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return nil
	}
	summary := *c.summary
	return &summary
}

func (c *Controller) BeginSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return &InvalidStateError{Op: "begin session", State: c.state}
	}

	c.repetitions.Store(0)
	opts := []timer.Option{timer.WithClock(c.clock)}
	if c.onLive != nil {
		opts = append(opts, timer.WithTickFunc(c.tick))
	}
	t := timer.New(opts...)
	if err := t.Start(); err != nil {
		return fmt.Errorf("start timer: %w", err)
	}
	c.timer = t

	c.metricsManager.CounterSessionsStarted.Inc()
	c.metricsManager.GaugeSessionActive.Set(1)
	c.transitionLocked(StateActive)
	log.Debug("stair session started")
	return nil
}

func (c *Controller) tick(elapsedSeconds int) {
	c.onLive(LiveStatus{
		ElapsedSeconds: elapsedSeconds,
		Repetitions:    int(c.repetitions.Load()),
	})
}

// RecordRepetition counts one round trip up and down the staircase.
func (c *Controller) RecordRepetition() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateActive {
		return &InvalidStateError{Op: "record repetition", State: c.state}
	}

	reps := c.repetitions.Add(1)
	c.metricsManager.CounterRepetitions.Inc()
	log.Tracef("repetition %d recorded", reps)
	return nil
}

// RequestEnd reads the current staircase, then freezes the timer and
// computes the session summary. If the configuration cannot be read the
// session stays Active and the timer never stops.
func (c *Controller) RequestEnd(ctx context.Context) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "controller.session.requestEnd")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateActive {
		return nil, &InvalidStateError{Op: "request end", State: c.state}
	}

	cfg, err := c.store.GetConfiguration(ctx)
	if err != nil {
		c.metricsManager.CounterStorageErrors.WithLabelValues("get_configuration").Inc()
		return nil, err
	}

	if err := c.timer.Pause(); err != nil {
		return nil, fmt.Errorf("pause timer: %w", err)
	}
	endedAt := c.clock.Now()

	reps := max(0, int(c.repetitions.Load()))
	duration := max(0, c.timer.ElapsedSeconds())
	result := calc.Compute(reps, duration, cfg.Staircase())

	c.summary = &Summary{
		Session: store.Session{
			Date:                store.DateOf(endedAt),
			RepetitionCount:     reps,
			DurationSeconds:     duration,
			CaloriesBurned:      result.CaloriesBurned,
			HeightClimbedMeters: result.HeightClimbedMeters,
		},
		Configuration: cfg,
	}
	span.SetAttributes(
		attribute.Int("repetitions", reps),
		attribute.Int("duration_seconds", duration),
	)

	c.transitionLocked(StateEnding)
	summary := *c.summary
	return &summary, nil
}

// ConfirmSave persists the pending summary. A store failure is returned as
// is and the controller stays in Ending, so saving can be retried.
func (c *Controller) ConfirmSave(ctx context.Context) (_ *store.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "controller.session.confirmSave")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEnding {
		return nil, &InvalidStateError{Op: "confirm save", State: c.state}
	}

	saved, err := c.store.InsertSession(ctx, c.summary.Session)
	if err != nil {
		c.metricsManager.CounterStorageErrors.WithLabelValues("insert_session").Inc()
		log.Errorf("save stair session: %s", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("session.id", saved.ID))

	c.metricsManager.CounterSessionsSaved.Inc()
	c.metricsManager.HistSessionDuration.Observe(float64(saved.DurationSeconds))
	log.Infof("stair session %d saved: %d reps in %ds", saved.ID, saved.RepetitionCount, saved.DurationSeconds)

	c.closeLocked(StatePersisted)
	return saved, nil
}

// ConfirmDiscard drops the pending summary without storing anything.
func (c *Controller) ConfirmDiscard() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEnding {
		return &InvalidStateError{Op: "confirm discard", State: c.state}
	}

	c.metricsManager.CounterSessionsDiscarded.Inc()
	log.Infof("stair session discarded: %d reps", c.summary.Session.RepetitionCount)

	c.closeLocked(StateDiscarded)
	return nil
}

// Abandon drops an open session, Active or Ending, without storing it.
// The timer is stopped and the controller returns to Idle.
func (c *Controller) Abandon() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateActive && c.state != StateEnding {
		return &InvalidStateError{Op: "abandon", State: c.state}
	}

	c.metricsManager.CounterSessionsDiscarded.Inc()
	log.Infof("stair session abandoned in %s: %d reps", c.state, c.repetitions.Load())

	c.closeLocked(StateDiscarded)
	return nil
}

// CancelEnd goes back to Active. The timer resumes from the frozen value,
// the time spent deciding is not counted.
func (c *Controller) CancelEnd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEnding {
		return &InvalidStateError{Op: "cancel end", State: c.state}
	}

	if err := c.timer.Start(); err != nil {
		return fmt.Errorf("resume timer: %w", err)
	}
	c.summary = nil
	c.transitionLocked(StateActive)
	return nil
}

// closeLocked passes through the outcome state and back to Idle.
func (c *Controller) closeLocked(outcome State) {
	if err := c.timer.Stop(); err != nil {
		log.Errorf("stop timer: %s", err)
	}
	c.timer = nil
	c.summary = nil
	c.repetitions.Store(0)
	c.metricsManager.GaugeSessionActive.Set(0)

	c.transitionLocked(outcome)
	c.transitionLocked(StateIdle)
}

func (c *Controller) transitionLocked(to State) {
	from := c.state
	c.state = to
	log.Tracef("stair session %s -> %s", from, to)
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
