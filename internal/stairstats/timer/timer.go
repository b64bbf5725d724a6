// Package timer measures the wall-clock time of a stair session.
//
// A Timer moves Stopped -> Running -> Paused -> Running ... -> Finished.
// Elapsed time only accrues while Running and is reported in whole seconds.
// An optional tick function is called once per second while Running; the
// tick goroutine is torn down before Pause or Stop return.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrInvalidTransition = errors.New("invalid timer transition")

type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TickFunc receives the elapsed whole seconds. It must not change the
// timer state (Start, Pause, Stop) or it deadlocks.
type TickFunc func(elapsedSeconds int)

type Option func(*Timer)

func WithClock(clock clockwork.Clock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

func WithTickFunc(fn TickFunc) Option {
	return func(t *Timer) {
		t.onTick = fn
	}
}

func WithTickInterval(interval time.Duration) Option {
	return func(t *Timer) {
		t.tickInterval = interval
	}
}

type Timer struct {
	clock        clockwork.Clock
	onTick       TickFunc
	tickInterval time.Duration

	mu            sync.Mutex
	state         State
	accumulated   time.Duration
	intervalStart time.Time

	// tickMu serializes tick delivery with tick cancellation
	tickMu   sync.Mutex
	tickStop chan struct{}
	tickDone chan struct{}
}

func New(opts ...Option) *Timer {
	t := &Timer{
		clock:        clockwork.NewRealClock(),
		tickInterval: time.Second,
		state:        StateStopped,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start begins a new running interval. Valid from the initial Stopped
// state and from Paused.
func (t *Timer) Start() error {
	// lock order is tickMu, then mu, as in deliverTick
	t.tickMu.Lock()
	t.mu.Lock()

	if t.state != StateStopped && t.state != StatePaused {
		state := t.state
		t.mu.Unlock()
		t.tickMu.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, state)
	}

	t.intervalStart = t.clock.Now()
	t.state = StateRunning
	var staleDone chan struct{}
	if t.onTick != nil {
		staleDone = t.startTickingLocked()
	}

	t.mu.Unlock()
	t.tickMu.Unlock()

	if staleDone != nil {
		<-staleDone
	}
	return nil
}

// Pause closes the running interval, adding it to the accumulated time.
func (t *Timer) Pause() error {
	t.mu.Lock()
	if t.state != StateRunning {
		state := t.state
		t.mu.Unlock()
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, state)
	}
	t.closeIntervalLocked()
	t.state = StatePaused
	t.mu.Unlock()

	t.stopTicking()
	return nil
}

// Stop freezes the elapsed time for good. A stopped timer cannot be
// started again.
func (t *Timer) Stop() error {
	t.mu.Lock()
	switch t.state {
	case StateFinished:
		t.mu.Unlock()
		return fmt.Errorf("%w: stop from %s", ErrInvalidTransition, t.state)
	case StateRunning:
		t.closeIntervalLocked()
	}
	t.state = StateFinished
	t.mu.Unlock()

	t.stopTicking()
	return nil
}

// ElapsedSeconds has no side effects and can be called in any state.
func (t *Timer) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return toSeconds(t.elapsedLocked())
}

func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Timer) elapsedLocked() time.Duration {
	elapsed := t.accumulated
	if t.state == StateRunning {
		if interval := t.clock.Since(t.intervalStart); interval > 0 {
			elapsed += interval
		}
	}
	return elapsed
}

func (t *Timer) closeIntervalLocked() {
	if interval := t.clock.Since(t.intervalStart); interval > 0 {
		t.accumulated += interval
	}
}

func toSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// startTickingLocked runs with both tickMu and mu held, so the ticker is
// registered on the clock by the time Start returns. It returns the done
// channel of a tick loop that was still being torn down, if any.
func (t *Timer) startTickingLocked() chan struct{} {
	var staleDone chan struct{}
	if t.tickStop != nil {
		close(t.tickStop)
		staleDone = t.tickDone
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	t.tickStop = stop
	t.tickDone = done

	ticker := t.clock.NewTicker(t.tickInterval)
	go t.tickLoop(ticker, stop, done)
	return staleDone
}

func (t *Timer) stopTicking() {
	t.tickMu.Lock()
	stop, done := t.tickStop, t.tickDone
	t.tickStop, t.tickDone = nil, nil
	if stop != nil {
		close(stop)
	}
	t.tickMu.Unlock()

	if done != nil {
		<-done
	}
}

func (t *Timer) tickLoop(ticker clockwork.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if !t.deliverTick(stop) {
				return
			}
		}
	}
}

func (t *Timer) deliverTick(stop <-chan struct{}) bool {
	t.tickMu.Lock()
	defer t.tickMu.Unlock()

	select {
	case <-stop:
		return false
	default:
	}

	t.mu.Lock()
	running := t.state == StateRunning
	elapsed := toSeconds(t.elapsedLocked())
	t.mu.Unlock()
	if !running {
		return false
	}

	t.onTick(elapsed)
	return true
}
