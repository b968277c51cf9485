// Package timer implements the focus/break countdown state machine. A Timer
// owns its phase and remaining time and is driven either by its internal
// one-second ticker or, in manual mode, by explicit Tick calls. Views and
// transports only subscribe; they never own the countdown.
package timer

import (
	"sync"
	"time"
)

const (
	PhaseWork  = "work"
	PhaseBreak = "break"

	WorkDurationSeconds  = 25 * 60
	BreakDurationSeconds = 5 * 60
)

// Snapshot is an immutable view of the timer handed to subscribers.
type Snapshot struct {
	Phase            string `json:"phase"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Running          bool   `json:"running"`
}

type Option func(*Timer)

// WithTickInterval overrides the one-second tick cadence.
func WithTickInterval(interval time.Duration) Option {
	return func(t *Timer) { t.interval = interval }
}

// Manual disables the internal ticker; the caller drives Tick itself.
func Manual() Option {
	return func(t *Timer) { t.manual = true }
}

type Timer struct {
	mu             sync.Mutex
	phase          string
	remaining      int
	running        bool
	closed         bool
	interval       time.Duration
	manual         bool
	stop           chan struct{}
	onWorkComplete func()
	subscribers    []func(Snapshot)
}

// New returns an idle timer at the start of a work phase. onWorkComplete is
// invoked once per completed work phase, outside the timer's lock; it may be
// nil.
func New(onWorkComplete func(), opts ...Option) *Timer {
	t := &Timer{
		phase:          PhaseWork,
		remaining:      WorkDurationSeconds,
		interval:       time.Second,
		onWorkComplete: onWorkComplete,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Subscribe registers fn for every state change. Callbacks run outside the
// lock, on whichever goroutine caused the change.
func (t *Timer) Subscribe(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.subscribers = append(t.subscribers, fn)
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Start begins ticking. It is a no-op when already running or closed.
func (t *Timer) Start() Snapshot {
	t.mu.Lock()
	if t.closed || t.running || t.remaining == 0 {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap
	}

	t.running = true
	if !t.manual {
		t.stop = make(chan struct{})
		go t.run(t.stop)
	}
	snap := t.snapshotLocked()
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, snap)
	return snap
}

// Pause stops ticking without touching phase or remaining time.
func (t *Timer) Pause() Snapshot {
	t.mu.Lock()
	if !t.running {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap
	}

	t.running = false
	t.stopTickerLocked()
	snap := t.snapshotLocked()
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, snap)
	return snap
}

// Reset returns unconditionally to an idle work phase. An in-progress phase
// is discarded without crediting partial work time.
func (t *Timer) Reset() Snapshot {
	t.mu.Lock()
	t.running = false
	t.stopTickerLocked()
	t.phase = PhaseWork
	t.remaining = WorkDurationSeconds
	snap := t.snapshotLocked()
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, snap)
	return snap
}

// Tick advances the countdown by one second. A tick that lands exactly on
// zero commits the phase transition in the same instant: a completed work
// phase fires the credit callback and flips to an idle break, a completed
// break flips back to an idle work phase with no side effect.
func (t *Timer) Tick() Snapshot {
	t.mu.Lock()
	if t.closed || !t.running || t.remaining == 0 {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap
	}

	t.remaining--
	var workCompleted bool
	if t.remaining == 0 {
		t.running = false
		t.stopTickerLocked()
		if t.phase == PhaseWork {
			workCompleted = true
			t.phase = PhaseBreak
			t.remaining = BreakDurationSeconds
		} else {
			t.phase = PhaseWork
			t.remaining = WorkDurationSeconds
		}
	}
	snap := t.snapshotLocked()
	subs := t.subscribersLocked()
	callback := t.onWorkComplete
	t.mu.Unlock()

	if workCompleted && callback != nil {
		callback()
	}
	notify(subs, snap)
	return snap
}

// Close stops the ticker goroutine and drops all subscribers so that no
// callback can land after teardown. The timer is unusable afterwards.
func (t *Timer) Close() {
	t.mu.Lock()
	t.closed = true
	t.running = false
	t.stopTickerLocked()
	t.subscribers = nil
	t.mu.Unlock()
}

func (t *Timer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

func (t *Timer) stopTickerLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:            t.phase,
		RemainingSeconds: t.remaining,
		Running:          t.running,
	}
}

func (t *Timer) subscribersLocked() []func(Snapshot) {
	if len(t.subscribers) == 0 {
		return nil
	}
	subs := make([]func(Snapshot), len(t.subscribers))
	copy(subs, t.subscribers)
	return subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
