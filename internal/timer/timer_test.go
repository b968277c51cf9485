package timer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellspace/backend/internal/timer"
)

func tick(t *timer.Timer, n int) timer.Snapshot {
	var snap timer.Snapshot
	for i := 0; i < n; i++ {
		snap = t.Tick()
	}
	return snap
}

func TestInitialState(t *testing.T) {
	tm := timer.New(nil, timer.Manual())
	snap := tm.Snapshot()
	assert.Equal(t, timer.PhaseWork, snap.Phase)
	assert.Equal(t, timer.WorkDurationSeconds, snap.RemainingSeconds)
	assert.False(t, snap.Running)
}

func TestWorkPhaseCompletionCreditsAndFlipsToBreak(t *testing.T) {
	credits := 0
	tm := timer.New(func() { credits++ }, timer.Manual())

	tm.Start()
	snap := tick(tm, timer.WorkDurationSeconds)

	assert.Equal(t, timer.PhaseBreak, snap.Phase)
	assert.Equal(t, timer.BreakDurationSeconds, snap.RemainingSeconds)
	assert.False(t, snap.Running)
	assert.Equal(t, 1, credits, "exactly one credit per completed work phase")

	// Completed break returns to work with no further credit.
	tm.Start()
	snap = tick(tm, timer.BreakDurationSeconds)
	assert.Equal(t, timer.PhaseWork, snap.Phase)
	assert.Equal(t, timer.WorkDurationSeconds, snap.RemainingSeconds)
	assert.False(t, snap.Running)
	assert.Equal(t, 1, credits)
}

func TestTickIsNoOpUnlessRunning(t *testing.T) {
	tm := timer.New(nil, timer.Manual())
	snap := tm.Tick()
	assert.Equal(t, timer.WorkDurationSeconds, snap.RemainingSeconds)

	tm.Start()
	tm.Tick()
	snap = tm.Pause()
	assert.Equal(t, timer.WorkDurationSeconds-1, snap.RemainingSeconds)
	assert.False(t, snap.Running)

	// Paused timers do not advance.
	snap = tm.Tick()
	assert.Equal(t, timer.WorkDurationSeconds-1, snap.RemainingSeconds)
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	tm := timer.New(nil, timer.Manual())
	tm.Start()
	tm.Tick()
	snap := tm.Start()
	assert.True(t, snap.Running)
	assert.Equal(t, timer.WorkDurationSeconds-1, snap.RemainingSeconds)
}

func TestResetDiscardsProgressWithoutCredit(t *testing.T) {
	credits := 0
	tm := timer.New(func() { credits++ }, timer.Manual())

	tm.Start()
	tick(tm, 100)
	snap := tm.Reset()
	assert.Equal(t, timer.PhaseWork, snap.Phase)
	assert.Equal(t, timer.WorkDurationSeconds, snap.RemainingSeconds)
	assert.False(t, snap.Running)
	assert.Zero(t, credits)

	// Reset from a break phase also lands on an idle work phase.
	tm.Start()
	tick(tm, timer.WorkDurationSeconds)
	require.Equal(t, 1, credits)
	tm.Start()
	tick(tm, 10)
	snap = tm.Reset()
	assert.Equal(t, timer.PhaseWork, snap.Phase)
	assert.Equal(t, timer.WorkDurationSeconds, snap.RemainingSeconds)
	assert.Equal(t, 1, credits)
}

func TestSubscribersSeeStateChanges(t *testing.T) {
	tm := timer.New(nil, timer.Manual())
	var seen []timer.Snapshot
	tm.Subscribe(func(s timer.Snapshot) { seen = append(seen, s) })

	tm.Start()
	tm.Tick()
	tm.Pause()

	require.Len(t, seen, 3)
	assert.True(t, seen[0].Running)
	assert.Equal(t, timer.WorkDurationSeconds-1, seen[1].RemainingSeconds)
	assert.False(t, seen[2].Running)
}

func TestCloseStopsDelivery(t *testing.T) {
	tm := timer.New(nil, timer.Manual())
	calls := 0
	tm.Subscribe(func(timer.Snapshot) { calls++ })

	tm.Start()
	calls = 0
	tm.Close()

	snap := tm.Tick()
	assert.False(t, snap.Running)
	assert.Zero(t, calls, "no callback may land after teardown")
}
