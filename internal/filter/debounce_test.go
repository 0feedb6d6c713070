package filter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestDebounceState_SuppressesWithinWindow(t *testing.T) {
	// Given: debounce with a 300ms window and a fixed clock
	clock := newTestClock()
	state := NewDebounceState()
	state.SetClock(clock.Now)
	cfg := DebounceConfig{Enabled: true, TimeWindowMs: 300}
	ev := ChangeEvent{Path: "/src/main.go", Kind: KindModified}

	// When: the same event arrives twice within the window
	require.False(t, state.ShouldSuppress(ev, cfg))
	clock.Advance(100 * time.Millisecond)

	// Then: the second occurrence is suppressed
	assert.True(t, state.ShouldSuppress(ev, cfg))
}

func TestDebounceState_WindowDoesNotSlide(t *testing.T) {
	// Given: a 300ms window
	clock := newTestClock()
	state := NewDebounceState()
	state.SetClock(clock.Now)
	cfg := DebounceConfig{Enabled: true, TimeWindowMs: 300}
	ev := ChangeEvent{Path: "/src/main.go", Kind: KindModified}

	// When: a burst keeps arriving every 200ms
	require.False(t, state.ShouldSuppress(ev, cfg))
	clock.Advance(200 * time.Millisecond)
	assert.True(t, state.ShouldSuppress(ev, cfg))
	clock.Advance(200 * time.Millisecond)

	// Then: 400ms after the first occurrence the event passes again, because
	// suppressed events never refreshed the timestamp
	assert.False(t, state.ShouldSuppress(ev, cfg))
}

func TestDebounceState_KeyIncludesKind(t *testing.T) {
	clock := newTestClock()
	state := NewDebounceState()
	state.SetClock(clock.Now)
	cfg := DebounceConfig{Enabled: true, TimeWindowMs: 300}

	// Same path, different kinds: independent entries
	require.False(t, state.ShouldSuppress(ChangeEvent{Path: "/a", Kind: KindCreated}, cfg))
	assert.False(t, state.ShouldSuppress(ChangeEvent{Path: "/a", Kind: KindModified}, cfg))
	assert.True(t, state.ShouldSuppress(ChangeEvent{Path: "/a", Kind: KindCreated}, cfg))
}

func TestDebounceState_DisabledTouchesNothing(t *testing.T) {
	state := NewDebounceState()
	cfg := DebounceConfig{Enabled: false, TimeWindowMs: 300}
	ev := ChangeEvent{Path: "/a", Kind: KindModified}

	assert.False(t, state.ShouldSuppress(ev, cfg))
	assert.False(t, state.ShouldSuppress(ev, cfg))
	assert.Equal(t, 0, state.Len())
}

func TestDebounceState_IndependentInstances(t *testing.T) {
	// Given: two sessions with their own state
	clock := newTestClock()
	a := NewDebounceState()
	a.SetClock(clock.Now)
	b := NewDebounceState()
	b.SetClock(clock.Now)
	cfg := DebounceConfig{Enabled: true, TimeWindowMs: 300}
	ev := ChangeEvent{Path: "/shared", Kind: KindModified}

	// Then: one session's history never suppresses the other's events
	require.False(t, a.ShouldSuppress(ev, cfg))
	assert.False(t, b.ShouldSuppress(ev, cfg))
}

func TestDebounceState_Sweep(t *testing.T) {
	clock := newTestClock()
	state := NewDebounceState()
	state.SetClock(clock.Now)
	cfg := DebounceConfig{Enabled: true, TimeWindowMs: 300}

	state.ShouldSuppress(ChangeEvent{Path: "/old", Kind: KindModified}, cfg)
	clock.Advance(10 * time.Second)
	state.ShouldSuppress(ChangeEvent{Path: "/new", Kind: KindModified}, cfg)

	removed := state.Sweep(5 * time.Second)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, state.Len())
}

func TestSweeper_StopsOnCancel(t *testing.T) {
	state := NewDebounceState()
	sweeper := NewSweeper(state, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSweeper_PurgesStaleEntries(t *testing.T) {
	// Given: state with an entry far older than 10x the window
	clock := newTestClock()
	state := NewDebounceState()
	state.SetClock(clock.Now)
	state.ShouldSuppress(ChangeEvent{Path: "/old", Kind: KindModified}, DebounceConfig{Enabled: true, TimeWindowMs: 10})
	clock.Advance(time.Minute)

	sweeper := NewSweeper(state, 5*time.Millisecond, func() time.Duration { return 10 * time.Millisecond })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go sweeper.Run(ctx)

	// Then: the entry disappears within a few ticks
	assert.Eventually(t, func() bool { return state.Len() == 0 }, time.Second, 5*time.Millisecond)
}
