package filter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RecentChange records the last unsuppressed occurrence of a (path, kind)
// pair.
type RecentChange struct {
	Timestamp time.Time   `json:"timestamp"`
	Event     ChangeEvent `json:"event"`
}

// DebounceState holds the recent-change map for one pipeline instance. It is
// deliberately not package-level state: each watch session owns its own
// instance, so sessions never suppress each other's events. Safe for
// concurrent use.
type DebounceState struct {
	mu     sync.Mutex
	recent map[string]RecentChange
	now    func() time.Time
}

// NewDebounceState creates empty debounce state using the wall clock.
func NewDebounceState() *DebounceState {
	return &DebounceState{
		recent: make(map[string]RecentChange),
		now:    time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (s *DebounceState) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// debounceKey identifies a (path, kind) pair in the recent-change map.
func debounceKey(ev ChangeEvent) string {
	return ev.Path + ":" + ev.Kind
}

// ShouldSuppress reports whether an event repeats a recent identical one
// (true = drop it). A suppressed event does not refresh the stored
// timestamp, so a rapid burst stays silent until the window measured from
// the first unsuppressed occurrence elapses; the window never slides.
// Unsuppressed events record or overwrite their entry. A disabled stage
// neither suppresses nor touches the map.
func (s *DebounceState) ShouldSuppress(ev ChangeEvent, cfg DebounceConfig) bool {
	if !cfg.Enabled {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := debounceKey(ev)
	now := s.now()
	if prior, ok := s.recent[key]; ok && now.Sub(prior.Timestamp) < cfg.Window() {
		return true
	}
	s.recent[key] = RecentChange{Timestamp: now, Event: ev}
	return false
}

// Sweep removes entries older than maxAge and returns how many were
// dropped. Intended to run periodically with a retention horizon well above
// the configured window (see Sweeper), so bursts arriving across a window
// change are still debounced while memory stays bounded.
func (s *DebounceState) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for key, change := range s.recent {
		if change.Timestamp.Before(cutoff) {
			delete(s.recent, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked (path, kind) pairs.
func (s *DebounceState) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recent)
}

const (
	// DefaultSweepInterval is how often the sweeper purges stale entries.
	DefaultSweepInterval = 30 * time.Second

	// sweepRetentionFactor scales the configured window into the sweep
	// retention horizon.
	sweepRetentionFactor = 10
)

// Sweeper periodically purges stale debounce entries. The retention horizon
// is 10x the current window so late bursts straddling a config change still
// debounce correctly. Run returns when the context is cancelled, so the
// owning session can tear it down cleanly.
type Sweeper struct {
	state    *DebounceState
	interval time.Duration
	window   func() time.Duration
}

// NewSweeper creates a sweeper over the given state. window reports the
// currently configured debounce window on each tick; a nil window or
// non-positive interval falls back to defaults.
func NewSweeper(state *DebounceState, interval time.Duration, window func() time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if window == nil {
		window = func() time.Duration { return DefaultTimeWindowMs * time.Millisecond }
	}
	return &Sweeper{state: state, interval: interval, window: window}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			maxAge := sweepRetentionFactor * s.window()
			if removed := s.state.Sweep(maxAge); removed > 0 {
				slog.Debug("swept stale debounce entries",
					slog.Int("removed", removed),
					slog.Duration("max_age", maxAge),
				)
			}
		}
	}
}
