// Package watch produces the raw change-event stream the filter pipeline
// consumes. A Manager owns any number of concurrently running watch
// sessions, each identified by a watch ID and backed by its own fsnotify
// watcher. Events from all sessions funnel into one output channel,
// unfiltered; deciding what to surface is the pipeline's job.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	sieveerrors "github.com/mbranstad/sieve/internal/errors"
	"github.com/mbranstad/sieve/internal/filter"
)

// Options configures a Manager.
type Options struct {
	// EventBufferSize is the size of the shared event channel buffer.
	// Default: 1000
	EventBufferSize int

	// PrunePatterns are doublestar patterns for directories that recursive
	// sessions never descend into, so noisy trees like node_modules don't
	// consume kernel watches. This pruning is a resource guard, not event
	// filtering.
	PrunePatterns []string
}

// DefaultPrunePatterns keep recursive sessions out of the usual dependency
// and VCS trees.
var DefaultPrunePatterns = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/vendor/**",
	"**/__pycache__/**",
	"**/target/**",
}

// DefaultOptions returns the default manager options.
func DefaultOptions() Options {
	return Options{
		EventBufferSize: 1000,
		PrunePatterns:   DefaultPrunePatterns,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.EventBufferSize == 0 {
		o.EventBufferSize = defaults.EventBufferSize
	}
	if o.PrunePatterns == nil {
		o.PrunePatterns = defaults.PrunePatterns
	}
	return o
}

// Info describes one active watch session.
type Info struct {
	ID        string
	Path      string
	Recursive bool
}

// session is one running watch, with its own fsnotify watcher.
type session struct {
	id        string
	root      string
	recursive bool
	fsw       *fsnotify.Watcher
	stopCh    chan struct{}
}

// Manager runs watch sessions and fans their events into shared channels.
type Manager struct {
	opts     Options
	mu       sync.Mutex
	sessions map[string]*session
	running  sync.WaitGroup
	events   chan filter.ChangeEvent
	errs     chan error
	closed   bool
}

// NewManager creates a manager with no active sessions.
func NewManager(opts Options) *Manager {
	opts = opts.WithDefaults()
	return &Manager{
		opts:     opts,
		sessions: make(map[string]*session),
		events:   make(chan filter.ChangeEvent, opts.EventBufferSize),
		errs:     make(chan error, 10),
	}
}

// Watch starts a session over path. An empty id gets a generated UUID; a
// duplicate id or a missing path is an error. Returns the session's id.
func (m *Manager) Watch(path string, id string, recursive bool) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", sieveerrors.New(sieveerrors.ErrCodeInvalidPath,
			fmt.Sprintf("cannot resolve path %s", path), err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", sieveerrors.New(sieveerrors.ErrCodeInvalidPath,
			fmt.Sprintf("path does not exist: %s", absPath), err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", sieveerrors.New(sieveerrors.ErrCodeWatchFailed, "manager is closed", nil)
	}
	if _, exists := m.sessions[id]; exists {
		return "", sieveerrors.New(sieveerrors.ErrCodeWatchDuplicate,
			fmt.Sprintf("already watching with ID: %s", id), nil)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return "", sieveerrors.New(sieveerrors.ErrCodeWatchFailed, "failed to create watcher", err)
	}

	s := &session{
		id:        id,
		root:      absPath,
		recursive: recursive,
		fsw:       fsw,
		stopCh:    make(chan struct{}),
	}

	if err := m.addWatches(s); err != nil {
		_ = fsw.Close()
		return "", sieveerrors.New(sieveerrors.ErrCodeWatchFailed,
			fmt.Sprintf("failed to watch %s", absPath), err)
	}

	m.sessions[id] = s
	m.running.Add(1)
	go m.run(s)

	slog.Info("watch session started",
		slog.String("watch_id", id),
		slog.String("path", absPath),
		slog.Bool("recursive", recursive))
	return id, nil
}

// Stop tears down the session with the given id.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return sieveerrors.New(sieveerrors.ErrCodeWatchNotFound,
			fmt.Sprintf("no watcher found with ID: %s", id), nil)
	}

	close(s.stopCh)
	_ = s.fsw.Close()

	slog.Info("watch session stopped", slog.String("watch_id", id))
	return nil
}

// List enumerates the active sessions.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		infos = append(infos, Info{ID: s.id, Path: s.root, Recursive: s.recursive})
	}
	return infos
}

// Events returns the shared channel of raw change events.
func (m *Manager) Events() <-chan filter.ChangeEvent {
	return m.events
}

// Errors returns the shared channel of non-fatal watch errors.
func (m *Manager) Errors() <-chan error {
	return m.errs
}

// Close stops every session and closes the output channels. Safe to call
// multiple times.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sessions := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range sessions {
		close(s.stopCh)
		_ = s.fsw.Close()
	}

	// Session goroutines may still be mid-emit; the shared channels close
	// only after every one of them has returned.
	m.running.Wait()
	close(m.events)
	close(m.errs)
	return nil
}

// addWatches registers the session root, and for recursive sessions every
// unpruned subdirectory, with the fsnotify watcher.
func (m *Manager) addWatches(s *session) error {
	if !s.recursive {
		return s.fsw.Add(s.root)
	}

	return filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root && m.pruned(s, path) {
			return filepath.SkipDir
		}
		return s.fsw.Add(path)
	})
}

// pruned reports whether a directory is excluded from recursive watching.
func (m *Manager) pruned(s *session, path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range m.opts.PrunePatterns {
		// Patterns target contents (**/dir/**); match the directory itself
		// as well so the watch is never installed in the first place.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}

// run pumps one session's fsnotify events into the shared channels until
// the session stops.
func (m *Manager) run(s *session) {
	defer m.running.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case event, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			m.handle(s, event)
		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			m.emitError(err)
		}
	}
}

// handle converts one fsnotify event into a ChangeEvent and emits it.
func (m *Manager) handle(s *session, event fsnotify.Event) {
	kind, ok := kindOf(event.Op)
	if !ok {
		return
	}

	// New directories join recursive sessions as they appear.
	if kind == filter.KindCreated && s.recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !m.pruned(s, event.Name) {
			_ = s.fsw.Add(event.Name)
		}
	}

	// Report paths relative to the session root when possible, mirroring
	// what consumers configured their ignore lists against.
	path := event.Name
	if rel, err := filepath.Rel(s.root, event.Name); err == nil {
		path = rel
	}

	m.emit(filter.ChangeEvent{
		Path:    filepath.ToSlash(path),
		Kind:    kind,
		WatchID: s.id,
	})
}

// kindOf maps an fsnotify op onto the canonical kind vocabulary. Chmod
// events carry no content signal and are dropped.
func kindOf(op fsnotify.Op) (string, bool) {
	switch {
	case op&fsnotify.Create != 0:
		return filter.KindCreated, true
	case op&fsnotify.Write != 0:
		return filter.KindModified, true
	case op&fsnotify.Remove != 0:
		return filter.KindRemoved, true
	case op&fsnotify.Rename != 0:
		return filter.KindRenamed, true
	default:
		return "", false
	}
}

func (m *Manager) emit(ev filter.ChangeEvent) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return
	}

	select {
	case m.events <- ev:
	default:
		slog.Warn("event buffer full, dropping event",
			slog.String("path", ev.Path),
			slog.String("watch_id", ev.WatchID))
	}
}

func (m *Manager) emitError(err error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return
	}

	select {
	case m.errs <- err:
	default:
	}
}
