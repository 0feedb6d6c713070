package filter

// Pipeline composes the five filter stages with short-circuit evaluation.
// The first rejecting stage wins; cheaper structural checks run before the
// stateful debounce check, so filtered-out noise never touches debounce
// state. The pipeline itself is pure synchronous computation over the
// caller-supplied config; callers must deliver events in arrival order.
type Pipeline struct {
	patterns *PatternFilter
	state    *DebounceState
}

// NewPipeline creates a pipeline owning the given debounce state. A nil
// state gets a fresh one; callers running multiple independent sessions
// should construct one pipeline (and thus one state) per session.
func NewPipeline(state *DebounceState) *Pipeline {
	if state == nil {
		state = NewDebounceState()
	}
	return &Pipeline{
		patterns: NewPatternFilter(),
		state:    state,
	}
}

// State exposes the pipeline's debounce state, e.g. for a Sweeper.
func (p *Pipeline) State() *DebounceState {
	return p.state
}

// Evaluate decides whether an event should be surfaced (true = show).
func (p *Pipeline) Evaluate(ev ChangeEvent, cfg Config) bool {
	if p.patterns.Matches(ev.Path, cfg.Patterns) {
		return false
	}
	if DirectoryIgnored(ev.Path, cfg.Directories) {
		return false
	}
	if !KindAllowed(ev.Kind, cfg.EventTypes) {
		return false
	}
	if !ExtensionMatches(ev.Path, cfg.Extensions) {
		return false
	}
	if p.state.ShouldSuppress(ev, cfg.Debounce) {
		return false
	}
	return true
}

// FilterList applies Evaluate to each event in input order and returns the
// survivors, preserving their relative order.
func (p *Pipeline) FilterList(events []ChangeEvent, cfg Config) []ChangeEvent {
	kept := make([]ChangeEvent, 0, len(events))
	for _, ev := range events {
		if p.Evaluate(ev, cfg) {
			kept = append(kept, ev)
		}
	}
	return kept
}
