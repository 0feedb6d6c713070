// Package filter implements the file-change event filtering pipeline.
//
// A Pipeline composes five independently toggleable stages, evaluated in a
// fixed order with short-circuit semantics: ignored-pattern matching,
// ignored-directory containment, event-kind allow-listing, extension
// include/exclude matching, and time-windowed debouncing. Disabling a stage
// turns it into a pass-through, never an implicit deny.
//
// The debounce stage is the only stateful one. Its state lives in an
// explicitly owned DebounceState injected into the Pipeline, so independent
// watch sessions can run their own pipelines without cross-suppression.
package filter
