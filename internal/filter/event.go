package filter

import "strings"

// ChangeEvent is a single file-system change notification as delivered by a
// watch session. Path may use either '/' or '\' separators; Kind is free-form
// and normalized internally. WatchID identifies the originating session and
// is never validated here.
type ChangeEvent struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	WatchID string `json:"watch_id"`
}

// Canonical event kinds. Incoming kinds are lower-cased and mapped through
// the synonym table below; anything unrecognized passes through lower-cased.
const (
	KindCreated  = "created"
	KindModified = "modified"
	KindRemoved  = "removed"
	KindRenamed  = "renamed"
	KindAccessed = "accessed"
)

// kindSynonyms maps known event-kind vocabulary variants to canonical kinds.
// The canonical names themselves are not listed; they pass through unchanged.
var kindSynonyms = map[string]string{
	"create": KindCreated,
	"add":    KindCreated,
	"added":  KindCreated,
	"new":    KindCreated,

	"modify":  KindModified,
	"change":  KindModified,
	"changed": KindModified,
	"update":  KindModified,
	"updated": KindModified,

	"delete":  KindRemoved,
	"remove":  KindRemoved,
	"deleted": KindRemoved,
	"unlink":  KindRemoved,

	"rename": KindRenamed,
	"move":   KindRenamed,
	"moved":  KindRenamed,

	"access": KindAccessed,
}

// NormalizeKind lower-cases an event kind and resolves known synonyms to one
// of the five canonical kinds. Unknown kinds pass through lower-cased.
func NormalizeKind(kind string) string {
	k := strings.ToLower(kind)
	if canonical, ok := kindSynonyms[k]; ok {
		return canonical
	}
	return k
}
