// Package store persists sieve's filter configuration.
//
// A minimal key-value Store interface backs two interchangeable
// implementations: a JSON-file store guarded by a cross-process lock, and a
// SQLite store using the pure-Go driver. ConfigStore layers the filter
// configuration lifecycle on top: load-with-fallback, save-on-mutation,
// stage toggling, preset application, and reset.
package store

import "regexp"

// Store is a minimal key-value persistence interface. Values are opaque
// bytes; callers own serialization.
type Store interface {
	// Get returns the value for key. The boolean reports presence; a
	// missing key is not an error.
	Get(key string) ([]byte, bool, error)

	// Put stores the value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string) error

	// Close releases underlying resources. Safe to call multiple times.
	Close() error
}

// maxKeyLength is the maximum allowed store key length.
const maxKeyLength = 128

// validKeyPattern matches alphanumeric, hyphen, underscore, and dot. Both
// backends use keys in file names and SQL, so the character set stays tight.
var validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// validKey reports whether a key is acceptable to both backends.
func validKey(key string) bool {
	return key != "" && len(key) <= maxKeyLength && validKeyPattern.MatchString(key)
}
