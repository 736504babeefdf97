// Package storage provides a namespaced key-value store with JSON values.
// Every entry lives under "<prefix>_<key>"; no operation reads or writes a
// key outside the configured prefix.
package storage

import "errors"

var ErrNotFound = errors.New("storage: not found")

// KV is the persistence contract the task list writes its snapshots through.
// Implementations report failures; deciding whether a failure is fatal is the
// caller's business.
type KV interface {
	// Save JSON-encodes value and upserts it under the namespaced key.
	Save(key string, value any) error
	// Load decodes the stored value into dst. Returns ErrNotFound when the
	// key is absent; decode failures surface as errors.
	Load(key string, dst any) error
	// Remove deletes the single namespaced entry. Removing an absent key is
	// not an error.
	Remove(key string) error
	// Clear deletes every entry under the namespace prefix and nothing else.
	Clear() error
}

// DefaultPrefix is the namespace used when a config supplies none.
const DefaultPrefix = "todos"

func namespaced(prefix, key string) string {
	return prefix + "_" + key
}
