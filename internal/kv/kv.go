// Package kv defines the key-value storage seam the chat core is built on.
// Implementations must be safe for use from a single goroutine; the core is
// synchronous and performs whole-value read-modify-write cycles.
package kv

import "errors"

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal persistent key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns all keys starting with prefix, in lexicographic order.
	Keys(prefix string) ([]string, error)
	// Close releases underlying resources.
	Close() error
}
